package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"Club_Portal/internal/apperr"
	"Club_Portal/internal/service"

	"github.com/gin-gonic/gin"
)

// pageFrom reads ?page= and ?limit=; absent values fall back to the defaults.
func pageFrom(c *gin.Context) (service.Page, error) {
	var bad []apperr.FieldError
	atoi := func(key string) int {
		raw := c.Query(key)
		if raw == "" {
			return 0
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			bad = append(bad, apperr.FieldError{Field: key, Rule: "numeric", Message: key + " must be an integer"})
		}
		return n
	}
	page, limit := atoi("page"), atoi("limit")
	if len(bad) > 0 {
		return service.Page{}, apperr.Validation("invalid pagination", bad...)
	}
	return service.NewPage(page, limit), nil
}

// bindOptionalJSON binds the body when there is one.
func bindOptionalJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func deleted(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"msg": "deleted"})
}

// Health is the liveness probe.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
