package handler

import (
	"net/http"
	"strings"

	"Club_Portal/internal/apperr"
	"Club_Portal/internal/middleware"
	"Club_Portal/internal/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	svc *service.AuthService
}

// SignupReq is the signup body.
type SignupReq struct {
	Email    string `json:"email" binding:"required,email,max=128"`
	Username string `json:"username" binding:"required,min=3,max=32"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// SigninReq accepts the login under any of its three keys.
type SigninReq struct {
	Login    string `json:"login"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password" binding:"required"`
}

func (r SigninReq) login() string {
	for _, v := range []string{r.Login, r.Email, r.Username} {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func NewUserHandler(svc *service.AuthService) *UserHandler {
	return &UserHandler{svc: svc}
}

func (h *UserHandler) Signup(c *gin.Context) {
	var req SignupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}

	acct, err := h.svc.Signup(c.Request.Context(), service.SignupInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": service.NewAccountView(acct)})
}

func (h *UserHandler) Signin(c *gin.Context) {
	var req SigninReq
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		return
	}
	login := req.login()
	if login == "" {
		_ = c.Error(apperr.Validation("invalid input", apperr.FieldError{
			Field: "login", Rule: "required", Message: "email or username is required",
		}))
		return
	}

	acct, tok, err := h.svc.Signin(c.Request.Context(), login, req.Password)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      tok.Value,
		"expires_at": tok.ExpiresAt,
		"user":       service.NewAccountView(acct),
	})
}

func (h *UserHandler) Signout(c *gin.Context) {
	id := middleware.IdentityFrom(c)
	if err := h.svc.Signout(c.Request.Context(), id.ID, middleware.TokenIDFrom(c)); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "signed out"})
}

func (h *UserHandler) Me(c *gin.Context) {
	acct, err := h.svc.Me(c.Request.Context(), middleware.IdentityFrom(c).ID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, service.NewAccountView(acct))
}
