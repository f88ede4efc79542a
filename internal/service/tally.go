package service

import (
	"math"

	"Club_Portal/internal/model"
)

type OptionResult struct {
	ID         string  `json:"id"`
	Text       string  `json:"option_text"`
	Votes      int64   `json:"votes"`
	Percentage float64 `json:"percentage"`
}

type Results struct {
	TotalVotes int64          `json:"total_votes"`
	Options    []OptionResult `json:"options"`
}

// Tally computes per-option counts and percentages in option order. Percentages are
// rounded to two decimals and are 0 when nobody has voted.
func Tally(options []model.PollOption, counts map[string]int64) Results {
	res := Results{Options: make([]OptionResult, 0, len(options))}
	for _, o := range options {
		res.TotalVotes += counts[o.ID]
	}
	for _, o := range options {
		n := counts[o.ID]
		res.Options = append(res.Options, OptionResult{
			ID:         o.ID,
			Text:       o.OptionText,
			Votes:      n,
			Percentage: percentage(n, res.TotalVotes),
		})
	}
	return res
}

func percentage(n, total int64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(n)*10000/float64(total)) / 100
}
