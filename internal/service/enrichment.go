package service

import (
	"context"
	"log/slog"

	"Club_Portal/internal/model"
	"Club_Portal/internal/repository/store"
)

// AccountRef is the public display form of a referenced account.
type AccountRef struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// lookupAccounts loads the referenced accounts. Failures are logged and yield an
// empty map so the primary read still succeeds.
func lookupAccounts(ctx context.Context, accounts *store.AccountRepository, ids ...*string) map[string]model.Account {
	seen := make(map[string]struct{}, len(ids))
	var want []string
	for _, id := range ids {
		if id == nil || *id == "" {
			continue
		}
		if _, ok := seen[*id]; ok {
			continue
		}
		seen[*id] = struct{}{}
		want = append(want, *id)
	}
	found, err := accounts.FindByIDs(ctx, want)
	if err != nil {
		slog.Warn("failed to enrich account references", "error", err)
		return map[string]model.Account{}
	}
	return found
}

func refOf(found map[string]model.Account, id *string) *AccountRef {
	if id == nil {
		return nil
	}
	a, ok := found[*id]
	if !ok {
		return nil
	}
	return &AccountRef{ID: a.ID, Username: a.Username}
}
