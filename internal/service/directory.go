package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/chadmarket/backoffice/internal/model"
	"github.com/chadmarket/backoffice/internal/store"
)

// Directory is the user browsing and sanction surface.
type Directory struct {
	store *store.Store
}

// NewDirectory creates the user directory service.
func NewDirectory(st *store.Store) *Directory {
	return &Directory{store: st}
}

// DirectoryFilter narrows the account list. An empty field or the sentinel
// "all" means "no constraint"; set fields compose with AND.
type DirectoryFilter struct {
	Query  string // case-insensitive substring of name or email
	Status string // "all", "verified" or "unverified"
	City   string // "all" or an exact city match
}

// List returns all accounts newest first, narrowed by the filter.
func (d *Directory) List(ctx context.Context, filter DirectoryFilter) ([]model.Account, error) {
	accounts, err := d.store.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	return FilterAccounts(accounts, filter), nil
}

// FilterAccounts applies a directory filter in memory. Matching an empty
// filter returns the input unchanged.
func FilterAccounts(accounts []model.Account, filter DirectoryFilter) []model.Account {
	query := strings.ToLower(strings.TrimSpace(filter.Query))
	out := make([]model.Account, 0, len(accounts))
	for _, a := range accounts {
		if query != "" &&
			!strings.Contains(strings.ToLower(a.FullName), query) &&
			!strings.Contains(strings.ToLower(a.Email), query) {
			continue
		}
		switch filter.Status {
		case "verified":
			if a.VerificationStatus != model.VerificationVerified {
				continue
			}
		case "unverified":
			if a.VerificationStatus == model.VerificationVerified {
				continue
			}
		default:
			// "", "all" and anything unrecognized place no constraint.
		}
		if filter.City != "" && filter.City != "all" && a.City != filter.City {
			continue
		}
		out = append(out, a)
	}
	return out
}

// Ban permanently bans the account. Banning an already banned account is a
// no-op success.
func (d *Directory) Ban(ctx context.Context, accountID string) error {
	account, err := d.store.GetAccount(ctx, accountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%w: account %s", ErrNotFound, accountID)
		}
		return fmt.Errorf("%w: %v", ErrUpdateFailed, err)
	}
	if account.Status == model.StatusBanned {
		return nil
	}
	if err := d.store.SetAccountStatus(ctx, accountID, model.StatusBanned); err != nil {
		return fmt.Errorf("%w: %v", ErrUpdateFailed, err)
	}
	return nil
}
