package boltdb

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/erp_ledger/internal/apperrors"
	"github.com/SscSPs/erp_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/erp_ledger/internal/core/ports/repositories"
	bolt "go.etcd.io/bbolt"
)

type accountRepository struct {
	store *Store
}

// NewAccountRepository creates an account repository over the store.
func NewAccountRepository(store *Store) portsrepo.AccountRepositoryFacade {
	return &accountRepository{store: store}
}

var _ portsrepo.AccountRepositoryFacade = (*accountRepository)(nil)

func (r *accountRepository) FindAccountByID(ctx context.Context, organizationID, accountID string) (*domain.Account, error) {
	var account domain.Account
	err := r.store.db.View(func(tx *bolt.Tx) error {
		found, err := getJSON(tx.Bucket([]byte(bucketAccounts)), orgKey(organizationID, accountID), &account)
		if err != nil {
			return err
		}
		if !found {
			return apperrors.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) FindAccountsByIDs(ctx context.Context, organizationID string, accountIDs []string) (map[string]domain.Account, error) {
	accounts := make(map[string]domain.Account, len(accountIDs))
	err := r.store.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketAccounts))
		for _, id := range accountIDs {
			var account domain.Account
			found, err := getJSON(b, orgKey(organizationID, id), &account)
			if err != nil {
				return err
			}
			if found {
				accounts[id] = account
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *accountRepository) ListAccounts(ctx context.Context, organizationID string, filter domain.AccountFilter) ([]domain.Account, error) {
	accounts := []domain.Account{}
	err := r.store.db.View(func(tx *bolt.Tx) error {
		return scanOrg(tx.Bucket([]byte(bucketAccounts)), organizationID, func(a domain.Account) error {
			if filter.Matches(a) {
				accounts = append(accounts, a)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Code < accounts[j].Code })
	return accounts, nil
}

func (r *accountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	return r.store.db.Update(func(tx *bolt.Tx) error {
		accounts := tx.Bucket([]byte(bucketAccounts))
		codes := tx.Bucket([]byte(bucketAccountCodes))

		codeKey := orgKey(account.OrganizationID, account.Code)
		if codes.Get(codeKey) != nil {
			return fmt.Errorf("account code %s: %w", account.Code, apperrors.ErrDuplicate)
		}
		key := orgKey(account.OrganizationID, account.AccountID)
		if accounts.Get(key) != nil {
			return fmt.Errorf("account %s: %w", account.AccountID, apperrors.ErrDuplicate)
		}
		if account.ParentAccountID != "" && accounts.Get(orgKey(account.OrganizationID, account.ParentAccountID)) == nil {
			return fmt.Errorf("%w: parent account %s does not exist", apperrors.ErrValidation, account.ParentAccountID)
		}

		if err := putJSON(accounts, key, account); err != nil {
			return err
		}
		return codes.Put(codeKey, []byte(account.AccountID))
	})
}

func (r *accountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	return r.store.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketAccounts))
		key := orgKey(account.OrganizationID, account.AccountID)

		var stored domain.Account
		found, err := getJSON(b, key, &stored)
		if err != nil {
			return err
		}
		if !found {
			return apperrors.ErrNotFound
		}

		stored.Name = account.Name
		stored.IsActive = account.IsActive
		stored.LastUpdatedAt = account.LastUpdatedAt
		stored.LastUpdatedBy = account.LastUpdatedBy
		return putJSON(b, key, stored)
	})
}

func (r *accountRepository) DeleteAccount(ctx context.Context, organizationID, accountID string) error {
	return r.store.db.Update(func(tx *bolt.Tx) error {
		accounts := tx.Bucket([]byte(bucketAccounts))
		key := orgKey(organizationID, accountID)

		var stored domain.Account
		found, err := getJSON(accounts, key, &stored)
		if err != nil {
			return err
		}
		if !found {
			return apperrors.ErrNotFound
		}

		referenced, err := entriesReference(tx, organizationID, func(e domain.JournalEntry) bool {
			for _, l := range e.Lines {
				if l.AccountID == accountID {
					return true
				}
			}
			return false
		})
		if err != nil {
			return err
		}
		if referenced {
			return fmt.Errorf("account %s: %w", stored.Code, apperrors.ErrInUse)
		}

		hasChild := false
		err = scanOrg(accounts, organizationID, func(a domain.Account) error {
			if a.ParentAccountID == accountID {
				hasChild = true
			}
			return nil
		})
		if err != nil {
			return err
		}
		if hasChild {
			return fmt.Errorf("account %s has child accounts: %w", stored.Code, apperrors.ErrInUse)
		}

		if err := accounts.Delete(key); err != nil {
			return err
		}
		return tx.Bucket([]byte(bucketAccountCodes)).Delete(orgKey(organizationID, stored.Code))
	})
}

// entriesReference reports whether any entry of the organization satisfies match.
func entriesReference(tx *bolt.Tx, organizationID string, match func(domain.JournalEntry) bool) (bool, error) {
	found := false
	err := scanOrg(tx.Bucket([]byte(bucketEntries)), organizationID, func(e domain.JournalEntry) error {
		if !found && match(e) {
			found = true
		}
		return nil
	})
	return found, err
}
