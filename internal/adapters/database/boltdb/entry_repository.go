package boltdb

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/SscSPs/erp_ledger/internal/apperrors"
	"github.com/SscSPs/erp_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/erp_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/erp_ledger/internal/utils/pagination"
	bolt "go.etcd.io/bbolt"
)

type entryRepository struct {
	store *Store
}

// NewEntryRepository creates a journal entry repository over the store.
func NewEntryRepository(store *Store) portsrepo.EntryRepositoryFacade {
	return &entryRepository{store: store}
}

var _ portsrepo.EntryRepositoryFacade = (*entryRepository)(nil)

func (r *entryRepository) FindEntryByID(ctx context.Context, organizationID, entryID string) (*domain.JournalEntry, error) {
	var entry domain.JournalEntry
	err := r.store.db.View(func(tx *bolt.Tx) error {
		found, err := getJSON(tx.Bucket([]byte(bucketEntries)), orgKey(organizationID, entryID), &entry)
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
	sort.SliceStable(entry.Lines, func(i, j int) bool { return entry.Lines[i].LineOrder < entry.Lines[j].LineOrder })
	return &entry, nil
}

func (r *entryRepository) ListEntries(ctx context.Context, organizationID string, filter domain.EntryListFilter) ([]domain.JournalEntry, error) {
	entries := []domain.JournalEntry{}
	err := r.store.db.View(func(tx *bolt.Tx) error {
		return scanOrg(tx.Bucket([]byte(bucketEntries)), organizationID, func(e domain.JournalEntry) error {
			if filter.Matches(e) {
				e.Lines = nil
				entries = append(entries, e)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.EntryDate.Equal(b.EntryDate) {
			return a.EntryDate.After(b.EntryDate)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.EntryID < b.EntryID
	})

	start, end := pagination.Window(len(entries), filter.Limit, filter.Offset)
	return entries[start:end], nil
}

func (r *entryRepository) IsAccountReferenced(ctx context.Context, organizationID, accountID string) (bool, error) {
	var referenced bool
	err := r.store.db.View(func(tx *bolt.Tx) error {
		var err error
		referenced, err = entriesReference(tx, organizationID, func(e domain.JournalEntry) bool {
			for _, l := range e.Lines {
				if l.AccountID == accountID {
					return true
				}
			}
			return false
		})
		return err
	})
	return referenced, err
}

func (r *entryRepository) IsJournalReferenced(ctx context.Context, organizationID, journalID string) (bool, error) {
	var referenced bool
	err := r.store.db.View(func(tx *bolt.Tx) error {
		var err error
		referenced, err = entriesReference(tx, organizationID, func(e domain.JournalEntry) bool {
			return e.JournalID == journalID
		})
		return err
	})
	return referenced, err
}

func (r *entryRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	return r.store.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketEntries))
		key := orgKey(entry.OrganizationID, entry.EntryID)
		if b.Get(key) != nil {
			return fmt.Errorf("entry %s: %w", entry.EntryID, apperrors.ErrDuplicate)
		}
		if err := checkEntryReferences(tx, entry); err != nil {
			return err
		}
		return putJSON(b, key, entry)
	})
}

func (r *entryRepository) ReplaceDraftEntry(ctx context.Context, entry domain.JournalEntry) error {
	return r.updateEntry(entry.OrganizationID, entry.EntryID, []domain.EntryStatus{domain.EntryDraft}, func(tx *bolt.Tx, stored *domain.JournalEntry) error {
		if err := checkEntryReferences(tx, entry); err != nil {
			return err
		}
		entry.Status = stored.Status
		entry.CreatedAt = stored.CreatedAt
		entry.CreatedBy = stored.CreatedBy
		*stored = entry
		return nil
	})
}

func (r *entryRepository) MarkEntryPosted(ctx context.Context, organizationID, entryID, userID string, postedAt time.Time, entryDate *time.Time) error {
	return r.updateEntry(organizationID, entryID, []domain.EntryStatus{domain.EntryDraft}, func(_ *bolt.Tx, stored *domain.JournalEntry) error {
		stored.Status = domain.EntryPosted
		stored.PostedAt = &postedAt
		stored.PostedBy = userID
		if entryDate != nil {
			stored.EntryDate = domain.NormalizeDate(*entryDate)
		}
		stored.LastUpdatedAt = postedAt
		stored.LastUpdatedBy = userID
		return nil
	})
}

func (r *entryRepository) MarkEntryCancelled(ctx context.Context, organizationID, entryID, userID string, cancelledAt time.Time, from []domain.EntryStatus) error {
	return r.updateEntry(organizationID, entryID, from, func(_ *bolt.Tx, stored *domain.JournalEntry) error {
		stored.Status = domain.EntryCancelled
		stored.CancelledAt = &cancelledAt
		stored.CancelledBy = userID
		stored.LastUpdatedAt = cancelledAt
		stored.LastUpdatedBy = userID
		return nil
	})
}

func (r *entryRepository) DeleteDraftEntry(ctx context.Context, organizationID, entryID string) error {
	return r.store.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketEntries))
		key := orgKey(organizationID, entryID)

		var stored domain.JournalEntry
		found, err := getJSON(b, key, &stored)
		if err != nil {
			return err
		}
		if !found {
			return apperrors.ErrNotFound
		}
		if stored.Status != domain.EntryDraft {
			return fmt.Errorf("entry is %s: %w", stored.Status, apperrors.ErrInvalidState)
		}
		return b.Delete(key)
	})
}

// updateEntry applies mutate to the stored entry inside one write transaction,
// provided its current status is one of from.
func (r *entryRepository) updateEntry(organizationID, entryID string, from []domain.EntryStatus, mutate func(*bolt.Tx, *domain.JournalEntry) error) error {
	return r.store.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketEntries))
		key := orgKey(organizationID, entryID)

		var stored domain.JournalEntry
		found, err := getJSON(b, key, &stored)
		if err != nil {
			return err
		}
		if !found {
			return apperrors.ErrNotFound
		}
		if !slices.Contains(from, stored.Status) {
			return fmt.Errorf("entry is %s: %w", stored.Status, apperrors.ErrInvalidState)
		}
		if err := mutate(tx, &stored); err != nil {
			return err
		}
		return putJSON(b, key, stored)
	})
}

// checkEntryReferences mirrors the foreign keys of the relational schema.
func checkEntryReferences(tx *bolt.Tx, entry domain.JournalEntry) error {
	if tx.Bucket([]byte(bucketJournals)).Get(orgKey(entry.OrganizationID, entry.JournalID)) == nil {
		return fmt.Errorf("journal %s: %w", entry.JournalID, apperrors.ErrNotFound)
	}
	accounts := tx.Bucket([]byte(bucketAccounts))
	for _, l := range entry.Lines {
		if accounts.Get(orgKey(entry.OrganizationID, l.AccountID)) == nil {
			return fmt.Errorf("account %s: %w", l.AccountID, apperrors.ErrNotFound)
		}
	}
	return nil
}
