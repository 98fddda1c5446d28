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

type journalRepository struct {
	store *Store
}

// NewJournalRepository creates a journal repository over the store.
func NewJournalRepository(store *Store) portsrepo.JournalRepositoryFacade {
	return &journalRepository{store: store}
}

var _ portsrepo.JournalRepositoryFacade = (*journalRepository)(nil)

func (r *journalRepository) FindJournalByID(ctx context.Context, organizationID, journalID string) (*domain.Journal, error) {
	var journal domain.Journal
	err := r.store.db.View(func(tx *bolt.Tx) error {
		found, err := getJSON(tx.Bucket([]byte(bucketJournals)), orgKey(organizationID, journalID), &journal)
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
	return &journal, nil
}

func (r *journalRepository) ListJournals(ctx context.Context, organizationID string, filter domain.JournalFilter) ([]domain.Journal, error) {
	journals := []domain.Journal{}
	err := r.store.db.View(func(tx *bolt.Tx) error {
		return scanOrg(tx.Bucket([]byte(bucketJournals)), organizationID, func(j domain.Journal) error {
			if filter.Matches(j) {
				journals = append(journals, j)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(journals, func(i, j int) bool { return journals[i].Code < journals[j].Code })
	return journals, nil
}

func (r *journalRepository) SaveJournal(ctx context.Context, journal domain.Journal) error {
	return r.store.db.Update(func(tx *bolt.Tx) error {
		journals := tx.Bucket([]byte(bucketJournals))
		codes := tx.Bucket([]byte(bucketJournalCodes))

		codeKey := orgKey(journal.OrganizationID, journal.Code)
		if codes.Get(codeKey) != nil {
			return fmt.Errorf("journal code %s: %w", journal.Code, apperrors.ErrDuplicate)
		}
		key := orgKey(journal.OrganizationID, journal.JournalID)
		if journals.Get(key) != nil {
			return fmt.Errorf("journal %s: %w", journal.JournalID, apperrors.ErrDuplicate)
		}

		if err := putJSON(journals, key, journal); err != nil {
			return err
		}
		return codes.Put(codeKey, []byte(journal.JournalID))
	})
}

func (r *journalRepository) UpdateJournal(ctx context.Context, journal domain.Journal) error {
	return r.store.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketJournals))
		key := orgKey(journal.OrganizationID, journal.JournalID)

		var stored domain.Journal
		found, err := getJSON(b, key, &stored)
		if err != nil {
			return err
		}
		if !found {
			return apperrors.ErrNotFound
		}

		stored.Name = journal.Name
		stored.IsActive = journal.IsActive
		stored.LastUpdatedAt = journal.LastUpdatedAt
		stored.LastUpdatedBy = journal.LastUpdatedBy
		return putJSON(b, key, stored)
	})
}

func (r *journalRepository) DeleteJournal(ctx context.Context, organizationID, journalID string) error {
	return r.store.db.Update(func(tx *bolt.Tx) error {
		journals := tx.Bucket([]byte(bucketJournals))
		key := orgKey(organizationID, journalID)

		var stored domain.Journal
		found, err := getJSON(journals, key, &stored)
		if err != nil {
			return err
		}
		if !found {
			return apperrors.ErrNotFound
		}

		referenced, err := entriesReference(tx, organizationID, func(e domain.JournalEntry) bool {
			return e.JournalID == journalID
		})
		if err != nil {
			return err
		}
		if referenced {
			return fmt.Errorf("journal %s: %w", stored.Code, apperrors.ErrInUse)
		}

		if err := journals.Delete(key); err != nil {
			return err
		}
		return tx.Bucket([]byte(bucketJournalCodes)).Delete(orgKey(organizationID, stored.Code))
	})
}
