// Package boltdb is the embedded storage adapter. Every record is a JSON value
// keyed by organization and id, and every write runs in a single bbolt update.
package boltdb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	portsrepo "github.com/SscSPs/erp_ledger/internal/core/ports/repositories"
	bolt "go.etcd.io/bbolt"
)

// Bucket names.
const (
	bucketAccounts     = "accounts"
	bucketAccountCodes = "account_codes"
	bucketJournals     = "journals"
	bucketJournalCodes = "journal_codes"
	bucketEntries      = "journal_entries"
)

// keySep cannot appear in organization ids taken from a header.
const keySep = 0x00

// Store represents the bbolt database wrapper.
type Store struct {
	db *bolt.DB
}

// Open opens (or creates) the database file and initializes buckets.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		buckets := []string{bucketAccounts, bucketAccountCodes, bucketJournals, bucketJournalCodes, bucketEntries}
		for _, bucket := range buckets {
			if _, err := tx.CreateBucketIfNotExists([]byte(bucket)); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks that the database is still open.
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.View(func(tx *bolt.Tx) error {
		if tx.Bucket([]byte(bucketEntries)) == nil {
			return fmt.Errorf("bucket %s not found", bucketEntries)
		}
		return nil
	})
}

// NewRepositoryProvider builds every repository over the store.
func NewRepositoryProvider(store *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:   NewAccountRepository(store),
		JournalRepo:   NewJournalRepository(store),
		EntryRepo:     NewEntryRepository(store),
		ReportingRepo: NewReportingRepository(store),
		Ping:          store.Ping,
	}
}

func orgPrefix(organizationID string) []byte {
	return append([]byte(organizationID), keySep)
}

func orgKey(organizationID, id string) []byte {
	return append(orgPrefix(organizationID), id...)
}

// getJSON loads key into v and reports whether it existed.
func getJSON(b *bolt.Bucket, key []byte, v any) (bool, error) {
	data := b.Get(key)
	if data == nil {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return true, fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}
	return true, nil
}

func putJSON(b *bolt.Bucket, key []byte, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	return b.Put(key, data)
}

// forEachInOrg calls fn with every value stored under the organization.
func forEachInOrg(b *bolt.Bucket, organizationID string, fn func(v []byte) error) error {
	prefix := orgPrefix(organizationID)
	c := b.Cursor()
	for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
		if err := fn(v); err != nil {
			return err
		}
	}
	return nil
}

// scanOrg decodes every record of the organization into a T and passes it to fn.
func scanOrg[T any](b *bolt.Bucket, organizationID string, fn func(T) error) error {
	return forEachInOrg(b, organizationID, func(v []byte) error {
		var item T
		if err := json.Unmarshal(v, &item); err != nil {
			return fmt.Errorf("failed to unmarshal record: %w", err)
		}
		return fn(item)
	})
}
