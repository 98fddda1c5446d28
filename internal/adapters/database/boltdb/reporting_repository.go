package boltdb

import (
	"context"
	"slices"
	"sort"

	"github.com/SscSPs/erp_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/erp_ledger/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
	bolt "go.etcd.io/bbolt"
)

type reportingRepository struct {
	store *Store
}

// NewReportingRepository creates the report reads over the store.
func NewReportingRepository(store *Store) portsrepo.ReportingRepository {
	return &reportingRepository{store: store}
}

var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

func (r *reportingRepository) SumActivityByAccount(ctx context.Context, organizationID string, query domain.ActivityQuery) ([]domain.AccountActivity, error) {
	to := domain.NormalizeDate(query.To)
	var from *domain.DateRange
	if query.From != nil {
		from = &domain.DateRange{From: *query.From, To: to}
	}

	activity := map[string]*domain.AccountActivity{}
	err := r.store.db.View(func(tx *bolt.Tx) error {
		err := scanOrg(tx.Bucket([]byte(bucketAccounts)), organizationID, func(a domain.Account) error {
			if !a.IsActive {
				return nil
			}
			if len(query.AccountIDs) > 0 && !slices.Contains(query.AccountIDs, a.AccountID) {
				return nil
			}
			if len(query.AccountTypes) > 0 && !slices.Contains(query.AccountTypes, a.AccountType) {
				return nil
			}
			activity[a.AccountID] = &domain.AccountActivity{
				AccountID:   a.AccountID,
				Code:        a.Code,
				Name:        a.Name,
				AccountType: a.AccountType,
				Debit:       decimal.Zero,
				Credit:      decimal.Zero,
			}
			return nil
		})
		if err != nil {
			return err
		}

		return scanOrg(tx.Bucket([]byte(bucketEntries)), organizationID, func(e domain.JournalEntry) error {
			if e.Status != domain.EntryPosted {
				return nil
			}
			day := domain.NormalizeDate(e.EntryDate)
			if day.After(to) || (from != nil && !from.Contains(day)) {
				return nil
			}
			for _, l := range e.Lines {
				if a, ok := activity[l.AccountID]; ok {
					a.Debit = a.Debit.Add(l.Debit)
					a.Credit = a.Credit.Add(l.Credit)
				}
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	out := make([]domain.AccountActivity, 0, len(activity))
	for _, a := range activity {
		if a.Debit.IsZero() && a.Credit.IsZero() {
			continue
		}
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (r *reportingRepository) ListLedgerLines(ctx context.Context, organizationID, accountID string, period domain.DateRange) ([]domain.LedgerLine, error) {
	type ordered struct {
		line      domain.LedgerLine
		createdAt int64
		lineOrder int
	}
	var rows []ordered

	err := r.store.db.View(func(tx *bolt.Tx) error {
		return scanOrg(tx.Bucket([]byte(bucketEntries)), organizationID, func(e domain.JournalEntry) error {
			if e.Status != domain.EntryPosted || !period.Contains(e.EntryDate) {
				return nil
			}
			for _, l := range e.Lines {
				if l.AccountID != accountID {
					continue
				}
				rows = append(rows, ordered{
					line: domain.LedgerLine{
						EntryID:          e.EntryID,
						LineID:           l.LineID,
						EntryDate:        domain.NormalizeDate(e.EntryDate),
						Reference:        e.Reference,
						EntryDescription: e.Description,
						Label:            l.Label,
						Debit:            l.Debit,
						Credit:           l.Credit,
					},
					createdAt: e.CreatedAt.UnixNano(),
					lineOrder: l.LineOrder,
				})
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		switch {
		case !a.line.EntryDate.Equal(b.line.EntryDate):
			return a.line.EntryDate.Before(b.line.EntryDate)
		case a.createdAt != b.createdAt:
			return a.createdAt < b.createdAt
		case a.line.EntryID != b.line.EntryID:
			return a.line.EntryID < b.line.EntryID
		default:
			return a.lineOrder < b.lineOrder
		}
	})

	lines := make([]domain.LedgerLine, len(rows))
	for i, row := range rows {
		lines[i] = row.line
	}
	return lines, nil
}
