package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/erp_ledger/internal/apperrors"
	"github.com/SscSPs/erp_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/erp_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/erp_ledger/internal/core/ports/services"
	"github.com/SscSPs/erp_ledger/internal/dto"
	"github.com/google/uuid"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	entryReader portsrepo.EntryReader
}

// AccountServiceOption is a functional option for configuring the account service
type AccountServiceOption func(*accountService)

// WithAccountAuthorizer sets the organization authorizer
func WithAccountAuthorizer(authorizer portssvc.OrganizationAuthorizerSvc) AccountServiceOption {
	return func(s *accountService) {
		s.OrganizationAuthorizer = authorizer
	}
}

// NewAccountService creates a new account service. The entry reader backs the
// referential check performed before an account is deleted.
func NewAccountService(repo portsrepo.AccountRepositoryFacade, entryReader portsrepo.EntryReader, options ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{
		accountRepo: repo,
		entryReader: entryReader,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, organizationID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.CapAccountingWrite); err != nil {
		return nil, err
	}

	if !req.AccountType.IsValid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.AccountType)
	}
	code := strings.TrimSpace(req.Code)
	if code == "" {
		return nil, fmt.Errorf("%w: account code is required", apperrors.ErrValidation)
	}

	parentID := ""
	if req.ParentAccountID != nil && *req.ParentAccountID != "" {
		parentID = *req.ParentAccountID
		if _, err := s.accountRepo.FindAccountByID(ctx, organizationID, parentID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: parent account %s does not exist", apperrors.ErrValidation, parentID)
			}
			s.LogError(ctx, err, "Failed to find parent account", slog.String("parent_id", parentID))
			return nil, fmt.Errorf("failed to find parent account: %w", err)
		}
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:       uuid.NewString(),
		OrganizationID:  organizationID,
		Code:            code,
		Name:            req.Name,
		AccountType:     req.AccountType,
		ParentAccountID: parentID,
		CurrencyCode:    strings.ToUpper(req.CurrencyCode),
		IsActive:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("account code %s already exists: %w", code, err)
		}
		s.LogError(ctx, err, "Failed to save account",
			slog.String("account_id", account.AccountID),
			slog.String("organization_id", organizationID))
		return nil, err
	}

	s.LogInfo(ctx, "Account created successfully",
		slog.String("account_id", account.AccountID),
		slog.String("code", account.Code))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, organizationID, accountID, userID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.CapAccountingRead); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, organizationID, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID", slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, organizationID, userID string, filter domain.AccountFilter) ([]domain.Account, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.CapAccountingRead); err != nil {
		return nil, err
	}

	accounts, err := s.accountRepo.ListAccounts(ctx, organizationID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, fmt.Errorf("failed to list accounts for organization %s: %w", organizationID, err)
	}

	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

func (s *accountService) GetAccountHierarchy(ctx context.Context, organizationID, userID string) ([]domain.Account, error) {
	accounts, err := s.ListAccounts(ctx, organizationID, userID, domain.AccountFilter{})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(accounts, func(i, j int) bool { return accounts[i].Code < accounts[j].Code })
	return accounts, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, organizationID, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.CapAccountingWrite); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, organizationID, accountID)
	if err != nil {
		return nil, err
	}
	if account.IsSystem {
		return nil, fmt.Errorf("account %s: %w", account.Code, apperrors.ErrSystemAccount)
	}

	updated := false
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: account name cannot be empty", apperrors.ErrValidation)
		}
		if name != account.Name {
			account.Name = name
			updated = true
		}
	}
	if req.IsActive != nil && *req.IsActive != account.IsActive {
		account.IsActive = *req.IsActive
		updated = true
	}
	if !updated {
		return account, nil
	}

	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = userID
	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account updated successfully", slog.String("account_id", accountID))
	return account, nil
}

func (s *accountService) DeleteAccount(ctx context.Context, organizationID, accountID, userID string) error {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.CapAccountingWrite); err != nil {
		return err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, organizationID, accountID)
	if err != nil {
		return err
	}
	if account.IsSystem {
		return fmt.Errorf("account %s: %w", account.Code, apperrors.ErrSystemAccount)
	}

	referenced, err := s.entryReader.IsAccountReferenced(ctx, organizationID, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to check account references", slog.String("account_id", accountID))
		return fmt.Errorf("failed to check account references: %w", err)
	}
	if referenced {
		return fmt.Errorf("account %s has journal entry lines: %w", account.Code, apperrors.ErrInUse)
	}

	accounts, err := s.accountRepo.ListAccounts(ctx, organizationID, domain.AccountFilter{})
	if err != nil {
		return fmt.Errorf("failed to check child accounts: %w", err)
	}
	for _, a := range accounts {
		if a.ParentAccountID == accountID {
			return fmt.Errorf("account %s has child account %s: %w", account.Code, a.Code, apperrors.ErrInUse)
		}
	}

	if err := s.accountRepo.DeleteAccount(ctx, organizationID, accountID); err != nil {
		if !errors.Is(err, apperrors.ErrInUse) {
			s.LogError(ctx, err, "Failed to delete account", slog.String("account_id", accountID))
		}
		return err
	}

	s.LogInfo(ctx, "Account deleted", slog.String("account_id", accountID), slog.String("code", account.Code))
	return nil
}

func (s *accountService) ImportTemplate(ctx context.Context, organizationID string, template domain.ChartTemplate, currencyCode, userID string) (int, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.CapAccountingWrite); err != nil {
		return 0, err
	}

	chart, ok := chartTemplates[template]
	if !ok {
		return 0, fmt.Errorf("%w: unknown chart template %q", apperrors.ErrValidation, template)
	}
	if currencyCode == "" {
		currencyCode = chart.defaultCurrency
	}
	currencyCode = strings.ToUpper(currencyCode)

	existing, err := s.accountRepo.ListAccounts(ctx, organizationID, domain.AccountFilter{})
	if err != nil {
		return 0, fmt.Errorf("failed to list existing accounts: %w", err)
	}
	idByCode := make(map[string]string, len(existing)+len(chart.accounts))
	for _, a := range existing {
		idByCode[a.Code] = a.AccountID
	}

	now := time.Now().UTC()
	created := 0
	for _, tmpl := range chart.accounts {
		if _, exists := idByCode[tmpl.code]; exists {
			continue
		}
		account := domain.Account{
			AccountID:       uuid.NewString(),
			OrganizationID:  organizationID,
			Code:            tmpl.code,
			Name:            tmpl.name,
			AccountType:     tmpl.accountType,
			ParentAccountID: idByCode[tmpl.parentCode],
			CurrencyCode:    currencyCode,
			IsActive:        true,
			IsSystem:        tmpl.system,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
		if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
			if errors.Is(err, apperrors.ErrDuplicate) {
				// created concurrently; the stored account keeps its own id
				continue
			}
			s.LogError(ctx, err, "Failed to import template account",
				slog.String("template", string(template)),
				slog.String("code", tmpl.code))
			return created, fmt.Errorf("failed to import account %s: %w", tmpl.code, err)
		}
		idByCode[account.Code] = account.AccountID
		created++
	}

	s.LogInfo(ctx, "Chart template imported",
		slog.String("template", string(template)),
		slog.Int("created", created))
	return created, nil
}
