package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oseko/lendbook-backend/internal/domain"
	"github.com/oseko/lendbook-backend/internal/websocket"
	"github.com/shopspring/decimal"
)

// LedgerService is the single write path into the ledger. Every commit
// validates funds, mutates balances, drives the loan lifecycle and recomputes
// report aggregates inside one atomic unit.
type LedgerService struct {
	store          domain.LedgerStore
	eventPublisher websocket.EventPublisher
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(store domain.LedgerStore) *LedgerService {
	return &LedgerService{store: store}
}

// SetEventPublisher sets the publisher for real-time ledger events
func (s *LedgerService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *LedgerService) publishEvent(ownerID int32, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(ownerID, event)
	}
}

// CommitResult carries everything one commit produced
type CommitResult struct {
	Transaction *domain.Transaction
	Loan        *domain.Loan // set when the commit created or settled a loan
}

// CommitTransaction validates and persists one transaction together with all
// of its ledger effects. Either every effect commits or none do; a rejected
// transaction leaves no trace.
func (s *LedgerService) CommitTransaction(ctx context.Context, ownerID int32, input domain.TransactionInput) (*CommitResult, error) {
	tx, err := buildTransaction(ownerID, input)
	if err != nil {
		return nil, err
	}

	var (
		committed   *domain.Transaction
		loan        *domain.Loan
		loanCreated bool
	)

	err = s.store.WithinUnit(ctx, func(unit domain.LedgerUnit) error {
		var fromAccount, toAccount *domain.Account

		// Balance validation runs before any mutation so a rejected
		// transaction leaves all state untouched.
		if tx.FromAccountID != nil {
			fromAccount, err = unit.AccountForUpdate(ctx, ownerID, *tx.FromAccountID)
			if err != nil {
				return err
			}
			if !fromAccount.IsActive() {
				return domain.ErrAccountInactive
			}
			if fromAccount.CurrentBalance.LessThan(tx.Amount) {
				return domain.ErrInsufficientFunds
			}
		}
		if tx.ToAccountID != nil {
			toAccount, err = unit.AccountForUpdate(ctx, ownerID, *tx.ToAccountID)
			if err != nil {
				return err
			}
			if !toAccount.IsActive() {
				return domain.ErrAccountInactive
			}
		}

		committed, err = unit.InsertTransaction(ctx, tx)
		if err != nil {
			return err
		}

		// Balance mutation: debit leg before credit leg. BalanceAfter is
		// stamped with the destination balance when present, else the source.
		var balanceAfter *decimal.Decimal
		if fromAccount != nil {
			fromAccount.PreviousBalance = fromAccount.CurrentBalance
			fromAccount.CurrentBalance = fromAccount.CurrentBalance.Sub(committed.Amount)
			fromAccount.LastTransactionID = &committed.ID
			if err := unit.SaveAccountBalance(ctx, fromAccount); err != nil {
				return err
			}
			balanceAfter = &fromAccount.CurrentBalance
		}
		if toAccount != nil {
			toAccount.PreviousBalance = toAccount.CurrentBalance
			toAccount.CurrentBalance = toAccount.CurrentBalance.Add(committed.Amount)
			toAccount.LastTransactionID = &committed.ID
			if err := unit.SaveAccountBalance(ctx, toAccount); err != nil {
				return err
			}
			balanceAfter = &toAccount.CurrentBalance
		}

		// Loan lifecycle
		switch {
		case committed.IsDisbursement():
			loan, err = unit.InsertLoan(ctx, newLoanFromDisbursement(committed))
			if err != nil {
				return err
			}
			loanCreated = true
			committed.LoanID = &loan.ID
		case committed.IsPayment():
			loan, err = unit.LoanForUpdate(ctx, ownerID, *committed.LoanID)
			if err != nil {
				return err
			}
			loan.RemainingBalance = loan.RemainingBalance.Sub(committed.Amount)
			if loan.RemainingBalance.LessThanOrEqual(decimal.Zero) {
				loan.Status = domain.LoanStatusPaid
			} else {
				loan.Status = domain.LoanStatusActive
			}
			loan.UpdatedAt = time.Now().UTC()
			if err := unit.SaveLoan(ctx, loan); err != nil {
				return err
			}
		}

		committed.BalanceAfter = balanceAfter
		if balanceAfter != nil || committed.LoanID != nil {
			if err := unit.StampTransaction(ctx, committed.ID, balanceAfter, committed.LoanID); err != nil {
				return err
			}
		}

		// Report aggregation is part of the atomic unit: a failed recompute
		// rolls back the whole commit.
		return s.aggregatePeriod(ctx, unit, ownerID, committed.OccurredOn.Year(), int(committed.OccurredOn.Month()))
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(ownerID, websocket.TransactionCommitted(committed))
	if loan != nil {
		if loanCreated {
			s.publishEvent(ownerID, websocket.LoanCreated(loan))
		} else {
			s.publishEvent(ownerID, websocket.LoanUpdated(loan))
		}
	}
	s.publishEvent(ownerID, websocket.ReportUpdated(domain.Period{
		OwnerID: ownerID,
		Year:    committed.OccurredOn.Year(),
		Month:   int(committed.OccurredOn.Month()),
	}))

	return &CommitResult{Transaction: committed, Loan: loan}, nil
}

// aggregatePeriod recomputes one (owner, year, month) bucket and its year
// from the full transaction table and upserts both report rows
func (s *LedgerService) aggregatePeriod(ctx context.Context, unit domain.LedgerUnit, ownerID int32, year, month int) error {
	monthly, err := unit.PeriodTotals(ctx, ownerID, year, month)
	if err != nil {
		return err
	}
	if err := unit.UpsertMonthlyReport(ctx, ownerID, year, month, monthly); err != nil {
		return err
	}

	yearly, err := unit.PeriodTotals(ctx, ownerID, year, 0)
	if err != nil {
		return err
	}
	return unit.UpsertYearlyReport(ctx, ownerID, year, yearly)
}

// buildTransaction validates caller input and fills defaults
func buildTransaction(ownerID int32, input domain.TransactionInput) (*domain.Transaction, error) {
	if !domain.ValidTransactionTypes[input.Type] {
		return nil, domain.ErrInvalidTransactionType
	}
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	description := strings.TrimSpace(input.Description)
	if len(description) > domain.MaxDescriptionLength {
		return nil, domain.ErrDescriptionTooLong
	}

	category := strings.TrimSpace(input.Category)
	if len(category) > domain.MaxCategoryLength {
		return nil, domain.ErrCategoryTooLong
	}

	if input.FromAccountID != nil && input.ToAccountID != nil && *input.FromAccountID == *input.ToAccountID {
		return nil, domain.ErrSameAccountTransfer
	}

	switch input.Type {
	case domain.TransactionTypeDisbursement:
		// The disbursement description doubles as the borrower name on the
		// loan the commit will create.
		if input.FromAccountID == nil {
			return nil, domain.ErrDisbursementRequiresSource
		}
		if description == "" {
			return nil, domain.ErrBorrowerNameRequired
		}
	case domain.TransactionTypePayment:
		if input.LoanID == nil {
			return nil, domain.ErrPaymentRequiresLoan
		}
	}

	reference := strings.TrimSpace(input.Reference)
	if reference == "" {
		reference = uuid.New().String()
	}

	occurredOn := time.Now().UTC().Truncate(24 * time.Hour)
	if input.OccurredOn != nil {
		occurredOn = *input.OccurredOn
	}

	return &domain.Transaction{
		OwnerID:       ownerID,
		OccurredOn:    occurredOn,
		Type:          input.Type,
		Category:      category,
		Amount:        input.Amount,
		Description:   description,
		Reference:     reference,
		FromAccountID: input.FromAccountID,
		ToAccountID:   input.ToAccountID,
		LoanID:        input.LoanID,
	}, nil
}

// newLoanFromDisbursement synthesizes the loan a disbursement creates.
// Interest is flat, computed once at origination:
// principal * rate * term / (term * 100), rounded to cents.
func newLoanFromDisbursement(tx *domain.Transaction) *domain.Loan {
	rate := decimal.NewFromInt(domain.FlatInterestRate)
	term := decimal.NewFromInt(domain.LoanTermMonths)
	hundred := decimal.NewFromInt(100)

	totalInterest := tx.Amount.Mul(rate).Mul(term).Div(term.Mul(hundred)).Round(2)

	return &domain.Loan{
		OwnerID:          tx.OwnerID,
		BorrowerName:     tx.Description,
		PrincipalAmount:  tx.Amount,
		InterestRate:     rate,
		TermMonths:       domain.LoanTermMonths,
		TotalInterest:    totalInterest,
		RemainingBalance: tx.Amount.Add(totalInterest),
		Status:           domain.LoanStatusActive,
		AccountID:        *tx.FromAccountID,
	}
}
