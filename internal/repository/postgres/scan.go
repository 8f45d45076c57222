package postgres

import (
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/oseko/lendbook-backend/internal/domain"
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*domain.Account, error) {
	var (
		a                 domain.Account
		kind, status      string
		current, previous pgtype.Numeric
		lastTransactionID pgtype.Int4
	)
	err := row.Scan(&a.ID, &a.OwnerID, &a.Name, &kind, &current, &previous,
		&lastTransactionID, &status, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	a.Kind = domain.AccountKind(kind)
	a.Status = domain.AccountStatus(status)
	a.CurrentBalance = pgNumericToDecimal(current)
	a.PreviousBalance = pgNumericToDecimal(previous)
	a.LastTransactionID = pgInt4ToInt32Ptr(lastTransactionID)
	return &a, nil
}

func scanTransaction(row rowScanner) (*domain.Transaction, error) {
	var (
		t                    domain.Transaction
		txType               string
		amount, balanceAfter pgtype.Numeric
		fromID, toID, loanID pgtype.Int4
	)
	err := row.Scan(&t.ID, &t.OwnerID, &t.OccurredOn, &txType, &t.Category, &amount,
		&t.Description, &t.Reference, &fromID, &toID, &balanceAfter, &loanID, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	t.Type = domain.TransactionType(txType)
	t.Amount = pgNumericToDecimal(amount)
	t.BalanceAfter = pgNumericToDecimalPtr(balanceAfter)
	t.FromAccountID = pgInt4ToInt32Ptr(fromID)
	t.ToAccountID = pgInt4ToInt32Ptr(toID)
	t.LoanID = pgInt4ToInt32Ptr(loanID)
	return &t, nil
}

func scanLoan(row rowScanner) (*domain.Loan, error) {
	var (
		l                                    domain.Loan
		status                               string
		principal, rate, interest, remaining pgtype.Numeric
	)
	err := row.Scan(&l.ID, &l.OwnerID, &l.BorrowerName, &principal, &rate, &l.TermMonths,
		&interest, &remaining, &status, &l.AccountID, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	l.Status = domain.LoanStatus(status)
	l.PrincipalAmount = pgNumericToDecimal(principal)
	l.InterestRate = pgNumericToDecimal(rate)
	l.TotalInterest = pgNumericToDecimal(interest)
	l.RemainingBalance = pgNumericToDecimal(remaining)
	return &l, nil
}

func scanMonthlyReport(row rowScanner) (*domain.MonthlyReport, error) {
	var (
		r                                      domain.MonthlyReport
		disbursed, collected, income, expenses pgtype.Numeric
	)
	err := row.Scan(&r.ID, &r.OwnerID, &r.Year, &r.Month,
		&disbursed, &collected, &income, &expenses, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	r.TotalDisbursed = pgNumericToDecimal(disbursed)
	r.TotalCollected = pgNumericToDecimal(collected)
	r.TotalIncome = pgNumericToDecimal(income)
	r.TotalExpenses = pgNumericToDecimal(expenses)
	return &r, nil
}

func scanYearlyReport(row rowScanner) (*domain.YearlyReport, error) {
	var (
		r                                      domain.YearlyReport
		disbursed, collected, income, expenses pgtype.Numeric
	)
	err := row.Scan(&r.ID, &r.OwnerID, &r.Year,
		&disbursed, &collected, &income, &expenses, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	r.TotalDisbursed = pgNumericToDecimal(disbursed)
	r.TotalCollected = pgNumericToDecimal(collected)
	r.TotalIncome = pgNumericToDecimal(income)
	r.TotalExpenses = pgNumericToDecimal(expenses)
	return &r, nil
}
