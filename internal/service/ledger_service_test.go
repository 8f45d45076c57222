package service

import (
	"context"
	"testing"
	"time"

	"github.com/oseko/lendbook-backend/internal/domain"
	"github.com/oseko/lendbook-backend/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func onDate(year, month, day int) *time.Time {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return &t
}

func seedAccount(ledger *testutil.MemoryLedger, ownerID int32, name string, balance decimal.Decimal) *domain.Account {
	return ledger.AddAccount(&domain.Account{
		OwnerID:         ownerID,
		Name:            name,
		Kind:            domain.KindCash,
		CurrentBalance:  balance,
		PreviousBalance: balance,
		Status:          domain.AccountStatusActive,
	})
}

func TestCommitTransaction_IncomeCreditsDestination(t *testing.T) {
	ledger := testutil.NewMemoryLedger()
	svc := NewLedgerService(ledger)
	account := seedAccount(ledger, 1, "Cash", dec("50"))

	result, err := svc.CommitTransaction(context.Background(), 1, domain.TransactionInput{
		Type:        domain.TransactionTypeIncome,
		Category:    "fees",
		Amount:      dec("100"),
		Description: "processing fee",
		ToAccountID: &account.ID,
		OccurredOn:  onDate(2026, 3, 10),
	})
	require.NoError(t, err)
	require.NotNil(t, result.Transaction)
	assert.Nil(t, result.Loan)

	updated := ledger.Accounts[account.ID]
	assert.True(t, updated.CurrentBalance.Equal(dec("150")), "got %s", updated.CurrentBalance)
	assert.True(t, updated.PreviousBalance.Equal(dec("50")))
	require.NotNil(t, updated.LastTransactionID)
	assert.Equal(t, result.Transaction.ID, *updated.LastTransactionID)

	require.NotNil(t, result.Transaction.BalanceAfter)
	assert.True(t, result.Transaction.BalanceAfter.Equal(dec("150")))
	assert.NotEmpty(t, result.Transaction.Reference)
}

func TestCommitTransaction_TransferConservesTotal(t *testing.T) {
	ledger := testutil.NewMemoryLedger()
	svc := NewLedgerService(ledger)
	from := seedAccount(ledger, 1, "Bank", dec("500"))
	to := seedAccount(ledger, 1, "Cash", dec("200"))

	_, err := svc.CommitTransaction(context.Background(), 1, domain.TransactionInput{
		Type:          domain.TransactionTypeExpense,
		Amount:        dec("120"),
		Description:   "float top-up",
		FromAccountID: &from.ID,
		ToAccountID:   &to.ID,
		OccurredOn:    onDate(2026, 3, 10),
	})
	require.NoError(t, err)

	fromAfter := ledger.Accounts[from.ID].CurrentBalance
	toAfter := ledger.Accounts[to.ID].CurrentBalance
	assert.True(t, fromAfter.Equal(dec("380")))
	assert.True(t, toAfter.Equal(dec("320")))
	assert.True(t, fromAfter.Add(toAfter).Equal(dec("700")), "transfer must conserve the combined balance")
}

func TestCommitTransaction_InsufficientFundsRejectsAndRollsBack(t *testing.T) {
	ledger := testutil.NewMemoryLedger()
	svc := NewLedgerService(ledger)
	account := seedAccount(ledger, 1, "Cash", dec("100"))

	_, err := svc.CommitTransaction(context.Background(), 1, domain.TransactionInput{
		Type:          domain.TransactionTypeExpense,
		Amount:        dec("150"),
		Description:   "rent",
		FromAccountID: &account.ID,
		OccurredOn:    onDate(2026, 3, 10),
	})
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)

	assert.True(t, ledger.Accounts[account.ID].CurrentBalance.Equal(dec("100")))
	assert.Empty(t, ledger.Transactions, "a rejected commit must leave no transaction row")
	assert.Empty(t, ledger.Monthly)
	assert.Empty(t, ledger.Yearly)
}

func TestCommitTransaction_ExactBalanceSpendIsAllowed(t *testing.T) {
	ledger := testutil.NewMemoryLedger()
	svc := NewLedgerService(ledger)
	account := seedAccount(ledger, 1, "Cash", dec("100"))

	_, err := svc.CommitTransaction(context.Background(), 1, domain.TransactionInput{
		Type:          domain.TransactionTypeExpense,
		Amount:        dec("100"),
		Description:   "stock purchase",
		FromAccountID: &account.ID,
		OccurredOn:    onDate(2026, 3, 10),
	})
	require.NoError(t, err)
	assert.True(t, ledger.Accounts[account.ID].CurrentBalance.Equal(decimal.Zero))
}

func TestCommitTransaction_DisbursementCreatesLoan(t *testing.T) {
	ledger := testutil.NewMemoryLedger()
	svc := NewLedgerService(ledger)
	account := seedAccount(ledger, 1, "Bank", dec("5000"))

	result, err := svc.CommitTransaction(context.Background(), 1, domain.TransactionInput{
		Type:          domain.TransactionTypeDisbursement,
		Amount:        dec("1000"),
		Description:   "Amina Yusuf",
		FromAccountID: &account.ID,
		OccurredOn:    onDate(2026, 3, 10),
	})
	require.NoError(t, err)
	require.NotNil(t, result.Loan)

	loan := result.Loan
	assert.Equal(t, "Amina Yusuf", loan.BorrowerName)
	assert.True(t, loan.PrincipalAmount.Equal(dec("1000")))
	assert.True(t, loan.InterestRate.Equal(dec("30")))
	assert.Equal(t, int32(12), loan.TermMonths)
	assert.True(t, loan.TotalInterest.Equal(dec("300")), "flat interest on 1000 at 30%% is 300, got %s", loan.TotalInterest)
	assert.True(t, loan.RemainingBalance.Equal(dec("1300")))
	assert.Equal(t, domain.LoanStatusActive, loan.Status)
	assert.Equal(t, account.ID, loan.AccountID)

	require.NotNil(t, result.Transaction.LoanID)
	assert.Equal(t, loan.ID, *result.Transaction.LoanID)
	assert.Equal(t, loan.ID, *ledger.Transactions[result.Transaction.ID].LoanID)

	assert.True(t, ledger.Accounts[account.ID].CurrentBalance.Equal(dec("4000")))
}

func TestCommitTransaction_DisbursementRequiresSourceAndBorrower(t *testing.T) {
	ledger := testutil.NewMemoryLedger()
	svc := NewLedgerService(ledger)
	account := seedAccount(ledger, 1, "Bank", dec("5000"))

	_, err := svc.CommitTransaction(context.Background(), 1, domain.TransactionInput{
		Type:        domain.TransactionTypeDisbursement,
		Amount:      dec("1000"),
		Description: "Amina Yusuf",
		OccurredOn:  onDate(2026, 3, 10),
	})
	assert.ErrorIs(t, err, domain.ErrDisbursementRequiresSource)

	_, err = svc.CommitTransaction(context.Background(), 1, domain.TransactionInput{
		Type:          domain.TransactionTypeDisbursement,
		Amount:        dec("1000"),
		Description:   "   ",
		FromAccountID: &account.ID,
		OccurredOn:    onDate(2026, 3, 10),
	})
	assert.ErrorIs(t, err, domain.ErrBorrowerNameRequired)
}

func TestCommitTransaction_FullPaymentClosesLoan(t *testing.T) {
	ledger := testutil.NewMemoryLedger()
	svc := NewLedgerService(ledger)
	account := seedAccount(ledger, 1, "Cash", dec("0"))
	loan := ledger.AddLoan(&domain.Loan{
		OwnerID:          1,
		BorrowerName:     "Amina Yusuf",
		PrincipalAmount:  dec("1000"),
		InterestRate:     dec("30"),
		TermMonths:       12,
		TotalInterest:    dec("300"),
		RemainingBalance: dec("1300"),
		Status:           domain.LoanStatusActive,
		AccountID:        account.ID,
	})

	result, err := svc.CommitTransaction(context.Background(), 1, domain.TransactionInput{
		Type:        domain.TransactionTypePayment,
		Amount:      dec("1300"),
		Description: "final settlement",
		ToAccountID: &account.ID,
		LoanID:      &loan.ID,
		OccurredOn:  onDate(2026, 4, 2),
	})
	require.NoError(t, err)
	require.NotNil(t, result.Loan)
	assert.True(t, result.Loan.RemainingBalance.Equal(decimal.Zero))
	assert.Equal(t, domain.LoanStatusPaid, result.Loan.Status)
	assert.True(t, ledger.Accounts[account.ID].CurrentBalance.Equal(dec("1300")))
}

func TestCommitTransaction_PartialPaymentKeepsLoanActive(t *testing.T) {
	ledger := testutil.NewMemoryLedger()
	svc := NewLedgerService(ledger)
	account := seedAccount(ledger, 1, "Cash", dec("0"))
	loan := ledger.AddLoan(&domain.Loan{
		OwnerID:          1,
		BorrowerName:     "Amina Yusuf",
		PrincipalAmount:  dec("1000"),
		InterestRate:     dec("30"),
		TermMonths:       12,
		TotalInterest:    dec("300"),
		RemainingBalance: dec("1300"),
		Status:           domain.LoanStatusActive,
		AccountID:        account.ID,
	})

	result, err := svc.CommitTransaction(context.Background(), 1, domain.TransactionInput{
		Type:        domain.TransactionTypePayment,
		Amount:      dec("500"),
		ToAccountID: &account.ID,
		LoanID:      &loan.ID,
		OccurredOn:  onDate(2026, 4, 2),
	})
	require.NoError(t, err)
	assert.True(t, result.Loan.RemainingBalance.Equal(dec("800")))
	assert.Equal(t, domain.LoanStatusActive, result.Loan.Status)
}

func TestCommitTransaction_OverpaymentGoesNegativeAndCloses(t *testing.T) {
	ledger := testutil.NewMemoryLedger()
	svc := NewLedgerService(ledger)
	account := seedAccount(ledger, 1, "Cash", dec("0"))
	loan := ledger.AddLoan(&domain.Loan{
		OwnerID:          1,
		BorrowerName:     "Amina Yusuf",
		PrincipalAmount:  dec("1000"),
		InterestRate:     dec("30"),
		TermMonths:       12,
		TotalInterest:    dec("300"),
		RemainingBalance: dec("1300"),
		Status:           domain.LoanStatusActive,
		AccountID:        account.ID,
	})

	result, err := svc.CommitTransaction(context.Background(), 1, domain.TransactionInput{
		Type:        domain.TransactionTypePayment,
		Amount:      dec("1500"),
		ToAccountID: &account.ID,
		LoanID:      &loan.ID,
		OccurredOn:  onDate(2026, 4, 2),
	})
	require.NoError(t, err)
	assert.True(t, result.Loan.RemainingBalance.Equal(dec("-200")), "overpayment carries the negative remainder, got %s", result.Loan.RemainingBalance)
	assert.Equal(t, domain.LoanStatusPaid, result.Loan.Status)
}

func TestCommitTransaction_PaymentWithoutLoanIsRejected(t *testing.T) {
	ledger := testutil.NewMemoryLedger()
	svc := NewLedgerService(ledger)
	account := seedAccount(ledger, 1, "Cash", dec("0"))

	_, err := svc.CommitTransaction(context.Background(), 1, domain.TransactionInput{
		Type:        domain.TransactionTypePayment,
		Amount:      dec("500"),
		ToAccountID: &account.ID,
		OccurredOn:  onDate(2026, 4, 2),
	})
	require.ErrorIs(t, err, domain.ErrPaymentRequiresLoan)
	assert.Empty(t, ledger.Transactions)
}

func TestCommitTransaction_PaymentAgainstMissingLoanRollsBack(t *testing.T) {
	ledger := testutil.NewMemoryLedger()
	svc := NewLedgerService(ledger)
	account := seedAccount(ledger, 1, "Cash", dec("0"))
	missing := int32(99)

	_, err := svc.CommitTransaction(context.Background(), 1, domain.TransactionInput{
		Type:        domain.TransactionTypePayment,
		Amount:      dec("500"),
		ToAccountID: &account.ID,
		LoanID:      &missing,
		OccurredOn:  onDate(2026, 4, 2),
	})
	require.ErrorIs(t, err, domain.ErrLoanNotFound)

	assert.Empty(t, ledger.Transactions)
	assert.True(t, ledger.Accounts[account.ID].CurrentBalance.Equal(decimal.Zero), "credit leg must roll back with the failed lifecycle step")
}

func TestCommitTransaction_InactiveAccountIsRejected(t *testing.T) {
	ledger := testutil.NewMemoryLedger()
	svc := NewLedgerService(ledger)
	account := ledger.AddAccount(&domain.Account{
		OwnerID:        1,
		Name:           "Dormant",
		Kind:           domain.KindBank,
		CurrentBalance: dec("1000"),
		Status:         domain.AccountStatusInactive,
	})

	_, err := svc.CommitTransaction(context.Background(), 1, domain.TransactionInput{
		Type:          domain.TransactionTypeExpense,
		Amount:        dec("10"),
		FromAccountID: &account.ID,
		OccurredOn:    onDate(2026, 4, 2),
	})
	assert.ErrorIs(t, err, domain.ErrAccountInactive)
}

func TestCommitTransaction_SameAccountTransferIsRejected(t *testing.T) {
	ledger := testutil.NewMemoryLedger()
	svc := NewLedgerService(ledger)
	account := seedAccount(ledger, 1, "Cash", dec("1000"))

	_, err := svc.CommitTransaction(context.Background(), 1, domain.TransactionInput{
		Type:          domain.TransactionTypeExpense,
		Amount:        dec("10"),
		FromAccountID: &account.ID,
		ToAccountID:   &account.ID,
		OccurredOn:    onDate(2026, 4, 2),
	})
	assert.ErrorIs(t, err, domain.ErrSameAccountTransfer)
}

func TestCommitTransaction_InputValidation(t *testing.T) {
	ledger := testutil.NewMemoryLedger()
	svc := NewLedgerService(ledger)

	_, err := svc.CommitTransaction(context.Background(), 1, domain.TransactionInput{
		Type:   domain.TransactionType("refund"),
		Amount: dec("10"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTransactionType)

	_, err = svc.CommitTransaction(context.Background(), 1, domain.TransactionInput{
		Type:   domain.TransactionTypeIncome,
		Amount: decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = svc.CommitTransaction(context.Background(), 1, domain.TransactionInput{
		Type:   domain.TransactionTypeIncome,
		Amount: dec("-5"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestCommitTransaction_OtherOwnersAccountIsInvisible(t *testing.T) {
	ledger := testutil.NewMemoryLedger()
	svc := NewLedgerService(ledger)
	account := seedAccount(ledger, 2, "Cash", dec("1000"))

	_, err := svc.CommitTransaction(context.Background(), 1, domain.TransactionInput{
		Type:          domain.TransactionTypeExpense,
		Amount:        dec("10"),
		FromAccountID: &account.ID,
		OccurredOn:    onDate(2026, 4, 2),
	})
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestCommitTransaction_ReportsAggregateByPeriod(t *testing.T) {
	ledger := testutil.NewMemoryLedger()
	svc := NewLedgerService(ledger)
	bank := seedAccount(ledger, 1, "Bank", dec("10000"))
	ctx := context.Background()

	_, err := svc.CommitTransaction(ctx, 1, domain.TransactionInput{
		Type: domain.TransactionTypeIncome, Amount: dec("100"),
		ToAccountID: &bank.ID, OccurredOn: onDate(2026, 3, 5),
	})
	require.NoError(t, err)
	_, err = svc.CommitTransaction(ctx, 1, domain.TransactionInput{
		Type: domain.TransactionTypeExpense, Amount: dec("40"),
		FromAccountID: &bank.ID, OccurredOn: onDate(2026, 3, 12),
	})
	require.NoError(t, err)
	_, err = svc.CommitTransaction(ctx, 1, domain.TransactionInput{
		Type: domain.TransactionTypeDisbursement, Amount: dec("1000"),
		Description: "Amina Yusuf", FromAccountID: &bank.ID, OccurredOn: onDate(2026, 3, 20),
	})
	require.NoError(t, err)

	reports := testutil.NewMemoryReportRepository(ledger)

	monthly, err := reports.GetMonthly(1, 2026, 3)
	require.NoError(t, err)
	assert.True(t, monthly.TotalIncome.Equal(dec("100")))
	assert.True(t, monthly.TotalExpenses.Equal(dec("40")))
	assert.True(t, monthly.TotalDisbursed.Equal(dec("1000")))
	assert.True(t, monthly.TotalCollected.Equal(decimal.Zero))

	yearly, err := reports.GetYearly(1, 2026)
	require.NoError(t, err)
	assert.True(t, yearly.TotalIncome.Equal(dec("100")))
	assert.True(t, yearly.TotalExpenses.Equal(dec("40")))
	assert.True(t, yearly.TotalDisbursed.Equal(dec("1000")))
}

func TestCommitTransaction_YearlyReportSpansMonths(t *testing.T) {
	ledger := testutil.NewMemoryLedger()
	svc := NewLedgerService(ledger)
	bank := seedAccount(ledger, 1, "Bank", dec("10000"))
	ctx := context.Background()

	_, err := svc.CommitTransaction(ctx, 1, domain.TransactionInput{
		Type: domain.TransactionTypeIncome, Amount: dec("100"),
		ToAccountID: &bank.ID, OccurredOn: onDate(2026, 3, 5),
	})
	require.NoError(t, err)
	_, err = svc.CommitTransaction(ctx, 1, domain.TransactionInput{
		Type: domain.TransactionTypeIncome, Amount: dec("250"),
		ToAccountID: &bank.ID, OccurredOn: onDate(2026, 7, 5),
	})
	require.NoError(t, err)

	reports := testutil.NewMemoryReportRepository(ledger)

	march, err := reports.GetMonthly(1, 2026, 3)
	require.NoError(t, err)
	assert.True(t, march.TotalIncome.Equal(dec("100")))

	july, err := reports.GetMonthly(1, 2026, 7)
	require.NoError(t, err)
	assert.True(t, july.TotalIncome.Equal(dec("250")))

	yearly, err := reports.GetYearly(1, 2026)
	require.NoError(t, err)
	assert.True(t, yearly.TotalIncome.Equal(dec("350")))
}

func TestCommitTransaction_PublishesEvents(t *testing.T) {
	ledger := testutil.NewMemoryLedger()
	svc := NewLedgerService(ledger)
	publisher := testutil.NewMockEventPublisher()
	svc.SetEventPublisher(publisher)
	bank := seedAccount(ledger, 1, "Bank", dec("10000"))

	_, err := svc.CommitTransaction(context.Background(), 1, domain.TransactionInput{
		Type: domain.TransactionTypeDisbursement, Amount: dec("1000"),
		Description: "Amina Yusuf", FromAccountID: &bank.ID, OccurredOn: onDate(2026, 3, 20),
	})
	require.NoError(t, err)

	events := publisher.EventsFor(1)
	require.Len(t, events, 3)
	assert.Equal(t, "transaction", string(events[0].Entity))
	assert.Equal(t, "loan", string(events[1].Entity))
	assert.Equal(t, "report", string(events[2].Entity))
}
