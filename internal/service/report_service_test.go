package service

import (
	"context"
	"testing"

	"github.com/oseko/lendbook-backend/internal/domain"
	"github.com/oseko/lendbook-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedHistory(t *testing.T, ledger *testutil.MemoryLedger) {
	t.Helper()
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
		Description: "Amina Yusuf", FromAccountID: &bank.ID, OccurredOn: onDate(2026, 4, 1),
	})
	require.NoError(t, err)
}

func TestReportService_GetMonthly(t *testing.T) {
	ledger := testutil.NewMemoryLedger()
	seedHistory(t, ledger)
	svc := NewReportService(ledger, testutil.NewMemoryReportRepository(ledger))

	report, err := svc.GetMonthly(1, 2026, 3)
	require.NoError(t, err)
	assert.True(t, report.TotalIncome.Equal(dec("100")))
	assert.True(t, report.TotalExpenses.Equal(dec("40")))

	_, err = svc.GetMonthly(1, 2026, 13)
	assert.ErrorIs(t, err, domain.ErrInvalidPeriod)

	_, err = svc.GetMonthly(1, 2026, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidPeriod)

	_, err = svc.GetMonthly(1, 2026, 12)
	assert.ErrorIs(t, err, domain.ErrReportNotFound)
}

func TestReportService_GetMonthlyByYear(t *testing.T) {
	ledger := testutil.NewMemoryLedger()
	seedHistory(t, ledger)
	svc := NewReportService(ledger, testutil.NewMemoryReportRepository(ledger))

	reports, err := svc.GetMonthlyByYear(1, 2026)
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, 3, reports[0].Month)
	assert.Equal(t, 4, reports[1].Month)
	assert.True(t, reports[1].TotalDisbursed.Equal(dec("1000")))
}

func TestReportService_GetYearly(t *testing.T) {
	ledger := testutil.NewMemoryLedger()
	seedHistory(t, ledger)
	svc := NewReportService(ledger, testutil.NewMemoryReportRepository(ledger))

	report, err := svc.GetYearly(1, 2026)
	require.NoError(t, err)
	assert.True(t, report.TotalIncome.Equal(dec("100")))
	assert.True(t, report.TotalExpenses.Equal(dec("40")))
	assert.True(t, report.TotalDisbursed.Equal(dec("1000")))

	_, err = svc.GetYearly(1, 1990)
	assert.ErrorIs(t, err, domain.ErrInvalidPeriod)
}

func TestReportService_RecalculateRebuildsFromHistory(t *testing.T) {
	ledger := testutil.NewMemoryLedger()
	seedHistory(t, ledger)
	reportRepo := testutil.NewMemoryReportRepository(ledger)
	svc := NewReportService(ledger, reportRepo)

	// Corrupt the stored aggregates, then rebuild.
	for _, r := range ledger.Monthly {
		r.TotalIncome = dec("99999")
	}

	ownerID := int32(1)
	require.NoError(t, svc.Recalculate(context.Background(), &ownerID))

	march, err := reportRepo.GetMonthly(1, 2026, 3)
	require.NoError(t, err)
	assert.True(t, march.TotalIncome.Equal(dec("100")))
	assert.True(t, march.TotalExpenses.Equal(dec("40")))

	april, err := reportRepo.GetMonthly(1, 2026, 4)
	require.NoError(t, err)
	assert.True(t, april.TotalDisbursed.Equal(dec("1000")))

	yearly, err := reportRepo.GetYearly(1, 2026)
	require.NoError(t, err)
	assert.True(t, yearly.TotalIncome.Equal(dec("100")))
}

func TestReportService_RecalculateIsIdempotent(t *testing.T) {
	ledger := testutil.NewMemoryLedger()
	seedHistory(t, ledger)
	reportRepo := testutil.NewMemoryReportRepository(ledger)
	svc := NewReportService(ledger, reportRepo)

	ownerID := int32(1)
	require.NoError(t, svc.Recalculate(context.Background(), &ownerID))
	first, err := reportRepo.GetMonthlyByYear(1, 2026)
	require.NoError(t, err)

	require.NoError(t, svc.Recalculate(context.Background(), &ownerID))
	second, err := reportRepo.GetMonthlyByYear(1, 2026)
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Year, second[i].Year)
		assert.Equal(t, first[i].Month, second[i].Month)
		assert.True(t, first[i].TotalIncome.Equal(second[i].TotalIncome))
		assert.True(t, first[i].TotalExpenses.Equal(second[i].TotalExpenses))
		assert.True(t, first[i].TotalDisbursed.Equal(second[i].TotalDisbursed))
		assert.True(t, first[i].TotalCollected.Equal(second[i].TotalCollected))
	}
}

func TestReportService_RecalculateAllOwners(t *testing.T) {
	ledger := testutil.NewMemoryLedger()
	ledgerSvc := NewLedgerService(ledger)
	ctx := context.Background()

	first := seedAccount(ledger, 1, "Cash", dec("0"))
	second := seedAccount(ledger, 2, "Cash", dec("0"))

	_, err := ledgerSvc.CommitTransaction(ctx, 1, domain.TransactionInput{
		Type: domain.TransactionTypeIncome, Amount: dec("10"),
		ToAccountID: &first.ID, OccurredOn: onDate(2026, 5, 1),
	})
	require.NoError(t, err)
	_, err = ledgerSvc.CommitTransaction(ctx, 2, domain.TransactionInput{
		Type: domain.TransactionTypeIncome, Amount: dec("20"),
		ToAccountID: &second.ID, OccurredOn: onDate(2026, 5, 1),
	})
	require.NoError(t, err)

	reportRepo := testutil.NewMemoryReportRepository(ledger)
	svc := NewReportService(ledger, reportRepo)
	require.NoError(t, svc.Recalculate(ctx, nil))

	one, err := reportRepo.GetMonthly(1, 2026, 5)
	require.NoError(t, err)
	assert.True(t, one.TotalIncome.Equal(dec("10")))

	two, err := reportRepo.GetMonthly(2, 2026, 5)
	require.NoError(t, err)
	assert.True(t, two.TotalIncome.Equal(dec("20")))
}

func TestReportService_RecalculateEmptyHistoryLeavesNoReports(t *testing.T) {
	ledger := testutil.NewMemoryLedger()
	svc := NewReportService(ledger, testutil.NewMemoryReportRepository(ledger))

	ownerID := int32(1)
	require.NoError(t, svc.Recalculate(context.Background(), &ownerID))
	assert.Empty(t, ledger.Monthly)
	assert.Empty(t, ledger.Yearly)
}
