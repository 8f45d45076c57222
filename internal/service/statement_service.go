package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/oseko/lendbook-backend/internal/domain"
	"github.com/oseko/lendbook-backend/internal/repository/storage"
	"github.com/oseko/lendbook-backend/internal/util"
)

// statementURLExpiry is how long an exported statement download link lives
const statementURLExpiry = 24 * time.Hour

// StatementService exports a month's transactions as a CSV statement to
// object storage and hands back a temporary download link
type StatementService struct {
	transactionRepo domain.TransactionRepository
	statementRepo   storage.StatementRepository
}

// NewStatementService creates a new StatementService
func NewStatementService(transactionRepo domain.TransactionRepository, statementRepo storage.StatementRepository) *StatementService {
	return &StatementService{
		transactionRepo: transactionRepo,
		statementRepo:   statementRepo,
	}
}

// StatementExport describes one finished export
type StatementExport struct {
	ObjectPath       string    `json:"objectPath"`
	DownloadURL      string    `json:"downloadUrl"`
	TransactionCount int       `json:"transactionCount"`
	ExpiresAt        time.Time `json:"expiresAt"`
}

// ExportMonth renders the owner's transactions for (year, month) to CSV,
// uploads it, and returns a presigned download URL
func (s *StatementService) ExportMonth(ctx context.Context, ownerID int32, year, month int) (*StatementExport, error) {
	if !util.ValidYear(year) || !util.ValidMonth(month) {
		return nil, domain.ErrInvalidPeriod
	}

	transactions, err := s.transactionRepo.GetByMonth(ownerID, year, month)
	if err != nil {
		return nil, err
	}

	data, err := renderStatementCSV(transactions)
	if err != nil {
		return nil, err
	}

	objectPath := storage.StatementObjectPath(ownerID, year, month)
	if _, err := s.statementRepo.Upload(ctx, objectPath, bytes.NewReader(data), "text/csv", int64(len(data))); err != nil {
		return nil, fmt.Errorf("failed to upload statement: %w", err)
	}

	url, err := s.statementRepo.GeneratePresignedURL(ctx, objectPath, statementURLExpiry)
	if err != nil {
		return nil, err
	}

	return &StatementExport{
		ObjectPath:       objectPath,
		DownloadURL:      url,
		TransactionCount: len(transactions),
		ExpiresAt:        time.Now().UTC().Add(statementURLExpiry),
	}, nil
}

func renderStatementCSV(transactions []*domain.Transaction) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"date", "type", "category", "description", "reference", "amount", "balance_after", "loan_id"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, tx := range transactions {
		balanceAfter := ""
		if tx.BalanceAfter != nil {
			balanceAfter = tx.BalanceAfter.StringFixed(2)
		}
		loanID := ""
		if tx.LoanID != nil {
			loanID = strconv.FormatInt(int64(*tx.LoanID), 10)
		}

		record := []string{
			tx.OccurredOn.Format("2006-01-02"),
			string(tx.Type),
			tx.Category,
			tx.Description,
			tx.Reference,
			tx.Amount.StringFixed(2),
			balanceAfter,
			loanID,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
