package service

import (
	"github.com/oseko/lendbook-backend/internal/domain"
)

// TransactionService is the read side of the ledger; writes go through
// LedgerService.CommitTransaction exclusively
type TransactionService struct {
	transactionRepo domain.TransactionRepository
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(transactionRepo domain.TransactionRepository) *TransactionService {
	return &TransactionService{transactionRepo: transactionRepo}
}

// GetTransactions retrieves transactions with optional filters and pagination
func (s *TransactionService) GetTransactions(ownerID int32, filters *domain.TransactionFilters) (*domain.PaginatedTransactions, error) {
	return s.transactionRepo.GetByOwner(ownerID, filters)
}

// GetTransactionByID retrieves a transaction by ID
func (s *TransactionService) GetTransactionByID(ownerID, id int32) (*domain.Transaction, error) {
	return s.transactionRepo.GetByID(ownerID, id)
}
