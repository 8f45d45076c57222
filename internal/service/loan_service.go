package service

import (
	"github.com/oseko/lendbook-backend/internal/domain"
	"github.com/oseko/lendbook-backend/internal/websocket"
)

// LoanService serves the loan book. Loans are created only by the ledger
// engine on disbursement; the single out-of-band mutation here is marking
// a loan defaulted.
type LoanService struct {
	loanRepo        domain.LoanRepository
	transactionRepo domain.TransactionRepository
	eventPublisher  websocket.EventPublisher
}

// NewLoanService creates a new LoanService
func NewLoanService(loanRepo domain.LoanRepository, transactionRepo domain.TransactionRepository) *LoanService {
	return &LoanService{loanRepo: loanRepo, transactionRepo: transactionRepo}
}

// SetEventPublisher sets the publisher for real-time loan events
func (s *LoanService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

// GetLoans retrieves an owner's loans, optionally filtered by status
func (s *LoanService) GetLoans(ownerID int32, status *domain.LoanStatus) ([]*domain.Loan, error) {
	return s.loanRepo.GetByOwner(ownerID, status)
}

// GetLoanByID retrieves a loan by ID
func (s *LoanService) GetLoanByID(ownerID, id int32) (*domain.Loan, error) {
	return s.loanRepo.GetByID(ownerID, id)
}

// LoanStatement is a loan together with its transaction history
type LoanStatement struct {
	Loan         *domain.Loan          `json:"loan"`
	Transactions []*domain.Transaction `json:"transactions"`
}

// GetLoanStatement retrieves a loan and every transaction that references it
// (the disbursement that created it plus all payments against it)
func (s *LoanService) GetLoanStatement(ownerID, id int32) (*LoanStatement, error) {
	loan, err := s.loanRepo.GetByID(ownerID, id)
	if err != nil {
		return nil, err
	}

	transactions, err := s.transactionRepo.GetByLoanID(ownerID, id)
	if err != nil {
		return nil, err
	}

	return &LoanStatement{Loan: loan, Transactions: transactions}, nil
}

// MarkDefaulted flips an active loan to defaulted. The ledger never does
// this on its own; it is a bookkeeping judgement call.
func (s *LoanService) MarkDefaulted(ownerID, id int32) (*domain.Loan, error) {
	loan, err := s.loanRepo.GetByID(ownerID, id)
	if err != nil {
		return nil, err
	}
	if !loan.IsOpen() {
		return nil, domain.ErrLoanAlreadyClosed
	}

	updated, err := s.loanRepo.SetStatus(ownerID, id, domain.LoanStatusDefaulted)
	if err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		s.eventPublisher.Publish(ownerID, websocket.LoanUpdated(updated))
	}
	return updated, nil
}
