package testutil

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/oseko/lendbook-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// MemoryLedger is an in-memory implementation of domain.LedgerStore with the
// same atomicity contract as the postgres store: a failed unit restores the
// pre-unit snapshot, and units serialize behind one mutex.
type MemoryLedger struct {
	mu sync.Mutex

	Accounts     map[int32]*domain.Account
	Transactions map[int32]*domain.Transaction
	Loans        map[int32]*domain.Loan
	Monthly      map[string]*domain.MonthlyReport
	Yearly       map[string]*domain.YearlyReport

	nextAccountID     int32
	nextTransactionID int32
	nextLoanID        int32
	nextReportID      int32
}

// NewMemoryLedger creates an empty in-memory ledger
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		Accounts:          make(map[int32]*domain.Account),
		Transactions:      make(map[int32]*domain.Transaction),
		Loans:             make(map[int32]*domain.Loan),
		Monthly:           make(map[string]*domain.MonthlyReport),
		Yearly:            make(map[string]*domain.YearlyReport),
		nextAccountID:     1,
		nextTransactionID: 1,
		nextLoanID:        1,
		nextReportID:      1,
	}
}

func monthlyKey(ownerID int32, year, month int) string {
	return fmt.Sprintf("%d/%d/%d", ownerID, year, month)
}

func yearlyKey(ownerID int32, year int) string {
	return fmt.Sprintf("%d/%d", ownerID, year)
}

// WithinUnit implements domain.LedgerStore
func (l *MemoryLedger) WithinUnit(ctx context.Context, fn func(unit domain.LedgerUnit) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	snapshot := l.clone()
	if err := fn(&memoryUnit{ledger: l}); err != nil {
		l.restore(snapshot)
		return err
	}
	return nil
}

type ledgerSnapshot struct {
	accounts     map[int32]*domain.Account
	transactions map[int32]*domain.Transaction
	loans        map[int32]*domain.Loan
	monthly      map[string]*domain.MonthlyReport
	yearly       map[string]*domain.YearlyReport
	nextIDs      [4]int32
}

func (l *MemoryLedger) clone() ledgerSnapshot {
	s := ledgerSnapshot{
		accounts:     make(map[int32]*domain.Account, len(l.Accounts)),
		transactions: make(map[int32]*domain.Transaction, len(l.Transactions)),
		loans:        make(map[int32]*domain.Loan, len(l.Loans)),
		monthly:      make(map[string]*domain.MonthlyReport, len(l.Monthly)),
		yearly:       make(map[string]*domain.YearlyReport, len(l.Yearly)),
		nextIDs:      [4]int32{l.nextAccountID, l.nextTransactionID, l.nextLoanID, l.nextReportID},
	}
	for k, v := range l.Accounts {
		c := *v
		s.accounts[k] = &c
	}
	for k, v := range l.Transactions {
		c := *v
		s.transactions[k] = &c
	}
	for k, v := range l.Loans {
		c := *v
		s.loans[k] = &c
	}
	for k, v := range l.Monthly {
		c := *v
		s.monthly[k] = &c
	}
	for k, v := range l.Yearly {
		c := *v
		s.yearly[k] = &c
	}
	return s
}

func (l *MemoryLedger) restore(s ledgerSnapshot) {
	l.Accounts = s.accounts
	l.Transactions = s.transactions
	l.Loans = s.loans
	l.Monthly = s.monthly
	l.Yearly = s.yearly
	l.nextAccountID = s.nextIDs[0]
	l.nextTransactionID = s.nextIDs[1]
	l.nextLoanID = s.nextIDs[2]
	l.nextReportID = s.nextIDs[3]
}

// AddAccount seeds an account (helper for tests)
func (l *MemoryLedger) AddAccount(account *domain.Account) *domain.Account {
	l.mu.Lock()
	defer l.mu.Unlock()

	if account.ID == 0 {
		account.ID = l.nextAccountID
	}
	if account.ID >= l.nextAccountID {
		l.nextAccountID = account.ID + 1
	}
	if account.Status == "" {
		account.Status = domain.AccountStatusActive
	}
	c := *account
	l.Accounts[c.ID] = &c
	return account
}

// AddLoan seeds a loan (helper for tests)
func (l *MemoryLedger) AddLoan(loan *domain.Loan) *domain.Loan {
	l.mu.Lock()
	defer l.mu.Unlock()

	if loan.ID == 0 {
		loan.ID = l.nextLoanID
	}
	if loan.ID >= l.nextLoanID {
		l.nextLoanID = loan.ID + 1
	}
	c := *loan
	l.Loans[c.ID] = &c
	return loan
}

// memoryUnit implements domain.LedgerUnit against a locked MemoryLedger
type memoryUnit struct {
	ledger *MemoryLedger
}

func (u *memoryUnit) AccountForUpdate(ctx context.Context, ownerID, accountID int32) (*domain.Account, error) {
	a, ok := u.ledger.Accounts[accountID]
	if !ok || a.OwnerID != ownerID {
		return nil, domain.ErrAccountNotFound
	}
	c := *a
	return &c, nil
}

func (u *memoryUnit) SaveAccountBalance(ctx context.Context, account *domain.Account) error {
	if _, ok := u.ledger.Accounts[account.ID]; !ok {
		return domain.ErrAccountNotFound
	}
	c := *account
	c.UpdatedAt = time.Now().UTC()
	u.ledger.Accounts[c.ID] = &c
	return nil
}

func (u *memoryUnit) InsertTransaction(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	c := *tx
	c.ID = u.ledger.nextTransactionID
	u.ledger.nextTransactionID++
	c.CreatedAt = time.Now().UTC()
	u.ledger.Transactions[c.ID] = &c
	out := c
	return &out, nil
}

func (u *memoryUnit) StampTransaction(ctx context.Context, id int32, balanceAfter *decimal.Decimal, loanID *int32) error {
	tx, ok := u.ledger.Transactions[id]
	if !ok {
		return domain.ErrTransactionNotFound
	}
	tx.BalanceAfter = balanceAfter
	tx.LoanID = loanID
	return nil
}

func (u *memoryUnit) InsertLoan(ctx context.Context, loan *domain.Loan) (*domain.Loan, error) {
	c := *loan
	c.ID = u.ledger.nextLoanID
	u.ledger.nextLoanID++
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	u.ledger.Loans[c.ID] = &c
	out := c
	return &out, nil
}

func (u *memoryUnit) LoanForUpdate(ctx context.Context, ownerID, loanID int32) (*domain.Loan, error) {
	l, ok := u.ledger.Loans[loanID]
	if !ok || l.OwnerID != ownerID {
		return nil, domain.ErrLoanNotFound
	}
	c := *l
	return &c, nil
}

func (u *memoryUnit) SaveLoan(ctx context.Context, loan *domain.Loan) error {
	if _, ok := u.ledger.Loans[loan.ID]; !ok {
		return domain.ErrLoanNotFound
	}
	c := *loan
	u.ledger.Loans[c.ID] = &c
	return nil
}

func (u *memoryUnit) PeriodTotals(ctx context.Context, ownerID int32, year, month int) (domain.PeriodTotals, error) {
	totals := domain.ZeroTotals()
	for _, tx := range u.ledger.Transactions {
		if tx.OwnerID != ownerID || tx.OccurredOn.Year() != year {
			continue
		}
		if month != 0 && int(tx.OccurredOn.Month()) != month {
			continue
		}
		totals.Add(tx.Type, tx.Amount)
	}
	return totals, nil
}

func (u *memoryUnit) UpsertMonthlyReport(ctx context.Context, ownerID int32, year, month int, totals domain.PeriodTotals) error {
	key := monthlyKey(ownerID, year, month)
	now := time.Now().UTC()
	if existing, ok := u.ledger.Monthly[key]; ok {
		existing.PeriodTotals = totals
		existing.UpdatedAt = now
		return nil
	}
	u.ledger.Monthly[key] = &domain.MonthlyReport{
		ID:           u.ledger.nextReportID,
		OwnerID:      ownerID,
		Year:         year,
		Month:        month,
		PeriodTotals: totals,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	u.ledger.nextReportID++
	return nil
}

func (u *memoryUnit) UpsertYearlyReport(ctx context.Context, ownerID int32, year int, totals domain.PeriodTotals) error {
	key := yearlyKey(ownerID, year)
	now := time.Now().UTC()
	if existing, ok := u.ledger.Yearly[key]; ok {
		existing.PeriodTotals = totals
		existing.UpdatedAt = now
		return nil
	}
	u.ledger.Yearly[key] = &domain.YearlyReport{
		ID:           u.ledger.nextReportID,
		OwnerID:      ownerID,
		Year:         year,
		PeriodTotals: totals,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	u.ledger.nextReportID++
	return nil
}

func (u *memoryUnit) DeleteReports(ctx context.Context, ownerID *int32) error {
	for k, r := range u.ledger.Monthly {
		if ownerID == nil || r.OwnerID == *ownerID {
			delete(u.ledger.Monthly, k)
		}
	}
	for k, r := range u.ledger.Yearly {
		if ownerID == nil || r.OwnerID == *ownerID {
			delete(u.ledger.Yearly, k)
		}
	}
	return nil
}

func (u *memoryUnit) TransactionPeriods(ctx context.Context, ownerID *int32) ([]domain.Period, error) {
	seen := make(map[domain.Period]bool)
	for _, tx := range u.ledger.Transactions {
		if ownerID != nil && tx.OwnerID != *ownerID {
			continue
		}
		seen[domain.Period{
			OwnerID: tx.OwnerID,
			Year:    tx.OccurredOn.Year(),
			Month:   int(tx.OccurredOn.Month()),
		}] = true
	}

	periods := make([]domain.Period, 0, len(seen))
	for p := range seen {
		periods = append(periods, p)
	}
	sort.Slice(periods, func(i, j int) bool {
		if periods[i].OwnerID != periods[j].OwnerID {
			return periods[i].OwnerID < periods[j].OwnerID
		}
		if periods[i].Year != periods[j].Year {
			return periods[i].Year < periods[j].Year
		}
		return periods[i].Month < periods[j].Month
	})
	return periods, nil
}

// MemoryAccountRepository implements domain.AccountRepository over a MemoryLedger
type MemoryAccountRepository struct {
	Ledger *MemoryLedger
}

// NewMemoryAccountRepository creates an account repository sharing the ledger state
func NewMemoryAccountRepository(ledger *MemoryLedger) *MemoryAccountRepository {
	return &MemoryAccountRepository{Ledger: ledger}
}

// Create creates a new account
func (m *MemoryAccountRepository) Create(account *domain.Account) (*domain.Account, error) {
	m.Ledger.mu.Lock()
	defer m.Ledger.mu.Unlock()

	c := *account
	c.ID = m.Ledger.nextAccountID
	m.Ledger.nextAccountID++
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	m.Ledger.Accounts[c.ID] = &c
	out := c
	return &out, nil
}

// GetByID retrieves an account by ID
func (m *MemoryAccountRepository) GetByID(ownerID, id int32) (*domain.Account, error) {
	m.Ledger.mu.Lock()
	defer m.Ledger.mu.Unlock()

	a, ok := m.Ledger.Accounts[id]
	if !ok || a.OwnerID != ownerID {
		return nil, domain.ErrAccountNotFound
	}
	c := *a
	return &c, nil
}

// GetAllByOwner retrieves all accounts for an owner, oldest first
func (m *MemoryAccountRepository) GetAllByOwner(ownerID int32) ([]*domain.Account, error) {
	m.Ledger.mu.Lock()
	defer m.Ledger.mu.Unlock()

	var out []*domain.Account
	for _, a := range m.Ledger.Accounts {
		if a.OwnerID == ownerID {
			c := *a
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// SetStatus updates an account's status
func (m *MemoryAccountRepository) SetStatus(ownerID, id int32, status domain.AccountStatus) (*domain.Account, error) {
	m.Ledger.mu.Lock()
	defer m.Ledger.mu.Unlock()

	a, ok := m.Ledger.Accounts[id]
	if !ok || a.OwnerID != ownerID {
		return nil, domain.ErrAccountNotFound
	}
	a.Status = status
	a.UpdatedAt = time.Now().UTC()
	c := *a
	return &c, nil
}

// MemoryTransactionRepository implements domain.TransactionRepository over a MemoryLedger
type MemoryTransactionRepository struct {
	Ledger *MemoryLedger
}

// NewMemoryTransactionRepository creates a transaction repository sharing the ledger state
func NewMemoryTransactionRepository(ledger *MemoryLedger) *MemoryTransactionRepository {
	return &MemoryTransactionRepository{Ledger: ledger}
}

// GetByID retrieves a transaction by ID
func (m *MemoryTransactionRepository) GetByID(ownerID, id int32) (*domain.Transaction, error) {
	m.Ledger.mu.Lock()
	defer m.Ledger.mu.Unlock()

	tx, ok := m.Ledger.Transactions[id]
	if !ok || tx.OwnerID != ownerID {
		return nil, domain.ErrTransactionNotFound
	}
	c := *tx
	return &c, nil
}

func (m *MemoryTransactionRepository) matching(ownerID int32, keep func(*domain.Transaction) bool) []*domain.Transaction {
	var out []*domain.Transaction
	for _, tx := range m.Ledger.Transactions {
		if tx.OwnerID != ownerID {
			continue
		}
		if keep != nil && !keep(tx) {
			continue
		}
		c := *tx
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// GetByOwner retrieves transactions with filters and pagination
func (m *MemoryTransactionRepository) GetByOwner(ownerID int32, filters *domain.TransactionFilters) (*domain.PaginatedTransactions, error) {
	m.Ledger.mu.Lock()
	defer m.Ledger.mu.Unlock()

	all := m.matching(ownerID, func(tx *domain.Transaction) bool {
		if filters == nil {
			return true
		}
		if filters.AccountID != nil {
			hit := (tx.FromAccountID != nil && *tx.FromAccountID == *filters.AccountID) ||
				(tx.ToAccountID != nil && *tx.ToAccountID == *filters.AccountID)
			if !hit {
				return false
			}
		}
		if filters.Type != nil && tx.Type != *filters.Type {
			return false
		}
		if filters.StartDate != nil && tx.OccurredOn.Before(*filters.StartDate) {
			return false
		}
		if filters.EndDate != nil && tx.OccurredOn.After(*filters.EndDate) {
			return false
		}
		return true
	})

	page := int32(1)
	pageSize := int32(domain.DefaultPageSize)
	if filters != nil {
		if filters.Page > 0 {
			page = filters.Page
		}
		if filters.PageSize > 0 {
			pageSize = filters.PageSize
			if pageSize > domain.MaxPageSize {
				pageSize = domain.MaxPageSize
			}
		}
	}

	totalItems := int64(len(all))
	start := int((page - 1) * pageSize)
	if start > len(all) {
		start = len(all)
	}
	end := start + int(pageSize)
	if end > len(all) {
		end = len(all)
	}

	totalPages := int32(totalItems / int64(pageSize))
	if totalItems%int64(pageSize) > 0 {
		totalPages++
	}

	return &domain.PaginatedTransactions{
		Data:       all[start:end],
		Page:       page,
		PageSize:   pageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}, nil
}

// GetByLoanID retrieves every transaction referencing a loan
func (m *MemoryTransactionRepository) GetByLoanID(ownerID, loanID int32) ([]*domain.Transaction, error) {
	m.Ledger.mu.Lock()
	defer m.Ledger.mu.Unlock()

	return m.matching(ownerID, func(tx *domain.Transaction) bool {
		return tx.LoanID != nil && *tx.LoanID == loanID
	}), nil
}

// GetByMonth retrieves an owner's transactions within one calendar month
func (m *MemoryTransactionRepository) GetByMonth(ownerID int32, year, month int) ([]*domain.Transaction, error) {
	m.Ledger.mu.Lock()
	defer m.Ledger.mu.Unlock()

	return m.matching(ownerID, func(tx *domain.Transaction) bool {
		return tx.OccurredOn.Year() == year && int(tx.OccurredOn.Month()) == month
	}), nil
}

// MemoryLoanRepository implements domain.LoanRepository over a MemoryLedger
type MemoryLoanRepository struct {
	Ledger *MemoryLedger
}

// NewMemoryLoanRepository creates a loan repository sharing the ledger state
func NewMemoryLoanRepository(ledger *MemoryLedger) *MemoryLoanRepository {
	return &MemoryLoanRepository{Ledger: ledger}
}

// GetByID retrieves a loan by ID
func (m *MemoryLoanRepository) GetByID(ownerID, id int32) (*domain.Loan, error) {
	m.Ledger.mu.Lock()
	defer m.Ledger.mu.Unlock()

	l, ok := m.Ledger.Loans[id]
	if !ok || l.OwnerID != ownerID {
		return nil, domain.ErrLoanNotFound
	}
	c := *l
	return &c, nil
}

// GetByOwner retrieves loans, optionally filtered by status
func (m *MemoryLoanRepository) GetByOwner(ownerID int32, status *domain.LoanStatus) ([]*domain.Loan, error) {
	m.Ledger.mu.Lock()
	defer m.Ledger.mu.Unlock()

	var out []*domain.Loan
	for _, l := range m.Ledger.Loans {
		if l.OwnerID != ownerID {
			continue
		}
		if status != nil && l.Status != *status {
			continue
		}
		c := *l
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// OutstandingTotal sums remaining balances across active loans
func (m *MemoryLoanRepository) OutstandingTotal(ownerID int32) (decimal.Decimal, error) {
	m.Ledger.mu.Lock()
	defer m.Ledger.mu.Unlock()

	total := decimal.Zero
	for _, l := range m.Ledger.Loans {
		if l.OwnerID == ownerID && l.Status == domain.LoanStatusActive {
			total = total.Add(l.RemainingBalance)
		}
	}
	return total, nil
}

// CountByStatus counts loans in one status
func (m *MemoryLoanRepository) CountByStatus(ownerID int32, status domain.LoanStatus) (int64, error) {
	m.Ledger.mu.Lock()
	defer m.Ledger.mu.Unlock()

	var count int64
	for _, l := range m.Ledger.Loans {
		if l.OwnerID == ownerID && l.Status == status {
			count++
		}
	}
	return count, nil
}

// SetStatus updates a loan's status
func (m *MemoryLoanRepository) SetStatus(ownerID, id int32, status domain.LoanStatus) (*domain.Loan, error) {
	m.Ledger.mu.Lock()
	defer m.Ledger.mu.Unlock()

	l, ok := m.Ledger.Loans[id]
	if !ok || l.OwnerID != ownerID {
		return nil, domain.ErrLoanNotFound
	}
	l.Status = status
	l.UpdatedAt = time.Now().UTC()
	c := *l
	return &c, nil
}

// MemoryReportRepository implements domain.ReportRepository over a MemoryLedger
type MemoryReportRepository struct {
	Ledger *MemoryLedger
}

// NewMemoryReportRepository creates a report repository sharing the ledger state
func NewMemoryReportRepository(ledger *MemoryLedger) *MemoryReportRepository {
	return &MemoryReportRepository{Ledger: ledger}
}

// GetMonthly retrieves one monthly report
func (m *MemoryReportRepository) GetMonthly(ownerID int32, year, month int) (*domain.MonthlyReport, error) {
	m.Ledger.mu.Lock()
	defer m.Ledger.mu.Unlock()

	r, ok := m.Ledger.Monthly[monthlyKey(ownerID, year, month)]
	if !ok {
		return nil, domain.ErrReportNotFound
	}
	c := *r
	return &c, nil
}

// GetMonthlyByYear retrieves all monthly reports for a year
func (m *MemoryReportRepository) GetMonthlyByYear(ownerID int32, year int) ([]*domain.MonthlyReport, error) {
	m.Ledger.mu.Lock()
	defer m.Ledger.mu.Unlock()

	var out []*domain.MonthlyReport
	for _, r := range m.Ledger.Monthly {
		if r.OwnerID == ownerID && r.Year == year {
			c := *r
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out, nil
}

// GetYearly retrieves one yearly report
func (m *MemoryReportRepository) GetYearly(ownerID int32, year int) (*domain.YearlyReport, error) {
	m.Ledger.mu.Lock()
	defer m.Ledger.mu.Unlock()

	r, ok := m.Ledger.Yearly[yearlyKey(ownerID, year)]
	if !ok {
		return nil, domain.ErrReportNotFound
	}
	c := *r
	return &c, nil
}

// GetAllYearly retrieves every yearly report for an owner
func (m *MemoryReportRepository) GetAllYearly(ownerID int32) ([]*domain.YearlyReport, error) {
	m.Ledger.mu.Lock()
	defer m.Ledger.mu.Unlock()

	var out []*domain.YearlyReport
	for _, r := range m.Ledger.Yearly {
		if r.OwnerID == ownerID {
			c := *r
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out, nil
}

// MockOwnerRepository is a mock implementation of domain.OwnerRepository
type MockOwnerRepository struct {
	Owners map[string]*domain.Owner
	ByID   map[int32]*domain.Owner
	NextID int32
}

// NewMockOwnerRepository creates a new MockOwnerRepository
func NewMockOwnerRepository() *MockOwnerRepository {
	return &MockOwnerRepository{
		Owners: make(map[string]*domain.Owner),
		ByID:   make(map[int32]*domain.Owner),
		NextID: 1,
	}
}

// GetByID retrieves an owner by ID
func (m *MockOwnerRepository) GetByID(id int32) (*domain.Owner, error) {
	if o, ok := m.ByID[id]; ok {
		return o, nil
	}
	return nil, domain.ErrOwnerNotFound
}

// GetByAuth0ID retrieves an owner by Auth0 ID
func (m *MockOwnerRepository) GetByAuth0ID(auth0ID string) (*domain.Owner, error) {
	if o, ok := m.Owners[auth0ID]; ok {
		return o, nil
	}
	return nil, domain.ErrOwnerNotFound
}

// CreateOrGetByAuth0ID creates or retrieves an owner by Auth0 ID
func (m *MockOwnerRepository) CreateOrGetByAuth0ID(auth0ID, email string, name *string) (*domain.Owner, error) {
	if o, ok := m.Owners[auth0ID]; ok {
		return o, nil
	}
	o := &domain.Owner{
		ID:      m.NextID,
		Auth0ID: auth0ID,
		Email:   email,
		Name:    name,
	}
	m.NextID++
	m.Owners[auth0ID] = o
	m.ByID[o.ID] = o
	return o, nil
}

// AddOwner adds an owner to the mock repository (helper for tests)
func (m *MockOwnerRepository) AddOwner(owner *domain.Owner) {
	m.Owners[owner.Auth0ID] = owner
	m.ByID[owner.ID] = owner
	if owner.ID >= m.NextID {
		m.NextID = owner.ID + 1
	}
}

// MockStatementRepository is an in-memory statement store
type MockStatementRepository struct {
	Objects map[string][]byte
}

// NewMockStatementRepository creates a new MockStatementRepository
func NewMockStatementRepository() *MockStatementRepository {
	return &MockStatementRepository{Objects: make(map[string][]byte)}
}

// Upload stores the object bytes in memory
func (m *MockStatementRepository) Upload(ctx context.Context, objectPath string, data io.Reader, contentType string, size int64) (string, error) {
	buf, err := io.ReadAll(data)
	if err != nil {
		return "", err
	}
	m.Objects[objectPath] = buf
	return objectPath, nil
}

// Delete removes a stored object
func (m *MockStatementRepository) Delete(ctx context.Context, objectPath string) error {
	delete(m.Objects, objectPath)
	return nil
}

// GeneratePresignedURL returns a deterministic fake URL
func (m *MockStatementRepository) GeneratePresignedURL(ctx context.Context, objectPath string, expiry time.Duration) (string, error) {
	return "https://statements.test/" + objectPath, nil
}
