package repository

import (
	"sync"

	"github.com/google/uuid"

	"prepay-sim/domain"
)

type loanRecord struct {
	Input  domain.LoanInput
	Result domain.LoanResult
}

// LoanRepositoryMemory is an in-memory implementation of LoanRepository.
type LoanRepositoryMemory struct {
	mu   sync.Mutex
	data []loanRecord
}

// NewLoanRepositoryMemory creates a new in-memory loan repository.
func NewLoanRepositoryMemory() *LoanRepositoryMemory {
	return &LoanRepositoryMemory{}
}

// Save stores the loan calculation in memory.
func (r *LoanRepositoryMemory) Save(
	input domain.LoanInput,
	result domain.LoanResult,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = append(r.data, loanRecord{Input: input, Result: result})
	return nil
}

func (r *LoanRepositoryMemory) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.data)
}

// SweepRepositoryMemory holds at most capacity reports, dropping the
// oldest first.
type SweepRepositoryMemory struct {
	mu       sync.RWMutex
	capacity int
	order    []uuid.UUID
	reports  map[uuid.UUID]domain.SweepReport
}

func NewSweepRepositoryMemory(capacity int) *SweepRepositoryMemory {
	if capacity <= 0 {
		capacity = 100
	}
	return &SweepRepositoryMemory{
		capacity: capacity,
		reports:  make(map[uuid.UUID]domain.SweepReport),
	}
}

func (r *SweepRepositoryMemory) Save(report domain.SweepReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.reports[report.ID]; !exists {
		r.order = append(r.order, report.ID)
	}
	r.reports[report.ID] = report

	for len(r.order) > r.capacity {
		oldest := r.order[0]
		r.order = r.order[1:]
		delete(r.reports, oldest)
	}
	return nil
}

func (r *SweepRepositoryMemory) Get(id uuid.UUID) (domain.SweepReport, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	report, ok := r.reports[id]
	return report, ok
}
