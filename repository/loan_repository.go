package repository

import (
	"github.com/google/uuid"

	"prepay-sim/domain"
)

type LoanRepository interface {
	Save(input domain.LoanInput, result domain.LoanResult) error
}

// SweepRepository keeps finished sweep reports so they can be fetched
// again by ID.
type SweepRepository interface {
	Save(report domain.SweepReport) error
	Get(id uuid.UUID) (domain.SweepReport, bool)
}
