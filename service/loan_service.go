package service

import (
	"math"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"prepay-sim/domain"
	"prepay-sim/repository"
)

// roundTo2Decimals rounds half away from zero to 2 decimal places.
func roundTo2Decimals(value float64) float64 {
	return decimal.NewFromFloat(value).Round(2).InexactFloat64()
}

// CalculateEMI returns the fixed monthly installment that amortizes
// principal to zero over tenureMonths at annualRate percent.
// A zero rate falls back to straight-line repayment.
func CalculateEMI(principal, annualRate float64, tenureMonths int) (float64, error) {
	if tenureMonths <= 0 {
		return 0, invalidInput("tenure must be positive, got %d months", tenureMonths)
	}

	monthlyRate := (annualRate / 100) / 12
	if monthlyRate == 0 {
		return principal / float64(tenureMonths), nil
	}

	n := float64(tenureMonths)
	return principal * monthlyRate / (1 - math.Pow(1+monthlyRate, -n)), nil
}

type LoanService struct {
	repo   repository.LoanRepository
	logger logrus.FieldLogger
}

// NewLoanService creates a new LoanService with the given repository.
func NewLoanService(repo repository.LoanRepository, logger logrus.FieldLogger) *LoanService {
	return &LoanService{repo: repo, logger: logger}
}

// CalculateLoan returns the EMI and totals for a plain loan, rounded to
// 2 decimals.
func (s *LoanService) CalculateLoan(
	input domain.LoanInput,
) (domain.LoanResult, error) {

	if input.Amount <= 0 || math.IsNaN(input.Amount) {
		return domain.LoanResult{}, invalidInput("amount must be positive")
	}
	if input.Amount > MaxLoanAmount {
		return domain.LoanResult{}, invalidInput("amount exceeds the maximum of %.2f", MaxLoanAmount)
	}
	if input.InterestRate < 0 || math.IsNaN(input.InterestRate) {
		return domain.LoanResult{}, invalidInput("interest rate must not be negative")
	}
	if input.InterestRate > MaxInterestRate {
		return domain.LoanResult{}, invalidInput("interest rate exceeds the maximum of %.2f%%", MaxInterestRate)
	}
	if input.TermMonths > MaxTermMonths {
		return domain.LoanResult{}, invalidInput("term exceeds the maximum of %d months", MaxTermMonths)
	}

	emi, err := CalculateEMI(input.Amount, input.InterestRate, input.TermMonths)
	if err != nil {
		return domain.LoanResult{}, err
	}

	total := emi * float64(input.TermMonths)
	interest := total - input.Amount

	result := domain.LoanResult{
		MonthlyPayment: roundTo2Decimals(emi),
		TotalPayment:   roundTo2Decimals(total),
		TotalInterest:  roundTo2Decimals(interest),
	}

	// history is best effort
	if err := s.repo.Save(input, result); err != nil {
		s.logger.WithError(err).Warn("failed to save loan calculation")
	}

	return result, nil
}
