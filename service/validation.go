package service

import (
	"math"

	"prepay-sim/domain"
)

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ValidateParams checks the inputs shared by a sweep. It runs before any
// simulation so an invalid sweep produces no rows at all.
func ValidateParams(p domain.ScenarioParams) error {
	if p.TenureMonths < MinTermMonths {
		return invalidInput("tenure must be positive, got %d months", p.TenureMonths)
	}
	if p.TenureMonths > MaxTermMonths {
		return invalidInput("tenure exceeds the maximum of %d months", MaxTermMonths)
	}

	money := []struct {
		name  string
		value float64
	}{
		{"loan principal", p.LoanPrincipal},
		{"house value", p.HouseValue},
		{"fund initial value", p.FundInitial},
		{"fund monthly addition", p.FundMonthlyAddition},
	}
	for _, m := range money {
		if !finite(m.value) {
			return invalidInput("%s must be a finite number", m.name)
		}
		if m.value < 0 {
			return invalidInput("%s must not be negative", m.name)
		}
	}
	if p.LoanPrincipal > MaxLoanAmount {
		return invalidInput("loan principal exceeds the maximum of %.2f", MaxLoanAmount)
	}

	if !finite(p.AnnualLoanRate) || p.AnnualLoanRate < 0 {
		return invalidInput("annual loan rate must be a non-negative number")
	}
	if p.AnnualLoanRate > MaxInterestRate {
		return invalidInput("annual loan rate exceeds the maximum of %.2f%%", MaxInterestRate)
	}

	if !finite(p.HouseAnnualGrowth) || p.HouseAnnualGrowth < MinAnnualGrowth {
		return invalidInput("house annual growth must be at least -100%%")
	}
	if !finite(p.FundAnnualGrowth) || p.FundAnnualGrowth < MinAnnualGrowth {
		return invalidInput("fund annual growth must be at least -100%%")
	}

	return nil
}

// ValidateScenario checks a single run. A prepayment month past the
// tenure is accepted and simply never fires.
func ValidateScenario(in domain.ScenarioInput) error {
	if err := ValidateParams(in.ScenarioParams); err != nil {
		return err
	}
	if in.PrepayMonth < 0 {
		return invalidInput("prepay month must be 0 (disabled) or a month number, got %d", in.PrepayMonth)
	}
	return nil
}
