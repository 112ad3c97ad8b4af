package service

import (
	"math"

	"prepay-sim/domain"
)

// monthlyGrowthRate converts an annual growth fraction into the monthly
// rate that compounds back to it over twelve months.
func monthlyGrowthRate(annual float64) float64 {
	return math.Pow(1+annual, 1.0/12) - 1
}

// clampPrincipal absorbs an overpayment in the final installment or lumpsum.
func clampPrincipal(p float64) float64 {
	if p < 0 {
		return 0
	}
	return p
}

// InitialState is the state before month 1.
func InitialState(p domain.ScenarioParams) (domain.MonthState, error) {
	emi, err := CalculateEMI(p.LoanPrincipal, p.AnnualLoanRate, p.TenureMonths)
	if err != nil {
		return domain.MonthState{}, err
	}

	return domain.MonthState{
		Loan: domain.LoanState{
			Principal:  p.LoanPrincipal,
			AnnualRate: p.AnnualLoanRate,
			EMI:        emi,
		},
		House: domain.HouseAsset{
			Value:       p.HouseValue,
			MonthlyRate: monthlyGrowthRate(p.HouseAnnualGrowth),
		},
		Fund: domain.FundAsset{
			Value:           p.FundInitial,
			MonthlyAddition: p.FundMonthlyAddition,
			MonthlyRate:     monthlyGrowthRate(p.FundAnnualGrowth),
		},
	}, nil
}

// StepMonth advances state by one month and reports what happened in it.
// The lumpsum is drawn when the new month equals prepayMonth; 0 never
// matches.
func StepMonth(state domain.MonthState, prepayMonth int) (domain.MonthState, domain.MonthSnapshot) {
	month := state.Month + 1
	loan, house, fund := state.Loan, state.House, state.Fund
	snap := domain.MonthSnapshot{Month: month}

	house.Value *= 1 + house.MonthlyRate

	// the EMI is redirected into the fund from the month after closure
	contribution := fund.MonthlyAddition
	if !loan.Open() {
		contribution += loan.EMI
	}
	fund.Value += contribution
	snap.Contribution = contribution

	if loan.Open() {
		before := loan.Principal
		snap.Interest = loan.Principal * loan.MonthlyRate()
		loan.Principal = clampPrincipal(loan.Principal - (loan.EMI - snap.Interest))
		snap.PrincipalPaid = before - loan.Principal
	}

	if month == prepayMonth && loan.Principal > 0 {
		lumpsum := math.Min(fund.Value, loan.Principal)
		fund.Value -= lumpsum
		loan.Principal = clampPrincipal(loan.Principal - lumpsum)
		snap.Lumpsum = lumpsum
	}

	if loan.Principal <= 0 {
		loan.Closure = loan.Closure.Close(month)
	}

	fund.Value *= 1 + fund.MonthlyRate

	snap.HouseValue = house.Value
	snap.FundValue = fund.Value
	snap.RemainingPrincipal = loan.Principal
	snap.LoanClosed = !loan.Open()

	return domain.MonthState{Month: month, Loan: loan, House: house, Fund: fund}, snap
}

func run(in domain.ScenarioInput, record func(domain.MonthSnapshot)) (domain.MonthState, error) {
	state, err := InitialState(in.ScenarioParams)
	if err != nil {
		return domain.MonthState{}, err
	}

	var snap domain.MonthSnapshot
	for state.Month < in.TenureMonths {
		state, snap = StepMonth(state, in.PrepayMonth)
		if record != nil {
			record(snap)
		}
	}
	return state, nil
}

func resultFrom(in domain.ScenarioInput, final domain.MonthState) domain.ScenarioResult {
	return domain.ScenarioResult{
		PrepayMonth:     in.PrepayMonth,
		EMI:             final.Loan.EMI,
		HouseValue:      final.House.Value,
		FundValue:       final.Fund.Value,
		NetWorth:        final.House.Value + final.Fund.Value,
		LoanClosedMonth: final.Loan.Closure,
	}
}

// Simulate runs one full tenure for in.PrepayMonth. It has no side
// effects and is safe to call from many goroutines.
func Simulate(in domain.ScenarioInput) (domain.ScenarioResult, error) {
	if err := ValidateScenario(in); err != nil {
		return domain.ScenarioResult{}, err
	}

	final, err := run(in, nil)
	if err != nil {
		return domain.ScenarioResult{}, err
	}
	return resultFrom(in, final), nil
}

// Schedule is Simulate with a snapshot of every month.
func Schedule(in domain.ScenarioInput) ([]domain.MonthSnapshot, domain.ScenarioResult, error) {
	if err := ValidateScenario(in); err != nil {
		return nil, domain.ScenarioResult{}, err
	}

	snapshots := make([]domain.MonthSnapshot, 0, in.TenureMonths)
	final, err := run(in, func(s domain.MonthSnapshot) {
		snapshots = append(snapshots, s)
	})
	if err != nil {
		return nil, domain.ScenarioResult{}, err
	}
	return snapshots, resultFrom(in, final), nil
}
