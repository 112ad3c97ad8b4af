package domain

import (
	"time"

	"github.com/google/uuid"
)

// ScenarioParams are the inputs shared by every run of a sweep.
// Loan rate is in percent; growth rates are fractions (0.05 = 5%).
type ScenarioParams struct {
	LoanPrincipal       float64 `json:"loan_principal" yaml:"loan_principal"`
	AnnualLoanRate      float64 `json:"annual_loan_rate" yaml:"annual_loan_rate"`
	TenureMonths        int     `json:"tenure_months" yaml:"tenure_months"`
	HouseValue          float64 `json:"house_value" yaml:"house_value"`
	HouseAnnualGrowth   float64 `json:"house_annual_growth" yaml:"house_annual_growth"`
	FundInitial         float64 `json:"fund_initial" yaml:"fund_initial"`
	FundMonthlyAddition float64 `json:"fund_monthly_addition" yaml:"fund_monthly_addition"`
	FundAnnualGrowth    float64 `json:"fund_annual_growth" yaml:"fund_annual_growth"`
}

// ScenarioInput is a single run: shared params plus the prepayment month
// (0 disables the prepayment).
type ScenarioInput struct {
	ScenarioParams `yaml:",inline"`
	PrepayMonth int `json:"prepay_month" yaml:"prepay_month"`
}

type HouseAsset struct {
	Value       float64
	MonthlyRate float64
}

type FundAsset struct {
	Value           float64
	MonthlyAddition float64
	MonthlyRate     float64
}

// MonthState is the full simulation state at the end of a month.
type MonthState struct {
	Month int
	Loan  LoanState
	House HouseAsset
	Fund  FundAsset
}

// MonthSnapshot describes what happened during one simulated month.
type MonthSnapshot struct {
	Month              int     `json:"month"`
	HouseValue         float64 `json:"house_value"`
	Contribution       float64 `json:"contribution"`
	Interest           float64 `json:"interest"`
	PrincipalPaid      float64 `json:"principal_paid"`
	Lumpsum            float64 `json:"lumpsum"`
	RemainingPrincipal float64 `json:"remaining_principal"`
	FundValue          float64 `json:"fund_value"`
	LoanClosed         bool    `json:"loan_closed"`
}

type ScenarioResult struct {
	PrepayMonth     int         `json:"prepay_month"`
	EMI             float64     `json:"emi"`
	HouseValue      float64     `json:"house_value"`
	FundValue       float64     `json:"fund_value"`
	NetWorth        float64     `json:"net_worth"`
	LoanClosedMonth LoanClosure `json:"loan_closed_month"`
}

// SweepRow is one line of the prepayment sweep.
type SweepRow struct {
	PrepayMonth     int         `json:"prepay_month"`
	HouseValue      float64     `json:"house_value"`
	FundValue       float64     `json:"fund_value"`
	NetWorth        float64     `json:"net_worth"`
	LoanClosedMonth LoanClosure `json:"loan_closed_month"`
}

type SweepSummary struct {
	EMI              float64  `json:"emi"`
	Baseline         SweepRow `json:"baseline"`
	Best             SweepRow `json:"best"`
	Worst            SweepRow `json:"worst"`
	GainOverBaseline float64  `json:"gain_over_baseline"`
	Explanation      string   `json:"explanation,omitempty"`
}

type SweepReport struct {
	ID        uuid.UUID      `json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	Params    ScenarioParams `json:"params"`
	Rows      []SweepRow     `json:"rows"`
	Summary   SweepSummary   `json:"summary"`
}
