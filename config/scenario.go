package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"prepay-sim/domain"
)

// Amount accepts plain numbers or Indian shorthand: "50L", "2Cr", "2.35 lakh".
type Amount float64

// Percent accepts "8%" or a bare number already in the target unit.
type Percent struct {
	value   float64
	percent bool
}

// ScenarioFile is the YAML layout read by the CLI.
//
//	loan:
//	  principal: 50L
//	  annual_rate: 8%
//	  tenure_years: 20
//	house:
//	  value: 2Cr
//	  annual_growth: 5%
//	fund:
//	  initial: 33L
//	  monthly_addition: 2.35L
//	  annual_growth: 14%
//	prepay_month: 0
type ScenarioFile struct {
	Loan struct {
		Principal    Amount  `yaml:"principal"`
		AnnualRate   Percent `yaml:"annual_rate"`
		TenureMonths int     `yaml:"tenure_months"`
		TenureYears  int     `yaml:"tenure_years"`
	} `yaml:"loan"`
	House struct {
		Value        Amount  `yaml:"value"`
		AnnualGrowth Percent `yaml:"annual_growth"`
	} `yaml:"house"`
	Fund struct {
		Initial         Amount  `yaml:"initial"`
		MonthlyAddition Amount  `yaml:"monthly_addition"`
		AnnualGrowth    Percent `yaml:"annual_growth"`
	} `yaml:"fund"`
	PrepayMonth int `yaml:"prepay_month"`
}

var amountPattern = regexp.MustCompile(`(?i)^\s*(-?[0-9][0-9_,]*(?:\.[0-9]+)?)\s*(cr|crore|crores|l|lakh|lakhs|k)?\s*$`)

func (a *Amount) UnmarshalYAML(node *yaml.Node) error {
	m := amountPattern.FindStringSubmatch(node.Value)
	if m == nil {
		return fmt.Errorf("line %d: invalid amount %q", node.Line, node.Value)
	}
	n, err := strconv.ParseFloat(strings.NewReplacer("_", "", ",", "").Replace(m[1]), 64)
	if err != nil {
		return fmt.Errorf("line %d: invalid amount %q: %w", node.Line, node.Value, err)
	}
	switch strings.ToLower(m[2]) {
	case "cr", "crore", "crores":
		n *= 1_00_00_000
	case "l", "lakh", "lakhs":
		n *= 1_00_000
	case "k":
		n *= 1_000
	}
	*a = Amount(n)
	return nil
}

func (p *Percent) UnmarshalYAML(node *yaml.Node) error {
	raw := strings.TrimSpace(node.Value)
	trimmed := strings.TrimSuffix(raw, "%")
	n, err := strconv.ParseFloat(strings.TrimSpace(trimmed), 64)
	if err != nil {
		return fmt.Errorf("line %d: invalid percentage %q", node.Line, node.Value)
	}
	*p = Percent{value: n, percent: trimmed != raw}
	return nil
}

// AsPercent returns the value in percent units (8% -> 8).
func (p Percent) AsPercent() float64 {
	return p.value
}

// AsFraction returns the value as a fraction (5% -> 0.05). A bare number
// is taken to be a fraction already.
func (p Percent) AsFraction() float64 {
	if p.percent {
		return p.value / 100
	}
	return p.value
}

// Input converts the file into a simulator input.
func (f ScenarioFile) Input() (domain.ScenarioInput, error) {
	tenure := f.Loan.TenureMonths
	if tenure == 0 {
		tenure = f.Loan.TenureYears * 12
	}
	if f.Loan.TenureMonths != 0 && f.Loan.TenureYears != 0 && f.Loan.TenureMonths != f.Loan.TenureYears*12 {
		return domain.ScenarioInput{}, fmt.Errorf("loan.tenure_months (%d) and loan.tenure_years (%d) disagree",
			f.Loan.TenureMonths, f.Loan.TenureYears)
	}

	return domain.ScenarioInput{
		ScenarioParams: domain.ScenarioParams{
			LoanPrincipal:       float64(f.Loan.Principal),
			AnnualLoanRate:      f.Loan.AnnualRate.AsPercent(),
			TenureMonths:        tenure,
			HouseValue:          float64(f.House.Value),
			HouseAnnualGrowth:   f.House.AnnualGrowth.AsFraction(),
			FundInitial:         float64(f.Fund.Initial),
			FundMonthlyAddition: float64(f.Fund.MonthlyAddition),
			FundAnnualGrowth:    f.Fund.AnnualGrowth.AsFraction(),
		},
		PrepayMonth: f.PrepayMonth,
	}, nil
}

// ParseScenario decodes a YAML scenario document.
func ParseScenario(data []byte) (domain.ScenarioInput, error) {
	var f ScenarioFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return domain.ScenarioInput{}, err
	}
	return f.Input()
}

// LoadScenario reads a YAML scenario file.
func LoadScenario(filename string) (domain.ScenarioInput, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return domain.ScenarioInput{}, err
	}
	return ParseScenario(data)
}
