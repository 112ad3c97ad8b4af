package domain

// LoanInput is the request for a plain EMI calculation.
type LoanInput struct {
	Amount       float64 `json:"amount"`
	InterestRate float64 `json:"interest_rate"` // annual, percent
	TermMonths   int     `json:"term_months"`
}

type LoanResult struct {
	MonthlyPayment float64 `json:"monthly_payment"`
	TotalPayment   float64 `json:"total_payment"`
	TotalInterest  float64 `json:"total_interest"`
}

// LoanState is the outstanding loan at the end of a month.
type LoanState struct {
	Principal  float64
	AnnualRate float64 // percent
	EMI        float64
	Closure    LoanClosure
}

// MonthlyRate is the flat monthly rate used for interest accrual.
func (l LoanState) MonthlyRate() float64 {
	return (l.AnnualRate / 100) / 12
}

func (l LoanState) Open() bool {
	return !l.Closure.Closed()
}
