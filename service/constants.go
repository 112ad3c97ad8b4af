package service

const (
	MaxLoanAmount   = 1_000_000_000_000.0 // 1 lakh crore
	MaxInterestRate = 1000.0              // 1000% annual
	MaxTermMonths   = 600                 // 50 years
	MinTermMonths   = 1

	// MinAnnualGrowth is -100%: an asset can lose everything but not more.
	MinAnnualGrowth = -1.0

	DefaultSweepWorkers = 4
)
