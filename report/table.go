package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"prepay-sim/domain"
)

func closedLabel(c domain.LoanClosure) string {
	if month, ok := c.Month(); ok {
		return fmt.Sprintf("%d", month)
	}
	return "-"
}

// WriteTable prints one line per prepayment month.
func WriteTable(w io.Writer, r domain.SweepReport) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "PrepayMonth\tHouseValue\tFundValue\tNetWorth\tLoanClosed\t")
	for _, row := range r.Rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t\n",
			row.PrepayMonth,
			FormatIndian(row.HouseValue),
			FormatIndian(row.FundValue),
			FormatIndian(row.NetWorth),
			closedLabel(row.LoanClosedMonth),
		)
	}
	return tw.Flush()
}

// WriteSummary prints the headline numbers of a sweep.
func WriteSummary(w io.Writer, r domain.SweepReport) error {
	s := r.Summary
	_, err := fmt.Fprintf(w,
		"EMI:            %s\nNo prepayment:  %s\nBest month:     %d (%s, +%s)\nWorst month:    %d (%s)\n",
		FormatIndian(s.EMI),
		FormatIndian(s.Baseline.NetWorth),
		s.Best.PrepayMonth, FormatIndian(s.Best.NetWorth), FormatIndian(s.GainOverBaseline),
		s.Worst.PrepayMonth, FormatIndian(s.Worst.NetWorth),
	)
	if err != nil {
		return err
	}
	if s.Explanation != "" {
		_, err = fmt.Fprintf(w, "\n%s\n", s.Explanation)
	}
	return err
}

// WriteSchedule prints the month-by-month trace of one scenario.
func WriteSchedule(w io.Writer, snapshots []domain.MonthSnapshot) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Month\tHouse\tContribution\tInterest\tPrincipalPaid\tLumpsum\tPrincipalLeft\tFund\t")
	for _, s := range snapshots {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			s.Month,
			FormatIndian(s.HouseValue),
			FormatIndian(s.Contribution),
			FormatIndian(s.Interest),
			FormatIndian(s.PrincipalPaid),
			FormatIndian(s.Lumpsum),
			FormatIndian(s.RemainingPrincipal),
			FormatIndian(s.FundValue),
		)
	}
	return tw.Flush()
}
