package report

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"prepay-sim/domain"
)

const (
	pageWidth    = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 20.0
	contentWidth = pageWidth - marginLeft - marginRight
)

var tableColumns = []struct {
	title string
	width float64
}{
	{"Prepay month", 30},
	{"House value", 37.5},
	{"Fund value", 37.5},
	{"Net worth", 37.5},
	{"Loan closed", 37.5},
}

// WritePDF renders the sweep summary and the full table as an A4 PDF.
func WritePDF(w io.Writer, r domain.SweepReport) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginLeft, marginTop, marginRight)
	pdf.SetAutoPageBreak(true, marginBottom)
	pdf.SetTitle("Loan prepayment sweep", false)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	writeHeader(pdf, r)
	writeTable(pdf, r.Rows)

	return pdf.Output(w)
}

func writeHeader(pdf *fpdf.Fpdf, r domain.SweepReport) {
	p, s := r.Params, r.Summary

	pdf.SetFont("Arial", "B", 18)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(contentWidth, 10, "Loan Prepayment vs. Net Worth", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "I", 9)
	pdf.SetTextColor(80, 80, 80)
	pdf.CellFormat(contentWidth, 6, fmt.Sprintf("Report %s, %s", r.ID, r.CreatedAt.Format("2 January 2006")), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(50, 50, 50)
	lines := []string{
		fmt.Sprintf("Loan: %s at %.2f%% for %d months, EMI %s",
			FormatIndian(p.LoanPrincipal), p.AnnualLoanRate, p.TenureMonths, FormatIndian(s.EMI)),
		fmt.Sprintf("House: %s growing %.2f%% a year", FormatIndian(p.HouseValue), p.HouseAnnualGrowth*100),
		fmt.Sprintf("Fund: %s plus %s a month growing %.2f%% a year",
			FormatIndian(p.FundInitial), FormatIndian(p.FundMonthlyAddition), p.FundAnnualGrowth*100),
		fmt.Sprintf("No prepayment: %s", FormatIndian(s.Baseline.NetWorth)),
		fmt.Sprintf("Best month: %d, net worth %s (+%s)",
			s.Best.PrepayMonth, FormatIndian(s.Best.NetWorth), FormatIndian(s.GainOverBaseline)),
	}
	for _, line := range lines {
		pdf.CellFormat(contentWidth, 6, line, "", 1, "L", false, 0, "")
	}
	if s.Explanation != "" {
		pdf.Ln(2)
		pdf.MultiCell(contentWidth, 5, s.Explanation, "", "L", false)
	}
	pdf.Ln(4)
}

func writeTableHeader(pdf *fpdf.Fpdf) {
	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(0, 51, 102)
	pdf.SetTextColor(255, 255, 255)
	for _, col := range tableColumns {
		pdf.CellFormat(col.width, 7, col.title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(50, 50, 50)
}

func writeTable(pdf *fpdf.Fpdf, rows []domain.SweepRow) {
	_, pageHeight := pdf.GetPageSize()
	writeTableHeader(pdf)

	for i, row := range rows {
		if pdf.GetY()+6 > pageHeight-marginBottom {
			pdf.AddPage()
			writeTableHeader(pdf)
		}
		fill := i%2 == 1
		pdf.SetFillColor(245, 247, 250)
		cells := []string{
			fmt.Sprintf("%d", row.PrepayMonth),
			FormatIndian(row.HouseValue),
			FormatIndian(row.FundValue),
			FormatIndian(row.NetWorth),
			closedLabel(row.LoanClosedMonth),
		}
		for j, cell := range cells {
			pdf.CellFormat(tableColumns[j].width, 6, cell, "LR", 0, "R", fill, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.CellFormat(contentWidth, 0, "", "T", 1, "", false, 0, "")
}
