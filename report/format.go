// Package report renders sweep results as text tables and PDF documents.
package report

import (
	"math"
	"strconv"
	"strings"
)

const (
	lakh  = 1_00_000
	crore = 1_00_00_000
)

// FormatIndian renders an amount in crores ("2.65 Cr") or lakhs
// ("48.50 L") when large enough, otherwise as "12,345.68".
func FormatIndian(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
	}
	abs := math.Abs(amount)

	switch {
	case abs >= crore:
		return sign + fixed2(abs/crore) + " Cr"
	case abs >= lakh:
		return sign + fixed2(abs/lakh) + " L"
	default:
		return sign + FormatAmount(abs)
	}
}

// FormatAmount renders an amount with 2 decimals and thousands separators.
// Rounding follows the binary value, so 2.675 prints as "2.67".
func FormatAmount(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
	}
	intPart, frac, _ := strings.Cut(fixed2(math.Abs(amount)), ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String() + "." + frac
}

func fixed2(x float64) string {
	return strconv.FormatFloat(x, 'f', 2, 64)
}
