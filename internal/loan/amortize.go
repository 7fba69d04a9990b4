// Package loan implements fixed-rate amortization math.
//
// Every surface that shows loan numbers (the calculator command, the
// application flow, loan detail summaries) goes through Quote so the
// figures can never drift apart. The package is pure: no I/O, no state,
// and amounts stay unrounded floats until the presentation boundary.
package loan

import (
	"fmt"
	"math"
)

// Terms describes a fixed-rate, fixed-term loan.
type Terms struct {
	Principal         float64
	AnnualRatePercent float64
	TermMonths        int
}

// Summary is the annuity schedule summary for a set of Terms.
type Summary struct {
	MonthlyPayment float64
	TotalPayment   float64
	TotalInterest  float64
}

// Installment is one row of an amortization schedule.
type Installment struct {
	Month     int
	Payment   float64
	Interest  float64
	Principal float64
	Balance   float64
}

// Validate reports whether the terms are inside the domain Quote is
// defined on. Quote itself performs no checks; callers validate at the
// boundary.
func (t Terms) Validate() error {
	if t.Principal <= 0 {
		return fmt.Errorf("principal must be positive, got %v", t.Principal)
	}
	if t.AnnualRatePercent < 0 {
		return fmt.Errorf("annual rate must be non-negative, got %v", t.AnnualRatePercent)
	}
	if t.TermMonths < 1 {
		return fmt.Errorf("term must be at least 1 month, got %d", t.TermMonths)
	}
	return nil
}

// MonthlyRate converts the annual percentage rate to a periodic rate.
func (t Terms) MonthlyRate() float64 {
	return t.AnnualRatePercent / 100 / 12
}

// Quote computes the fixed monthly payment for t using the ordinary
// annuity formula, falling back to straight-line division when the rate
// is zero. Inputs outside Validate's domain are undefined.
func Quote(t Terms) Summary {
	r := t.MonthlyRate()
	n := float64(t.TermMonths)

	var monthly float64
	if r == 0 {
		monthly = t.Principal / n
	} else {
		pow := math.Pow(1+r, n)
		monthly = t.Principal * (r * pow) / (pow - 1)
	}

	total := monthly * n
	return Summary{
		MonthlyPayment: monthly,
		TotalPayment:   total,
		TotalInterest:  total - t.Principal,
	}
}

// Schedule expands t into month-by-month installments. The final row
// absorbs the floating-point residual so the balance lands exactly on
// zero.
func Schedule(t Terms) []Installment {
	summary := Quote(t)
	r := t.MonthlyRate()

	rows := make([]Installment, 0, t.TermMonths)
	balance := t.Principal
	for m := 1; m <= t.TermMonths; m++ {
		interest := balance * r
		principal := summary.MonthlyPayment - interest
		payment := summary.MonthlyPayment
		if m == t.TermMonths {
			// Residual lands here
			principal = balance
			payment = balance + interest
		}
		balance -= principal
		rows = append(rows, Installment{
			Month:     m,
			Payment:   payment,
			Interest:  interest,
			Principal: principal,
			Balance:   math.Max(balance, 0),
		})
	}
	return rows
}

// Progress returns the percentage of principal repaid given the
// outstanding balance, clamped to [0, 100]. A zero principal yields 0.
func Progress(principal, outstanding float64) float64 {
	if principal <= 0 {
		return 0
	}
	pct := (principal - outstanding) / principal * 100
	return math.Min(math.Max(pct, 0), 100)
}
