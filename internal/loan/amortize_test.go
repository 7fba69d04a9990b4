package loan

import (
	"math"
	"testing"
)

const eps = 1e-6

func TestQuoteWithInterest(t *testing.T) {
	got := Quote(Terms{Principal: 10000, AnnualRatePercent: 12.5, TermMonths: 24})

	if math.Abs(got.MonthlyPayment-473.07) > 0.01 {
		t.Errorf("monthly payment = %.4f, want ≈ 473.07", got.MonthlyPayment)
	}
	if math.Abs(got.TotalPayment-11353.75) > 0.01 {
		t.Errorf("total payment = %.4f, want ≈ 11353.75", got.TotalPayment)
	}
	if math.Abs(got.TotalInterest-1353.75) > 0.01 {
		t.Errorf("total interest = %.4f, want ≈ 1353.75", got.TotalInterest)
	}
}

func TestQuoteZeroRateStraightLine(t *testing.T) {
	got := Quote(Terms{Principal: 1000, AnnualRatePercent: 0, TermMonths: 10})

	if got.MonthlyPayment != 100 {
		t.Errorf("monthly payment = %v, want 100", got.MonthlyPayment)
	}
	if got.TotalInterest != 0 {
		t.Errorf("total interest = %v, want 0", got.TotalInterest)
	}
}

func TestQuoteMonotonicInRate(t *testing.T) {
	low := Quote(Terms{Principal: 500000, AnnualRatePercent: 12.5, TermMonths: 84})
	high := Quote(Terms{Principal: 500000, AnnualRatePercent: 30, TermMonths: 84})

	if high.MonthlyPayment <= low.MonthlyPayment {
		t.Errorf("payment at 30%% (%v) should exceed payment at 12.5%% (%v)",
			high.MonthlyPayment, low.MonthlyPayment)
	}
}

func TestQuoteSingleMonthTerm(t *testing.T) {
	terms := Terms{Principal: 1200, AnnualRatePercent: 12, TermMonths: 1}
	got := Quote(terms)

	want := terms.Principal * (1 + terms.MonthlyRate())
	if math.Abs(got.MonthlyPayment-want) > eps {
		t.Errorf("monthly payment = %v, want %v", got.MonthlyPayment, want)
	}
}

func TestQuoteInvariants(t *testing.T) {
	cases := []Terms{
		{Principal: 10000, AnnualRatePercent: 12.5, TermMonths: 24},
		{Principal: 1000, AnnualRatePercent: 0, TermMonths: 10},
		{Principal: 500000, AnnualRatePercent: 30, TermMonths: 84},
		{Principal: 0.01, AnnualRatePercent: 1, TermMonths: 1},
		{Principal: 250000, AnnualRatePercent: 6.75, TermMonths: 360},
	}
	for _, terms := range cases {
		if err := terms.Validate(); err != nil {
			t.Fatalf("terms %+v should be valid: %v", terms, err)
		}
		got := Quote(terms)
		if got.MonthlyPayment <= 0 {
			t.Errorf("%+v: monthly payment %v not positive", terms, got.MonthlyPayment)
		}
		if diff := math.Abs(got.TotalPayment - got.MonthlyPayment*float64(terms.TermMonths)); diff > eps {
			t.Errorf("%+v: total payment off by %v", terms, diff)
		}
		if got.TotalInterest < -eps {
			t.Errorf("%+v: negative total interest %v", terms, got.TotalInterest)
		}
	}
}

func TestQuoteIsPure(t *testing.T) {
	terms := Terms{Principal: 10000, AnnualRatePercent: 12.5, TermMonths: 24}
	first := Quote(terms)
	second := Quote(terms)
	if first != second {
		t.Errorf("identical inputs produced different outputs: %+v vs %+v", first, second)
	}
}

func TestTermsValidate(t *testing.T) {
	bad := []Terms{
		{Principal: 0, AnnualRatePercent: 5, TermMonths: 12},
		{Principal: -100, AnnualRatePercent: 5, TermMonths: 12},
		{Principal: 100, AnnualRatePercent: -1, TermMonths: 12},
		{Principal: 100, AnnualRatePercent: 5, TermMonths: 0},
	}
	for _, terms := range bad {
		if err := terms.Validate(); err == nil {
			t.Errorf("expected validation error for %+v", terms)
		}
	}
}

func TestScheduleBalancesToZero(t *testing.T) {
	terms := Terms{Principal: 10000, AnnualRatePercent: 12.5, TermMonths: 24}
	rows := Schedule(terms)

	if len(rows) != terms.TermMonths {
		t.Fatalf("schedule has %d rows, want %d", len(rows), terms.TermMonths)
	}
	if rows[len(rows)-1].Balance != 0 {
		t.Errorf("final balance = %v, want 0", rows[len(rows)-1].Balance)
	}

	var principalPaid float64
	for i, row := range rows {
		if row.Month != i+1 {
			t.Errorf("row %d has month %d", i, row.Month)
		}
		if row.Interest < 0 || row.Principal < 0 {
			t.Errorf("row %d has negative components: %+v", i, row)
		}
		principalPaid += row.Principal
	}
	if math.Abs(principalPaid-terms.Principal) > 0.01 {
		t.Errorf("principal paid %v, want %v", principalPaid, terms.Principal)
	}
}

func TestProgress(t *testing.T) {
	cases := []struct {
		principal, outstanding, want float64
	}{
		{10000, 10000, 0},
		{10000, 5000, 50},
		{10000, 0, 100},
		{10000, -50, 100}, // overpayment clamps
		{0, 0, 0},
	}
	for _, tc := range cases {
		if got := Progress(tc.principal, tc.outstanding); math.Abs(got-tc.want) > eps {
			t.Errorf("Progress(%v, %v) = %v, want %v", tc.principal, tc.outstanding, got, tc.want)
		}
	}
}
