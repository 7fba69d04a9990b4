package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Tosmel2/Monivoza/internal/core"
)

// Loans lists the authenticated user's loans.
func (c *Client) Loans(ctx context.Context) ([]core.Loan, error) {
	var loans []core.Loan
	if err := c.call(ctx, http.MethodGet, "/loans", nil, &loans, "Failed to fetch loans"); err != nil {
		return nil, err
	}
	return loans, nil
}

// Loan fetches one loan by id.
func (c *Client) Loan(ctx context.Context, loanID int64) (core.Loan, error) {
	var l core.Loan
	path := fmt.Sprintf("/loans/%d", loanID)
	if err := c.call(ctx, http.MethodGet, path, nil, &l, "Failed to fetch loan details"); err != nil {
		return core.Loan{}, err
	}
	return l, nil
}

// LoanRepayments lists the repayment history of a loan.
func (c *Client) LoanRepayments(ctx context.Context, loanID int64) ([]core.Repayment, error) {
	var repayments []core.Repayment
	path := fmt.Sprintf("/loans/%d/repayments", loanID)
	if err := c.call(ctx, http.MethodGet, path, nil, &repayments, "Failed to fetch loan repayments"); err != nil {
		return nil, err
	}
	return repayments, nil
}

// RepayLoan posts a repayment against an active loan. Whether the
// amount exceeds the outstanding balance is the server's call.
func (c *Client) RepayLoan(ctx context.Context, loanID int64, req RepayLoanRequest) (core.Repayment, error) {
	var repayment core.Repayment
	path := fmt.Sprintf("/loans/%d/repay", loanID)
	if err := c.call(ctx, http.MethodPost, path, req, &repayment, "Failed to repay loan"); err != nil {
		return core.Repayment{}, err
	}
	return repayment, nil
}

// ApplyForLoan submits a loan application. The terms must pass the same
// boundary validation the amortization engine relies on.
func (c *Client) ApplyForLoan(ctx context.Context, req ApplyLoanRequest) (core.Loan, error) {
	var l core.Loan
	if err := c.call(ctx, http.MethodPost, "/loans/apply", req, &l, "Failed to apply for loan"); err != nil {
		return core.Loan{}, err
	}
	return l, nil
}
