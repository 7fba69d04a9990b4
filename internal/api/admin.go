package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Tosmel2/Monivoza/internal/core"
)

// Admin operations. The backend enforces the role; the client only
// forwards the token.

func (c *Client) AdminUsers(ctx context.Context) ([]core.User, error) {
	var users []core.User
	if err := c.call(ctx, http.MethodGet, "/admin/users", nil, &users, "Failed to fetch users"); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) AdminPendingLoans(ctx context.Context) ([]core.Loan, error) {
	var loans []core.Loan
	if err := c.call(ctx, http.MethodGet, "/admin/loans/pending", nil, &loans, "Failed to fetch pending loans"); err != nil {
		return nil, err
	}
	return loans, nil
}

func (c *Client) AdminDashboardStats(ctx context.Context) (core.DashboardStats, error) {
	var stats core.DashboardStats
	if err := c.call(ctx, http.MethodGet, "/admin/dashboard/stats", nil, &stats, "Failed to fetch dashboard stats"); err != nil {
		return core.DashboardStats{}, err
	}
	return stats, nil
}

// UpdateUserStatus activates or suspends a user.
func (c *Client) UpdateUserStatus(ctx context.Context, userID int64, status string) (core.User, error) {
	var user core.User
	path := fmt.Sprintf("/admin/users/%d/status", userID)
	req := UpdateUserStatusRequest{Status: status}
	if err := c.call(ctx, http.MethodPut, path, req, &user, "Failed to update user status"); err != nil {
		return core.User{}, err
	}
	return user, nil
}

func (c *Client) ApproveLoan(ctx context.Context, loanID int64) (core.Loan, error) {
	return c.loanAction(ctx, loanID, "approve", "Failed to approve loan")
}

func (c *Client) RejectLoan(ctx context.Context, loanID int64) (core.Loan, error) {
	return c.loanAction(ctx, loanID, "reject", "Failed to reject loan")
}

func (c *Client) DisburseLoan(ctx context.Context, loanID int64) (core.Loan, error) {
	return c.loanAction(ctx, loanID, "disburse", "Failed to disburse loan")
}

func (c *Client) loanAction(ctx context.Context, loanID int64, action, fallback string) (core.Loan, error) {
	var l core.Loan
	path := fmt.Sprintf("/admin/loans/%d/%s", loanID, action)
	if err := c.call(ctx, http.MethodPut, path, nil, &l, fallback); err != nil {
		return core.Loan{}, err
	}
	return l, nil
}
