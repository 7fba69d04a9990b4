package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Tosmel2/Monivoza/internal/core"
)

// Accounts lists the authenticated user's accounts.
func (c *Client) Accounts(ctx context.Context) ([]core.Account, error) {
	var accounts []core.Account
	if err := c.call(ctx, http.MethodGet, "/accounts", nil, &accounts, "Failed to fetch accounts"); err != nil {
		return nil, err
	}
	return accounts, nil
}

// AccountBalance fetches the current balance of one account.
func (c *Client) AccountBalance(ctx context.Context, accountID int64) (AccountBalance, error) {
	var balance AccountBalance
	path := fmt.Sprintf("/accounts/%d/balance", accountID)
	if err := c.call(ctx, http.MethodGet, path, nil, &balance, "Failed to fetch account balance"); err != nil {
		return AccountBalance{}, err
	}
	return balance, nil
}

// CreateAccount opens a new account for the authenticated user.
func (c *Client) CreateAccount(ctx context.Context, req CreateAccountRequest) (core.Account, error) {
	var account core.Account
	if err := c.call(ctx, http.MethodPost, "/accounts", req, &account, "Failed to create account"); err != nil {
		return core.Account{}, err
	}
	return account, nil
}
