package api

import (
	"context"
	"net/http"

	"github.com/Tosmel2/Monivoza/internal/core"
)

// Transactions lists the authenticated user's transactions, newest
// first per server ordering.
func (c *Client) Transactions(ctx context.Context) ([]core.Transaction, error) {
	var txns []core.Transaction
	if err := c.call(ctx, http.MethodGet, "/transactions", nil, &txns, "Failed to fetch transactions"); err != nil {
		return nil, err
	}
	return txns, nil
}

// Deposit posts a deposit to one of the user's accounts.
func (c *Client) Deposit(ctx context.Context, req DepositRequest) (core.Transaction, error) {
	var txn core.Transaction
	if err := c.call(ctx, http.MethodPost, "/transactions/deposit", req, &txn, "Failed to deposit"); err != nil {
		return core.Transaction{}, err
	}
	return txn, nil
}

// Withdraw posts a withdrawal. Balance sufficiency is the server's
// call; an insufficient balance comes back as a server-messaged error.
func (c *Client) Withdraw(ctx context.Context, req WithdrawRequest) (core.Transaction, error) {
	var txn core.Transaction
	if err := c.call(ctx, http.MethodPost, "/transactions/withdraw", req, &txn, "Failed to withdraw"); err != nil {
		return core.Transaction{}, err
	}
	return txn, nil
}

// Transfer moves funds to another account by account number.
func (c *Client) Transfer(ctx context.Context, req TransferRequest) (core.Transaction, error) {
	var txn core.Transaction
	if err := c.call(ctx, http.MethodPost, "/transactions/transfer", req, &txn, "Failed to transfer"); err != nil {
		return core.Transaction{}, err
	}
	return txn, nil
}
