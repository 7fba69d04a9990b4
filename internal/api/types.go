package api

import "github.com/Tosmel2/Monivoza/internal/core"

// Request and response bodies, typed per endpoint. The backend speaks
// snake_case JSON throughout.

type (
	LoginResult struct {
		Token string    `json:"token"`
		User  core.User `json:"user"`
	}

	RegisterRequest struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Email     string `json:"email"`
		Password  string `json:"password"`
	}

	CreateAccountRequest struct {
		AccountType    string  `json:"account_type"`
		InitialDeposit float64 `json:"initial_deposit,omitempty"`
	}

	AccountBalance struct {
		AccountID     int64   `json:"account_id"`
		AccountNumber string  `json:"account_number,omitempty"`
		Balance       float64 `json:"balance"`
	}

	DepositRequest struct {
		AccountID   int64   `json:"account_id"`
		Amount      float64 `json:"amount"`
		Description string  `json:"description,omitempty"`
	}

	WithdrawRequest struct {
		AccountID   int64   `json:"account_id"`
		Amount      float64 `json:"amount"`
		Description string  `json:"description,omitempty"`
	}

	TransferRequest struct {
		AccountID                int64   `json:"account_id"`
		DestinationAccountNumber string  `json:"destination_account_number"`
		Amount                   float64 `json:"amount"`
		Description              string  `json:"description,omitempty"`
	}

	ApplyLoanRequest struct {
		LoanType        string  `json:"loan_type"`
		PrincipalAmount float64 `json:"principal_amount"`
		InterestRate    float64 `json:"interest_rate"`
		TermMonths      int     `json:"term_months"`
		Purpose         string  `json:"purpose,omitempty"`
		AccountID       int64   `json:"account_id"`
	}

	RepayLoanRequest struct {
		Amount        float64 `json:"amount"`
		PaymentMethod string  `json:"payment_method"`
	}

	UpdateUserStatusRequest struct {
		Status string `json:"status"`
	}
)
