package core

import (
	"errors"
	"time"
)

// Statuses and enumerations as the backend reports them.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"

	UserActive    = "ACTIVE"
	UserSuspended = "SUSPENDED"

	LoanPending  = "PENDING"
	LoanApproved = "APPROVED"
	LoanActive   = "ACTIVE"
	LoanRejected = "REJECTED"
	LoanClosed   = "CLOSED"
)

type (
	// User is the profile returned by /auth/me and carried in the session.
	User struct {
		ID          int64     `json:"id"`
		Email       string    `json:"email"`
		FullName    string    `json:"full_name"`
		Role        string    `json:"role"`
		Status      string    `json:"status,omitempty"`
		CreatedDate time.Time `json:"created_date,omitempty"`
	}

	// Account is a read-only view of a server-owned ledger account.
	Account struct {
		ID            int64     `json:"id"`
		AccountNumber string    `json:"account_number"`
		AccountType   string    `json:"account_type"`
		Balance       float64   `json:"balance"`
		Status        string    `json:"status,omitempty"`
		CreatedDate   time.Time `json:"created_date,omitempty"`
	}

	Transaction struct {
		ID              int64     `json:"id"`
		TransactionRef  string    `json:"transaction_ref"`
		TransactionType string    `json:"transaction_type"`
		Amount          float64   `json:"amount"`
		Description     string    `json:"description,omitempty"`
		Status          string    `json:"status"`
		CreatedDate     time.Time `json:"created_date,omitempty"`
	}

	Loan struct {
		ID                 int64     `json:"id"`
		LoanNumber         string    `json:"loan_number"`
		LoanType           string    `json:"loan_type"`
		PrincipalAmount    float64   `json:"principal_amount"`
		InterestRate       float64   `json:"interest_rate"`
		TermMonths         int       `json:"term_months"`
		MonthlyPayment     float64   `json:"monthly_payment"`
		OutstandingBalance float64   `json:"outstanding_balance"`
		Purpose            string    `json:"purpose,omitempty"`
		Status             string    `json:"status"`
		CreatedBy          string    `json:"created_by,omitempty"`
		CreatedDate        time.Time `json:"created_date,omitempty"`
	}

	Repayment struct {
		ID              int64     `json:"id"`
		Amount          float64   `json:"amount"`
		PrincipalAmount float64   `json:"principal_amount"`
		InterestAmount  float64   `json:"interest_amount"`
		PaymentMethod   string    `json:"payment_method"`
		PaymentRef      string    `json:"payment_ref,omitempty"`
		Status          string    `json:"status"`
		CreatedDate     time.Time `json:"created_date,omitempty"`
	}

	// DashboardStats is the admin aggregate from /admin/dashboard/stats.
	DashboardStats struct {
		TotalUsers       int64   `json:"total_users"`
		TotalAccounts    int64   `json:"total_accounts"`
		TotalLoans       int64   `json:"total_loans"`
		PendingLoans     int64   `json:"pending_loans"`
		ActiveLoans      int64   `json:"active_loans"`
		TotalDisbursed   float64 `json:"total_disbursed"`
		TotalOutstanding float64 `json:"total_outstanding"`
	}
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidEmail    = errors.New("invalid email address")
	ErrPasswordTooWeak = errors.New("password must be at least 8 characters")
)
