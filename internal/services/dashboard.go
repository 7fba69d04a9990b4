// Package services composes API client calls into the aggregate views
// the front-end renders.
package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/Tosmel2/Monivoza/internal/core"
	"github.com/Tosmel2/Monivoza/internal/loan"
	"github.com/Tosmel2/Monivoza/internal/log"
)

// recentTransactionLimit caps the transaction list on the overview.
const recentTransactionLimit = 5

// BankReader is the slice of the API client the user dashboard needs.
type BankReader interface {
	Accounts(ctx context.Context) ([]core.Account, error)
	Transactions(ctx context.Context) ([]core.Transaction, error)
	Loans(ctx context.Context) ([]core.Loan, error)
}

// AdminReader is the slice of the API client the admin dashboard needs.
type AdminReader interface {
	AdminDashboardStats(ctx context.Context) (core.DashboardStats, error)
	AdminPendingLoans(ctx context.Context) ([]core.Loan, error)
}

// LoanStatus pairs a server-owned loan with figures derived locally by
// the amortization engine.
type LoanStatus struct {
	Loan            core.Loan
	Summary         loan.Summary
	ProgressPercent float64
}

// Overview is the combined user dashboard view.
type Overview struct {
	Accounts           []core.Account
	TotalBalance       float64
	RecentTransactions []core.Transaction
	Loans              []LoanStatus
}

// AdminOverview is the combined admin dashboard view.
type AdminOverview struct {
	Stats        core.DashboardStats
	PendingLoans []core.Loan
}

type DashboardService struct {
	reader BankReader
	admin  AdminReader
	logger *log.Logger
}

func NewDashboardService(reader BankReader, admin AdminReader, logger *log.Logger) *DashboardService {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &DashboardService{
		reader: reader,
		admin:  admin,
		logger: logger.WithComponent(log.ComponentDashboard),
	}
}

// Overview fetches accounts, transactions, and loans concurrently and
// combines them. The three requests are independent; the first failure
// cancels the rest and is returned as-is.
func (s *DashboardService) Overview(ctx context.Context) (Overview, error) {
	var (
		accounts []core.Account
		txns     []core.Transaction
		loans    []core.Loan
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		accounts, err = s.reader.Accounts(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		txns, err = s.reader.Transactions(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		loans, err = s.reader.Loans(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.DebugContext(ctx, "overview fetch failed", log.FieldError, err)
		return Overview{}, err
	}

	overview := Overview{
		Accounts:           accounts,
		RecentTransactions: txns,
	}
	for _, a := range accounts {
		overview.TotalBalance += a.Balance
	}
	if len(overview.RecentTransactions) > recentTransactionLimit {
		overview.RecentTransactions = overview.RecentTransactions[:recentTransactionLimit]
	}
	for _, l := range loans {
		overview.Loans = append(overview.Loans, describeLoan(l))
	}
	return overview, nil
}

// AdminOverview fetches platform stats and the pending-loan queue
// concurrently.
func (s *DashboardService) AdminOverview(ctx context.Context) (AdminOverview, error) {
	var result AdminOverview

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		result.Stats, err = s.admin.AdminDashboardStats(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		result.PendingLoans, err = s.admin.AdminPendingLoans(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return AdminOverview{}, err
	}
	return result, nil
}

// describeLoan recomputes the loan's payment summary from its terms so
// every view shows figures from the same engine, then derives repayment
// progress from the outstanding balance.
func describeLoan(l core.Loan) LoanStatus {
	status := LoanStatus{
		Loan:            l,
		ProgressPercent: loan.Progress(l.PrincipalAmount, l.OutstandingBalance),
	}
	terms := loan.Terms{
		Principal:         l.PrincipalAmount,
		AnnualRatePercent: l.InterestRate,
		TermMonths:        l.TermMonths,
	}
	if terms.Validate() == nil {
		status.Summary = loan.Quote(terms)
	}
	return status
}
