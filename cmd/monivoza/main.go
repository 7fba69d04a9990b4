// Command monivoza is a terminal front-end for the Monivoza banking
// API: authentication, account and loan views, transfers, the loan
// calculator, and the admin queue.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/Tosmel2/Monivoza/internal/api"
	"github.com/Tosmel2/Monivoza/internal/cli"
	"github.com/Tosmel2/Monivoza/internal/core"
	"github.com/Tosmel2/Monivoza/internal/loan"
	applog "github.com/Tosmel2/Monivoza/internal/log"
	"github.com/Tosmel2/Monivoza/internal/services"
)

const usage = `Usage: monivoza <command> [flags]

Commands:
  login       -email -password        authenticate and store the session
  logout                              drop the stored session
  whoami                              show the current user profile
  register    -first -last -email -password
  accounts                            list accounts
  balance     -account                show one account balance
  deposit     -account -amount [-note]
  withdraw    -account -amount [-note]
  transfer    -account -to -amount [-note]
  transactions                        list transactions
  loans                               list loans with repayment progress
  loan        -id                     loan details and repayment history
  repay       -id -amount [-method]   repay an active loan
  apply       -type -principal -rate -term [-purpose] -account
  quote       -principal -rate -term [-schedule]
  dashboard                           combined account/loan overview
  admin       <stats|pending|users|approve|reject|disburse|suspend|activate> [flags]
`

func main() {
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig()
	logger := cli.SetupLogger(cfg)

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	command, args := os.Args[1], os.Args[2:]

	// The quote command is pure math and needs no session or network.
	if command == "quote" {
		runQuote(args)
		return
	}

	store, cleanup, err := cli.OpenSessionStore(cfg, logger)
	if err != nil {
		fatal(err)
	}
	defer cleanup()

	client := api.New(api.Config{
		BaseURL:    cfg.APIBaseURL,
		HTTPClient: &http.Client{Timeout: cfg.APITimeout},
		Store:      store,
		Logger:     logger,
	})
	if err := client.Restore(); err != nil {
		logger.Warn("could not restore session", applog.FieldError, err)
	}

	ctx := context.Background()

	switch command {
	case "login":
		runLogin(ctx, client, args)
	case "logout":
		client.Logout()
		fmt.Println("Logged out.")
	case "whoami":
		runWhoami(ctx, client)
	case "register":
		runRegister(ctx, client, args)
	case "accounts":
		runAccounts(ctx, client)
	case "balance":
		runBalance(ctx, client, args)
	case "deposit", "withdraw":
		runDepositWithdraw(ctx, client, command, args)
	case "transfer":
		runTransfer(ctx, client, args)
	case "transactions":
		runTransactions(ctx, client)
	case "loans":
		runLoans(ctx, client)
	case "loan":
		runLoanDetails(ctx, client, args)
	case "repay":
		runRepay(ctx, client, args)
	case "apply":
		runApply(ctx, client, args)
	case "dashboard":
		runDashboard(ctx, client, logger)
	case "admin":
		runAdmin(ctx, client, args)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}

func parseFlags(name string, args []string, register func(fs *flag.FlagSet)) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	register(fs)
	fs.Parse(args)
}

func runLogin(ctx context.Context, client *api.Client, args []string) {
	var email, password string
	parseFlags("login", args, func(fs *flag.FlagSet) {
		fs.StringVar(&email, "email", "", "account email")
		fs.StringVar(&password, "password", "", "account password")
	})

	result, err := client.Login(ctx, email, password)
	if err != nil {
		fatal(err)
	}
	fmt.Printf("Welcome back, %s.\n", result.User.FullName)
}

func runWhoami(ctx context.Context, client *api.Client) {
	user, err := client.Me(ctx)
	if err != nil {
		fatal(err)
	}
	fmt.Printf("%s <%s> role=%s\n", user.FullName, user.Email, user.Role)
}

func runRegister(ctx context.Context, client *api.Client, args []string) {
	var req api.RegisterRequest
	parseFlags("register", args, func(fs *flag.FlagSet) {
		fs.StringVar(&req.FirstName, "first", "", "first name")
		fs.StringVar(&req.LastName, "last", "", "last name")
		fs.StringVar(&req.Email, "email", "", "email address")
		fs.StringVar(&req.Password, "password", "", "password (min 8 characters)")
	})

	user, err := client.Register(ctx, req)
	if err != nil {
		fatal(err)
	}
	fmt.Printf("Registered %s. You can now log in.\n", user.Email)
}

func runAccounts(ctx context.Context, client *api.Client) {
	accounts, err := client.Accounts(ctx)
	if err != nil {
		fatal(err)
	}
	if len(accounts) == 0 {
		fmt.Println("No accounts yet.")
		return
	}
	for _, a := range accounts {
		fmt.Printf("%-12s %-10s %s\n", a.AccountNumber, a.AccountType, core.FormatUSD(a.Balance))
	}
}

func runBalance(ctx context.Context, client *api.Client, args []string) {
	var accountID int64
	parseFlags("balance", args, func(fs *flag.FlagSet) {
		fs.Int64Var(&accountID, "account", 0, "account id")
	})

	balance, err := client.AccountBalance(ctx, accountID)
	if err != nil {
		fatal(err)
	}
	fmt.Println(core.FormatUSD(balance.Balance))
}

func runDepositWithdraw(ctx context.Context, client *api.Client, command string, args []string) {
	var accountID int64
	var amountStr, note string
	parseFlags(command, args, func(fs *flag.FlagSet) {
		fs.Int64Var(&accountID, "account", 0, "account id")
		fs.StringVar(&amountStr, "amount", "", "amount, e.g. 25.00")
		fs.StringVar(&note, "note", "", "optional description")
	})

	amount, err := parseAmount(amountStr)
	if err != nil {
		fatal(err)
	}

	var txn core.Transaction
	if command == "deposit" {
		txn, err = client.Deposit(ctx, api.DepositRequest{AccountID: accountID, Amount: amount, Description: note})
	} else {
		txn, err = client.Withdraw(ctx, api.WithdrawRequest{AccountID: accountID, Amount: amount, Description: note})
	}
	if err != nil {
		fatal(err)
	}
	fmt.Printf("%s %s (%s)\n", txn.TransactionType, core.FormatUSD(txn.Amount), txn.TransactionRef)
}

func runTransfer(ctx context.Context, client *api.Client, args []string) {
	var accountID int64
	var to, amountStr, note string
	parseFlags("transfer", args, func(fs *flag.FlagSet) {
		fs.Int64Var(&accountID, "account", 0, "source account id")
		fs.StringVar(&to, "to", "", "destination account number")
		fs.StringVar(&amountStr, "amount", "", "amount, e.g. 25.00")
		fs.StringVar(&note, "note", "", "optional description")
	})

	amount, err := parseAmount(amountStr)
	if err != nil {
		fatal(err)
	}
	txn, err := client.Transfer(ctx, api.TransferRequest{
		AccountID:                accountID,
		DestinationAccountNumber: to,
		Amount:                   amount,
		Description:              note,
	})
	if err != nil {
		fatal(err)
	}
	fmt.Printf("TRANSFER %s (%s)\n", core.FormatUSD(txn.Amount), txn.TransactionRef)
}

func runTransactions(ctx context.Context, client *api.Client) {
	txns, err := client.Transactions(ctx)
	if err != nil {
		fatal(err)
	}
	for _, t := range txns {
		fmt.Printf("%-14s %-10s %12s  %s\n", t.TransactionRef, t.TransactionType, core.FormatUSD(t.Amount), t.Status)
	}
}

func runLoans(ctx context.Context, client *api.Client) {
	loans, err := client.Loans(ctx)
	if err != nil {
		fatal(err)
	}
	for _, l := range loans {
		progress := loan.Progress(l.PrincipalAmount, l.OutstandingBalance)
		fmt.Printf("%-10s %-10s principal=%s outstanding=%s paid=%.1f%% status=%s\n",
			l.LoanNumber, l.LoanType,
			core.FormatUSD(l.PrincipalAmount), core.FormatUSD(l.OutstandingBalance),
			progress, l.Status)
	}
}

func runLoanDetails(ctx context.Context, client *api.Client, args []string) {
	var loanID int64
	parseFlags("loan", args, func(fs *flag.FlagSet) {
		fs.Int64Var(&loanID, "id", 0, "loan id")
	})

	l, err := client.Loan(ctx, loanID)
	if err != nil {
		fatal(err)
	}
	fmt.Printf("%s (%s) %s\n", l.LoanNumber, l.LoanType, l.Status)
	fmt.Printf("  principal:   %s\n", core.FormatUSD(l.PrincipalAmount))
	fmt.Printf("  outstanding: %s\n", core.FormatUSD(l.OutstandingBalance))
	fmt.Printf("  paid:        %.1f%%\n", loan.Progress(l.PrincipalAmount, l.OutstandingBalance))

	terms := loan.Terms{Principal: l.PrincipalAmount, AnnualRatePercent: l.InterestRate, TermMonths: l.TermMonths}
	if terms.Validate() == nil {
		summary := loan.Quote(terms)
		fmt.Printf("  monthly payment: %s over %d months at %.2f%%\n",
			core.FormatUSD(summary.MonthlyPayment), l.TermMonths, l.InterestRate)
	}

	repayments, err := client.LoanRepayments(ctx, loanID)
	if err != nil {
		fatal(err)
	}
	for _, r := range repayments {
		fmt.Printf("  repayment %s via %s (%s)\n", core.FormatUSD(r.Amount), r.PaymentMethod, r.Status)
	}
}

func runRepay(ctx context.Context, client *api.Client, args []string) {
	var loanID int64
	var amountStr, method string
	parseFlags("repay", args, func(fs *flag.FlagSet) {
		fs.Int64Var(&loanID, "id", 0, "loan id")
		fs.StringVar(&amountStr, "amount", "", "payment amount")
		fs.StringVar(&method, "method", "DEBIT", "payment method")
	})

	amount, err := parseAmount(amountStr)
	if err != nil {
		fatal(err)
	}
	repayment, err := client.RepayLoan(ctx, loanID, api.RepayLoanRequest{Amount: amount, PaymentMethod: method})
	if err != nil {
		fatal(err)
	}
	fmt.Printf("Paid %s (%s)\n", core.FormatUSD(repayment.Amount), repayment.Status)
}

func runApply(ctx context.Context, client *api.Client, args []string) {
	var req api.ApplyLoanRequest
	parseFlags("apply", args, func(fs *flag.FlagSet) {
		fs.StringVar(&req.LoanType, "type", "PERSONAL", "loan type")
		fs.Float64Var(&req.PrincipalAmount, "principal", 0, "loan amount")
		fs.Float64Var(&req.InterestRate, "rate", 0, "annual interest rate percent")
		fs.IntVar(&req.TermMonths, "term", 0, "term in months")
		fs.StringVar(&req.Purpose, "purpose", "", "loan purpose")
		fs.Int64Var(&req.AccountID, "account", 0, "disbursement account id")
	})

	terms := loan.Terms{Principal: req.PrincipalAmount, AnnualRatePercent: req.InterestRate, TermMonths: req.TermMonths}
	if err := terms.Validate(); err != nil {
		fatal(err)
	}

	// Preview uses the same engine the details view uses.
	summary := loan.Quote(terms)
	fmt.Printf("Monthly payment %s, total interest %s.\n",
		core.FormatUSD(summary.MonthlyPayment), core.FormatUSD(summary.TotalInterest))

	l, err := client.ApplyForLoan(ctx, req)
	if err != nil {
		fatal(err)
	}
	fmt.Printf("Application %s submitted (%s).\n", l.LoanNumber, l.Status)
}

func runQuote(args []string) {
	var terms loan.Terms
	var withSchedule bool
	parseFlags("quote", args, func(fs *flag.FlagSet) {
		fs.Float64Var(&terms.Principal, "principal", 10000, "loan amount")
		fs.Float64Var(&terms.AnnualRatePercent, "rate", 12.5, "annual interest rate percent")
		fs.IntVar(&terms.TermMonths, "term", 24, "term in months")
		fs.BoolVar(&withSchedule, "schedule", false, "print the full amortization schedule")
	})

	if err := terms.Validate(); err != nil {
		fatal(err)
	}
	summary := loan.Quote(terms)
	fmt.Printf("Monthly payment: %s\n", core.FormatUSD(summary.MonthlyPayment))
	fmt.Printf("Total payment:   %s\n", core.FormatUSD(summary.TotalPayment))
	fmt.Printf("Total interest:  %s\n", core.FormatUSD(summary.TotalInterest))

	if withSchedule {
		for _, row := range loan.Schedule(terms) {
			fmt.Printf("%3d  payment=%s interest=%s principal=%s balance=%s\n",
				row.Month, core.FormatUSD(row.Payment), core.FormatUSD(row.Interest),
				core.FormatUSD(row.Principal), core.FormatUSD(row.Balance))
		}
	}
}

func runDashboard(ctx context.Context, client *api.Client, logger *applog.Logger) {
	svc := services.NewDashboardService(client, client, logger)
	overview, err := svc.Overview(ctx)
	if err != nil {
		fatal(err)
	}

	fmt.Printf("Total balance: %s across %d accounts\n", core.FormatUSD(overview.TotalBalance), len(overview.Accounts))
	for _, t := range overview.RecentTransactions {
		fmt.Printf("  %-10s %12s  %s\n", t.TransactionType, core.FormatUSD(t.Amount), t.Status)
	}
	for _, status := range overview.Loans {
		fmt.Printf("  loan %s: %s outstanding, %.1f%% paid\n",
			status.Loan.LoanNumber, core.FormatUSD(status.Loan.OutstandingBalance), status.ProgressPercent)
	}
}

func runAdmin(ctx context.Context, client *api.Client, args []string) {
	if len(args) < 1 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	action, rest := args[0], args[1:]

	switch action {
	case "stats":
		stats, err := client.AdminDashboardStats(ctx)
		if err != nil {
			fatal(err)
		}
		fmt.Printf("users=%d accounts=%d loans=%d pending=%d active=%d disbursed=%s outstanding=%s\n",
			stats.TotalUsers, stats.TotalAccounts, stats.TotalLoans,
			stats.PendingLoans, stats.ActiveLoans,
			core.FormatUSD(stats.TotalDisbursed), core.FormatUSD(stats.TotalOutstanding))
	case "pending":
		loans, err := client.AdminPendingLoans(ctx)
		if err != nil {
			fatal(err)
		}
		for _, l := range loans {
			fmt.Printf("%d %-10s %s for %s over %d months\n",
				l.ID, l.LoanNumber, core.FormatUSD(l.PrincipalAmount), l.CreatedBy, l.TermMonths)
		}
	case "users":
		users, err := client.AdminUsers(ctx)
		if err != nil {
			fatal(err)
		}
		for _, u := range users {
			fmt.Printf("%d %-30s %-10s %s\n", u.ID, u.Email, u.Role, u.Status)
		}
	case "approve", "reject", "disburse":
		id := parseID(rest)
		var l core.Loan
		var err error
		switch action {
		case "approve":
			l, err = client.ApproveLoan(ctx, id)
		case "reject":
			l, err = client.RejectLoan(ctx, id)
		default:
			l, err = client.DisburseLoan(ctx, id)
		}
		if err != nil {
			fatal(err)
		}
		fmt.Printf("Loan %s is now %s.\n", l.LoanNumber, l.Status)
	case "suspend", "activate":
		id := parseID(rest)
		status := core.UserSuspended
		if action == "activate" {
			status = core.UserActive
		}
		user, err := client.UpdateUserStatus(ctx, id, status)
		if err != nil {
			fatal(err)
		}
		fmt.Printf("User %s is now %s.\n", user.Email, user.Status)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}

func parseID(args []string) int64 {
	var id int64
	parseFlags("admin", args, func(fs *flag.FlagSet) {
		fs.Int64Var(&id, "id", 0, "record id")
	})
	return id
}

func parseAmount(s string) (float64, error) {
	cents, err := core.ParseDecimalToCents(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	return float64(cents) / 100, nil
}
