package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/epeers/networth/config"
	"github.com/epeers/networth/internal/app"
	"github.com/epeers/networth/internal/database"
	"github.com/epeers/networth/internal/handlers"
	"github.com/epeers/networth/internal/services"
	"github.com/google/subcommands"
	log "github.com/sirupsen/logrus"
)

// connect loads configuration and opens the database.
func connect(ctx context.Context) (*config.Config, *database.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log.SetLevel(cfg.LogLevel)
	db, err := database.New(ctx, cfg.PGURL)
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}

type migrateCmd struct{}

func (*migrateCmd) Name() string     { return "migrate" }
func (*migrateCmd) Synopsis() string { return "create the database tables" }
func (*migrateCmd) Usage() string {
	return `networthctl migrate

  Applies the embedded schema. Safe to run repeatedly.
`
}

func (*migrateCmd) SetFlags(f *flag.FlagSet) {}

func (*migrateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, db, err := connect(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type seedCmd struct {
	file  string
	owner int64
}

func (*seedCmd) Name() string     { return "seed" }
func (*seedCmd) Synopsis() string { return "import holdings from a CSV file" }
func (*seedCmd) Usage() string {
	return `networthctl seed -file <holdings.csv> -owner <id>

  Imports every row of the CSV as a holding of the owner. Nothing is stored
  when any row is invalid.
`
}

func (c *seedCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "file", "", "holdings CSV to import")
	f.Int64Var(&c.owner, "owner", 0, "owner id")
}

func (c *seedCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.file == "" || c.owner <= 0 {
		fmt.Fprintln(os.Stderr, "Error: -file and a positive -owner are required")
		return subcommands.ExitUsageError
	}

	in, err := os.Open(c.file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer in.Close()

	reqs, err := handlers.ParseHoldingsCSV(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", c.file, err)
		return subcommands.ExitFailure
	}

	cfg, db, err := connect(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer db.Close()

	svcs := app.NewServices(cfg, db)
	wctx, wc := services.NewWarningContext(ctx)
	holdings, err := svcs.Holdings.ImportHoldings(wctx, c.owner, reqs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	for _, w := range wc.GetWarnings() {
		fmt.Fprintf(os.Stderr, "warning %s: %s\n", w.Code, w.Message)
	}
	fmt.Printf("imported %d holdings for owner %d\n", len(holdings), c.owner)
	return subcommands.ExitSuccess
}

type summaryCmd struct {
	owner int64
	raw   bool
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "print the portfolio summary" }
func (*summaryCmd) Usage() string {
	return `networthctl summary -owner <id> [-raw]

  Values every holding of the owner and prints totals, allocation, liquidity
  and drift from the allocation targets.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.owner, "owner", 0, "owner id")
	f.BoolVar(&c.raw, "raw", false, "print markdown without terminal styling")
}

func (c *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.owner <= 0 {
		fmt.Fprintln(os.Stderr, "Error: a positive -owner is required")
		return subcommands.ExitUsageError
	}

	cfg, db, err := connect(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer db.Close()

	svcs := app.NewServices(cfg, db)
	wctx, wc := services.NewWarningContext(ctx)
	summary, err := svcs.Valuation.Summary(wctx, c.owner)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	// prices are warm now; warnings were already collected above
	rebalance, err := svcs.Valuation.Rebalance(ctx, c.owner)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	md := summaryMarkdown(summary.Rounded(), rebalance.Drifts, wc.GetWarnings())
	if c.raw {
		fmt.Print(md)
		return subcommands.ExitSuccess
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}
