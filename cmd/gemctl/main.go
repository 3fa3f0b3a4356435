// Command gemctl is the operator CLI: recompute ranks, print the top of the
// leaderboard and inspect a user's holdings against the configured database.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"gemtrade/internal/config"
	"gemtrade/internal/logger"
	"gemtrade/internal/server"
	"gemtrade/internal/services"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(&rankCmd{}, "leaderboard")
	commander.Register(&topCmd{}, "leaderboard")
	commander.Register(&holdingsCmd{}, "portfolio")
	flag.Parse()

	code := commander.Execute(context.Background())
	logger.Sync()
	os.Exit(int(code))
}

// withServices opens the configured store and runs fn against the service graph.
func withServices(ctx context.Context, fn func(ctx context.Context, svc server.Services, cfg *config.Config) error) subcommands.ExitStatus {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	logger.Init(cfg.Env, cfg.LogLevel)

	st, dbManager, err := server.OpenStore(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer dbManager.Close()

	svc := server.NewServices(st, nil, services.DefaultTradeConfig())
	if err := fn(ctx, svc, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// --- rankCmd ---

type rankCmd struct{}

func (*rankCmd) Name() string     { return "rank" }
func (*rankCmd) Synopsis() string { return "recomputes every user's leaderboard rank" }
func (*rankCmd) Usage() string {
	return `gemctl rank

Ranks all users by gem count (ties share a rank) and stores the result.
`
}
func (*rankCmd) SetFlags(*flag.FlagSet) {}

func (*rankCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withServices(ctx, func(ctx context.Context, svc server.Services, _ *config.Config) error {
		entries, err := svc.Ranking.AssignRanks(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Ranked %d users.\n", len(entries))
		return nil
	})
}

// --- topCmd ---

type topCmd struct {
	n int
}

func (*topCmd) Name() string     { return "top" }
func (*topCmd) Synopsis() string { return "prints the users with the most gems" }
func (*topCmd) Usage() string {
	return `gemctl top [-n N]

Prints the top N users ordered by gem count, ties broken by id.
`
}
func (c *topCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.n, "n", 10, "number of users to print (max 100)")
}

func (c *topCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.n <= 0 {
		fmt.Fprintln(os.Stderr, "Error: -n must be greater than zero.")
		return subcommands.ExitUsageError
	}
	return withServices(ctx, func(ctx context.Context, svc server.Services, _ *config.Config) error {
		users, err := svc.Ranking.TopN(ctx, c.n)
		if err != nil {
			return err
		}
		renderTop(os.Stdout, users)
		return nil
	})
}

// --- holdingsCmd ---

type holdingsCmd struct {
	user string
}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "prints a user's holdings and portfolio value" }
func (*holdingsCmd) Usage() string {
	return `gemctl holdings -user <user_id>

Prints each holding with its average cost and current market value.
`
}
func (c *holdingsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.user, "user", "", "the user id")
}

func (c *holdingsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.user == "" {
		fmt.Fprintln(os.Stderr, "Error: -user is required.")
		return subcommands.ExitUsageError
	}
	return withServices(ctx, func(ctx context.Context, svc server.Services, cfg *config.Config) error {
		holdings, err := svc.Portfolios.ListHoldings(ctx, c.user)
		if err != nil {
			return err
		}
		prices := make(map[string]decimal.Decimal, len(holdings))
		for _, h := range holdings {
			asset, err := svc.Assets.GetAsset(ctx, h.AssetID)
			if err != nil {
				return err
			}
			prices[h.AssetID] = asset.Price
		}
		value, err := svc.Portfolios.Value(ctx, c.user)
		if err != nil {
			return err
		}
		return renderHoldings(os.Stdout, holdings, prices, value, cfg.Currency)
	})
}
