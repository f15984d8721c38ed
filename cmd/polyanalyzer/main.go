package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/Klaudioz/PolyAnalyzer/clob/types"
	"github.com/Klaudioz/PolyAnalyzer/internal/approval"
	"github.com/Klaudioz/PolyAnalyzer/internal/trading"
	"github.com/Klaudioz/PolyAnalyzer/pkg/config"
	"github.com/Klaudioz/PolyAnalyzer/pkg/logger"
)

const usage = `Usage: polyanalyzer <command> [flags]

Commands:
  approve                       approve USDC and CTF contracts (one-time wallet setup)
  buy   -token <id> -price <p> -size <s>   place a BUY limit order
  sell  -token <id> -price <p> -size <s>   place a SELL limit order
  position -token <id>          current position value in USD
  cancel -order <id>            cancel an open order

Requires the PK environment variable (wallet private key).`

func main() {
	// No .env file is fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("POLYANALYZER_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(logger.Config{Level: cfg.LogLevel, OutputFile: cfg.LogFile, MaxSize: 100, MaxBackups: 3, MaxAge: 7}); err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	ctx := context.Background()
	svc := trading.NewService(cfg)

	var cmdErr error
	switch os.Args[1] {
	case "approve":
		cmdErr = runApprove(ctx, cfg)
	case "buy":
		cmdErr = runOrder(ctx, svc, types.SideBuy, os.Args[2:])
	case "sell":
		cmdErr = runOrder(ctx, svc, types.SideSell, os.Args[2:])
	case "position":
		cmdErr = runPosition(ctx, svc, os.Args[2:])
	case "cancel":
		cmdErr = runCancel(ctx, svc, os.Args[2:])
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	if cmdErr != nil {
		if errors.Is(cmdErr, trading.ErrMissingCredential) {
			fmt.Fprintln(os.Stderr, "Environment variable 'PK' cannot be found")
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", cmdErr)
		}
		os.Exit(1)
	}
}

func runApprove(ctx context.Context, cfg *config.Config) error {
	approver, err := approval.Dial(cfg)
	if err != nil {
		return err
	}
	logger.Infof("Approving contracts: this submits 6 transactions and needs gas in the wallet")
	return approver.ApproveContracts(ctx)
}

func runOrder(ctx context.Context, svc *trading.Service, side types.Side, args []string) error {
	fs := flag.NewFlagSet(string(side), flag.ExitOnError)
	token := fs.String("token", "", "token id of the market outcome")
	price := fs.Float64("price", 0, "limit price in (0, 1)")
	size := fs.Float64("size", 0, "order size")
	fs.Parse(args)
	if *token == "" {
		return errors.New("-token is required")
	}

	orderID, err := svc.PlaceOrder(ctx, *token, side, *price, *size)
	if err != nil {
		return err
	}
	fmt.Printf("Order posted successfully: %s\n", orderID)
	return nil
}

func runPosition(ctx context.Context, svc *trading.Service, args []string) error {
	fs := flag.NewFlagSet("position", flag.ExitOnError)
	token := fs.String("token", "", "token id of the market outcome")
	fs.Parse(args)
	if *token == "" {
		return errors.New("-token is required")
	}

	value, err := svc.GetPosition(ctx, *token)
	if err != nil {
		return err
	}
	fmt.Printf("Position worth: $%.2f\n", value)
	return nil
}

func runCancel(ctx context.Context, svc *trading.Service, args []string) error {
	fs := flag.NewFlagSet("cancel", flag.ExitOnError)
	orderID := fs.String("order", "", "order id to cancel")
	fs.Parse(args)
	if *orderID == "" {
		return errors.New("-order is required")
	}
	return svc.CancelOrder(ctx, *orderID)
}
