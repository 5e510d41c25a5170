// clicksms exercises the Clickatell gateway client from the command line.
// Credentials come from the environment, everything else from flags.
//
// The demo operation walks the full message lifecycle: send a message,
// extract its ID, then query status and charge, check route coverage for
// the first recipient, stop the message, and read the account balance.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/spf13/pflag"

	clickatell "github.com/clickatell/clickatell-go"
	"github.com/clickatell/clickatell-go/diag"
	"github.com/clickatell/clickatell-go/transport"
)

// envConfig holds the gateway credentials. Legacy HTTP calls need the first
// three; REST calls need the API key and API ID.
type envConfig struct {
	Username string `env:"CLICKATELL_USER"`
	Password string `env:"CLICKATELL_PASSWORD"`
	APIID    string `env:"CLICKATELL_API_ID"`
	APIKey   string `env:"CLICKATELL_API_KEY"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		apiMode        string
		baseURL        string
		text           string
		to             []string
		messageID      string
		msisdn         string
		timeout        time.Duration
		connectTimeout time.Duration
		verbose        bool
	)

	flagSet := pflag.NewFlagSet("clicksms", pflag.ContinueOnError)
	flagSet.StringVar(&apiMode, "api", "http", "gateway API to use: http or rest")
	flagSet.StringVar(&baseURL, "base-url", clickatell.DefaultBaseURL, "gateway base URL")
	flagSet.StringVar(&text, "text", "", "message text (send, demo)")
	flagSet.StringSliceVar(&to, "to", nil, "recipient MSISDNs (send, demo)")
	flagSet.StringVar(&messageID, "message-id", "", "gateway message ID (status, charge, stop)")
	flagSet.StringVar(&msisdn, "msisdn", "", "number to check (coverage)")
	flagSet.DurationVar(&timeout, "timeout", transport.DefaultTimeout, "whole-request timeout")
	flagSet.DurationVar(&connectTimeout, "connect-timeout", transport.DefaultConnectTimeout, "connection establishment timeout")
	flagSet.BoolVarP(&verbose, "verbose", "v", false, "print transport diagnostics to stderr")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printUsage(flagSet)
			return nil
		}
		return err
	}

	args := flagSet.Args()
	if len(args) != 1 {
		printUsage(flagSet)
		return fmt.Errorf("expected exactly one operation, got %d", len(args))
	}
	op := args[0]

	if verbose {
		diag.Enable()
	}

	// All credential fields are optional at decode time; missing ones are
	// caught by config validation with a clearer message.
	var env envConfig
	_ = envdecode.Decode(&env)

	cfg := clickatell.DefaultConfig().
		WithBaseURL(baseURL).
		WithTimeout(timeout).
		WithConnectTimeout(connectTimeout)
	switch apiMode {
	case "http":
		cfg.WithAPI(clickatell.APIHTTP).
			WithHTTPCredentials(env.Username, env.Password, env.APIID)
	case "rest":
		cfg.WithAPI(clickatell.APIREST).
			WithRESTCredentials(env.APIKey, env.APIID)
	default:
		return fmt.Errorf("unknown API mode %q (want http or rest)", apiMode)
	}

	client, err := clickatell.New(cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	ctx := context.Background()
	switch op {
	case "send":
		return report(client.Send(ctx, text, to))
	case "status":
		return report(client.Status(ctx, messageID))
	case "balance":
		return report(client.Balance(ctx))
	case "charge":
		return report(client.Charge(ctx, messageID))
	case "coverage":
		return report(client.Coverage(ctx, msisdn))
	case "stop":
		return report(client.Stop(ctx, messageID))
	case "demo":
		return demo(ctx, client, cfg.API, text, to)
	default:
		return fmt.Errorf("unknown operation %q", op)
	}
}

func report(response string, err error) error {
	if err != nil {
		return err
	}
	fmt.Println(response)
	return nil
}

// demo runs the full message lifecycle against the live gateway.
func demo(ctx context.Context, client *clickatell.Client, api clickatell.API, text string, to []string) error {
	resp, err := client.Send(ctx, text, to)
	if err != nil {
		return fmt.Errorf("send: %w", err)
	}
	fmt.Printf("send: %s\n", resp)

	id, err := clickatell.ExtractMessageID(api, resp)
	if err != nil {
		return fmt.Errorf("send response carried no message ID: %w", err)
	}
	fmt.Printf("message ID: %s\n", id)

	if resp, err = client.Status(ctx, id); err != nil {
		return fmt.Errorf("status: %w", err)
	}
	fmt.Printf("status: %s\n", resp)

	if resp, err = client.Charge(ctx, id); err != nil {
		return fmt.Errorf("charge: %w", err)
	}
	fmt.Printf("charge: %s\n", resp)

	if resp, err = client.Coverage(ctx, to[0]); err != nil {
		return fmt.Errorf("coverage: %w", err)
	}
	fmt.Printf("coverage: %s\n", resp)

	if resp, err = client.Stop(ctx, id); err != nil {
		return fmt.Errorf("stop: %w", err)
	}
	fmt.Printf("stop: %s\n", resp)

	if resp, err = client.Balance(ctx); err != nil {
		return fmt.Errorf("balance: %w", err)
	}
	fmt.Printf("balance: %s\n", resp)
	return nil
}

func printUsage(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `clicksms is a command line client for the Clickatell SMS gateway.

Usage: clicksms [flags] <operation>

Operations: send, status, balance, charge, coverage, stop, demo

Credentials are read from the environment:
  CLICKATELL_USER, CLICKATELL_PASSWORD, CLICKATELL_API_ID   (http API)
  CLICKATELL_API_KEY, CLICKATELL_API_ID                     (rest API)

Flags:
%s`, flagSet.FlagUsages())
}
