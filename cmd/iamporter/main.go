// Command iamporter calls the payment gateway API from a terminal.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/iamporter/iamporter-go/client"
	"github.com/iamporter/iamporter-go/internal/config"
	"github.com/iamporter/iamporter-go/internal/logger"
)

func main() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// rootOptions holds the persistent flags shared by every sub-command.
type rootOptions struct {
	debug   bool
	sandbox bool
	baseURL string
	timeout time.Duration
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:          "iamporter",
		Short:        "iamporter queries, charges and cancels payments through the Iamport REST API",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.Logger = logger.NewConsole(os.Stderr)
			if opts.debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
				log.Debug().Msg("debug logging enabled")
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&opts.debug, "debug", "d", false, "Dump vendor requests and responses")
	rootCmd.PersistentFlags().BoolVar(&opts.sandbox, "sandbox", false, "Use the public test credentials when IAMPORT_API_KEY is unset")
	rootCmd.PersistentFlags().StringVar(&opts.baseURL, "base-url", "", "Override IAMPORT_BASE_URL")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "Deadline for the whole command")

	rootCmd.AddCommand(newTokenCmd(opts))
	rootCmd.AddCommand(newFindCmd(opts))
	rootCmd.AddCommand(newFindAllCmd(opts))
	rootCmd.AddCommand(newListCmd(opts))
	rootCmd.AddCommand(newCancelCmd(opts))
	rootCmd.AddCommand(newPrepareCmd(opts))
	rootCmd.AddCommand(newGetPreparedCmd(opts))
	rootCmd.AddCommand(newPayOnetimeCmd(opts))
	rootCmd.AddCommand(newPayAgainCmd(opts))
	rootCmd.AddCommand(newPayForeignCmd(opts))
	rootCmd.AddCommand(newBillingKeyCmd(opts))

	return rootCmd
}

// newClient builds an SDK client from .env, IAMPORT_* variables and flags.
func (o *rootOptions) newClient() (*client.Client, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}
	cfg, err := client.LoadConfig()
	if err != nil {
		return nil, err
	}
	if o.baseURL != "" {
		cfg.BaseURL = o.baseURL
	}
	if o.debug {
		cfg.Debug = true
	}
	if o.sandbox && cfg.APIKey == "" {
		cfg.APIKey, cfg.APISecret = client.SandboxAPIKey, client.SandboxAPISecret
	}
	return client.NewFromConfig(cfg)
}

// run builds a client, applies the command deadline and closes the client
// once fn returns.
func (o *rootOptions) run(cmd *cobra.Command, fn func(ctx context.Context, c *client.Client) error) error {
	c, err := o.newClient()
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	ctx, cancel := context.WithTimeout(cmd.Context(), o.timeout)
	defer cancel()
	return fn(ctx, c)
}

// printResult writes the vendor payload as indented JSON, or the vendor's
// message when a lookup found nothing.
func printResult[T any](w io.Writer, res *client.Result[T]) error {
	if !res.Found() {
		_, err := fmt.Fprintf(w, "not found: %s\n", res.Message)
		return err
	}
	b, err := json.MarshalIndent(res.Data, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
