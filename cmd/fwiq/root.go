package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/GTP-getaipro/FWIQ-sub005/internal/logging"
)

type rootOptions struct {
	logLevel string
	jsonLogs bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "fwiq",
		Short:         "Compose email-automation configuration for trade businesses",
		Long:          "fwiq turns a client configuration file into the artifacts the email\nautomation product needs: a reply prompt for the language model and a\nlabel taxonomy with a parent-before-child provisioning order.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().BoolVar(&opts.jsonLogs, "json-logs", false, "emit JSON log lines")

	cmd.AddCommand(newComposeCmd(opts))
	cmd.AddCommand(newTradesCmd(opts))

	return cmd
}

func (o *rootOptions) logger() (*zap.Logger, error) {
	return logging.New(logging.Config{Level: o.logLevel, JSON: o.jsonLogs})
}
