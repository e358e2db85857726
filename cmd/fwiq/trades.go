package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GTP-getaipro/FWIQ-sub005/internal/schema"
)

func newTradesCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "trades",
		Short: "List the trade types the schema registry supports",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := schema.Builtin()
			if err != nil {
				return fmt.Errorf("load schema registry: %w", err)
			}
			for _, trade := range registry.Trades() {
				entry, _ := registry.Lookup(trade)
				marker := " "
				if trade == schema.FallbackTrade {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %-20s %s\n", marker, trade, entry.Schema.VoiceProfile.Tone)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "\n* base template used when no trade type resolves")
			return nil
		},
	}
}
