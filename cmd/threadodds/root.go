package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for threadodds.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "threadodds",
		Short: "Betting odds from keyword mentions in forum threads",
		Long: `threadodds downloads 2ch/5ch style bulletin board threads, counts how many
posts mention each keyword group and converts the counts into parimutuel
style betting odds.

Threads are read from their dat file first. When the dat file is missing
the rendered HTML page is fetched instead after a short courtesy delay.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("log-json", false, "Write log records as JSON lines")

	cmd.AddCommand(NewAnalyzeCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
