package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"outreach/internal/app"
	"outreach/internal/infrastructure/config"
	"outreach/internal/interfaces/cli"
	"outreach/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:           "outreach",
	Short:         "Generate personalized outreach emails from a contact sheet and send them",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate one email per contact and save them for review",
	RunE:  runGenerate,
}

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send previously generated emails one at a time",
	RunE:  runSend,
}

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "List recent generate and send runs, or show one run",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHistory,
}

var historyLimit int

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", cli.DefaultHistoryLimit, "number of runs to show")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(historyCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func newApp() (*app.App, error) {
	cfg, notice, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	if notice != "" {
		log.Debug().Msg(notice)
	}

	return app.NewApp(cfg, log, os.Stdin, os.Stdout)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	return a.Generate(cmd.Context())
}

func runSend(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	return a.Send(cmd.Context())
}

func runHistory(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	var id string
	if len(args) == 1 {
		id = args[0]
	}
	return a.History(cmd.Context(), id, historyLimit)
}
