package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"stakehub/internal/app"
	"stakehub/internal/config"
	"stakehub/internal/logging"
	"stakehub/internal/service"
)

var (
	username string
	limit    int
	schedule string
)

var rootCmd = &cobra.Command{
	Use:   "insights",
	Short: "Fill missing AI insights and engagement summaries",
	Long: `Generate AI insights for stakeholders that have none, and summaries for
completed engagements that were never summarized.

Without a Gemini API key the command writes deterministic mock text so
demo accounts still have content. With --schedule it keeps running and
repeats on the given cron expression instead of exiting after one pass.`,
	RunE: runInsights,
}

func init() {
	rootCmd.Flags().StringVarP(&username, "user", "u", "", "account whose records are processed (defaults to the configured username)")
	rootCmd.Flags().IntVarP(&limit, "limit", "n", 10, "maximum stakeholders per run, 0 for all")
	rootCmd.Flags().StringVar(&schedule, "schedule", "", "cron expression, e.g. \"0 */6 * * *\"")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runInsights(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer log.Sync()

	if username == "" {
		username = cfg.Auth.Username
	}
	if limit < 0 {
		return fmt.Errorf("--limit must not be negative")
	}
	ownerID := service.OwnerID(username)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close(context.Background())

	run := func() error {
		report, err := a.Insights.GenerateInsights(ctx, ownerID, limit)
		if err != nil {
			log.Error("insight run failed", zap.Error(err))
			return err
		}
		// cached dashboards embed full stakeholder records
		if err := a.Dashboards.Invalidate(ctx, ownerID); err != nil {
			log.Warn("dashboard invalidate failed", zap.Error(err))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d stakeholder insights, %d engagement summaries (mock=%t)\n",
			username, report.Stakeholders, report.Engagements, report.Mock)
		return nil
	}

	if schedule == "" {
		return run()
	}

	c := cron.New()
	if _, err := c.AddFunc(schedule, func() { _ = run() }); err != nil {
		return fmt.Errorf("invalid --schedule %q: %w", schedule, err)
	}
	log.Info("insights scheduled", zap.String("schedule", schedule), zap.String("user", username))
	c.Start()

	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}
