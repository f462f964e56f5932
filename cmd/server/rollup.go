package main

import (
	"context"
	"fmt"

	"usage-analytics/internal/aggregators"
	"usage-analytics/internal/app"
	"usage-analytics/internal/models"
	"usage-analytics/internal/shared/configs"
	"usage-analytics/internal/shared/loggers"

	"github.com/spf13/cobra"
)

type rollupOptions struct {
	configPath string
	periodType string
	scope      string
	date       string
}

func newRollupCommand() *cobra.Command {
	opts := rollupOptions{}

	cmd := &cobra.Command{
		Use:   "rollup",
		Short: "Compute one aggregate and exit",
		Long: "Compute the aggregate of the complete period containing --date and store it.\n" +
			"A period that was already computed is reported and left untouched.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRollup(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.configPath, "config", defaultConfigPath, "path to the YAML config file")
	cmd.Flags().StringVar(&opts.periodType, "type", string(models.PeriodDaily), "period type: daily, weekly or monthly")
	cmd.Flags().StringVar(&opts.scope, "scope", string(models.ScopeUsers), "scope: users or sessions")
	cmd.Flags().StringVar(&opts.date, "date", "", "any date in the period, YYYY-MM-DD")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

func runRollup(ctx context.Context, cmd *cobra.Command, opts rollupOptions) error {
	cfg, err := configs.LoadConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Log.Format = loggers.FormatConsole

	application, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize app: %w", err)
	}
	defer func() { _ = application.Close() }()

	result, err := application.Rollup(ctx, aggregators.RollupRequest{
		PeriodType: opts.periodType,
		Scope:      opts.scope,
		Date:       opts.date,
	})
	if aggregators.IsAlreadyComputed(err) {
		cmd.Printf("%s: %v\n", opts.date, err)
		return nil
	}
	if err != nil {
		return err
	}

	cmd.Printf("%s %s [%s, %s] = %d\n",
		result.Group.Name(),
		result.Key,
		result.Start.Format(models.DayLayout),
		result.End.Format(models.DayLayout),
		result.Count)
	return nil
}
