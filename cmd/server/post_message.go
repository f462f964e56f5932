package main

import (
	"context"
	"fmt"

	"usage-analytics/internal/app"
	"usage-analytics/internal/messages"
	"usage-analytics/internal/shared/configs"
	"usage-analytics/internal/shared/loggers"

	"github.com/spf13/cobra"
)

type postMessageOptions struct {
	configPath string
	request    messages.PostRequest
}

func newPostMessageCommand() *cobra.Command {
	opts := postMessageOptions{}

	cmd := &cobra.Command{
		Use:   "post-message",
		Short: "Add a message to the info feed",
		Long: "Store a message served by GET /info/messages.\n" +
			"Without --channel the message goes to the stable channel.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPostMessage(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.configPath, "config", defaultConfigPath, "path to the YAML config file")
	cmd.Flags().StringVar(&opts.request.Title, "title", "", "message title")
	cmd.Flags().StringVar(&opts.request.Abstract, "abstract", "", "message body")
	cmd.Flags().StringVar(&opts.request.ActionURL, "action-url", "", "URL opened by the call to action")
	cmd.Flags().StringVar(&opts.request.CTA, "cta", "", "call to action label")
	cmd.Flags().StringSliceVar(&opts.request.Target, "target", nil, "platforms the message is shown on")
	cmd.Flags().StringVar(&opts.request.Channel, "channel", "", "release channel, empty for stable")
	cmd.Flags().Int64Var(&opts.request.Time, "time", 0, "publish time in epoch milliseconds, defaults to now")
	for _, name := range []string{"title", "abstract", "action-url", "cta", "target"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

func runPostMessage(ctx context.Context, cmd *cobra.Command, opts postMessageOptions) error {
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

	message, err := application.PostMessage(ctx, opts.request)
	if err != nil {
		return err
	}

	cmd.Printf("posted message %s at %d\n", message.ID, message.Time)
	return nil
}
