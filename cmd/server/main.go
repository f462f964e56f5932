package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

const defaultConfigPath = "./configs/configs.yml"

func main() {
	root := &cobra.Command{
		Use:          "usage-analytics",
		Short:        "Usage analytics service: records user activity and rolls it up into daily, weekly and monthly aggregates.",
		SilenceUsage: true,
	}

	root.AddCommand(newServeCommand())
	root.AddCommand(newRollupCommand())
	root.AddCommand(newPostMessageCommand())

	if err := root.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
