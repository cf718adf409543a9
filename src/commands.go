package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/contre95/hotfolder/src/features/config"
	"github.com/contre95/hotfolder/src/features/imageinfo"
	"github.com/contre95/hotfolder/src/infra/engine"
	"github.com/contre95/hotfolder/src/infra/queue"
	"github.com/spf13/cobra"
)

func newHealthCommand(configPath *string) *cobra.Command {
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check that the configured processing engine is reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgManager, err := config.Load(*configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			client, err := engine.FromConfig(cfgManager.Get().Engine, queue.NewInMemoryQueue())
			if err != nil {
				return err
			}
			if closer, ok := client.(io.Closer); ok {
				defer closer.Close()
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			healthy, err := client.Health(ctx)
			if err != nil {
				return fmt.Errorf("%s engine unreachable: %w", client.Name(), err)
			}
			if !healthy {
				return fmt.Errorf("%s engine reported unhealthy", client.Name())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s engine healthy\n", client.Name())
			return nil
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "How long to wait for the engine")
	return cmd
}

func newProbeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "probe <file>",
		Short: "Print dimensions and format of an image file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := imageinfo.Probe(args[0])
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(info)
		},
	}
}
