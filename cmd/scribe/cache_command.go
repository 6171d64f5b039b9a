package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"scribe/internal/transcache"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Transcription cache maintenance",
	}

	cacheCmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove all cached transcription results",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			cache := transcache.New(cfg.Paths.CacheDir, ctx.logger())
			removed, err := cache.Clear()
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d cached transcription(s)\n", removed)
			return nil
		},
	})

	return cacheCmd
}
