package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"scribe/internal/pipeline"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var modelFlag string
	var outputFlag string
	var languageFlag string
	var workDirFlag string

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:           "scribe <input-video>",
		Short:         "Generate SRT subtitles from a video file",
		Long:          "Scribe extracts the audio track from a video, transcribes it with the whisper CLI, and writes an SRT subtitle file next to the input.",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranscribe(cmd, ctx, pipeline.Request{
				InputPath:  args[0],
				OutputPath: outputFlag,
				Model:      modelFlag,
				Language:   languageFlag,
				WorkDir:    workDirFlag,
			})
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.Flags().StringVarP(&modelFlag, "model", "m", "", "Whisper model name (tiny, base, small, medium, large)")
	rootCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output SRT path (default: input with .srt extension)")
	rootCmd.Flags().StringVarP(&languageFlag, "language", "l", "", "Transcription language (name or ISO 639-1 code)")
	rootCmd.Flags().StringVar(&workDirFlag, "work-dir", "", "Root directory for per-run temporary files")

	rootCmd.AddCommand(newDepsCommand(ctx))
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newHistoryCommand(ctx))
	rootCmd.AddCommand(newCacheCommand(ctx))

	return rootCmd
}

func runTranscribe(cmd *cobra.Command, cmdCtx *commandContext, req pipeline.Request) error {
	cfg, err := cmdCtx.ensureConfig()
	if err != nil {
		return err
	}

	store, err := cmdCtx.openHistory()
	if err != nil {
		return fmt.Errorf("open history store: %w", err)
	}
	if store != nil {
		defer store.Close()
	}

	runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	started := time.Now()
	svc := pipeline.NewService(cfg, cmdCtx.logger(), store)
	result, err := svc.Run(runCtx, req)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Wrote %d subtitle segment(s) to %s\n", result.SegmentCount, result.OutputPath)
	if result.CacheHit {
		fmt.Fprintln(out, "Transcription served from cache")
	}
	fmt.Fprintf(out, "Done in %s\n", time.Since(started).Round(time.Millisecond))
	return nil
}
