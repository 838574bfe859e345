package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var flags combineFlags

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:   "restitch",
		Short: "Reassemble images from base64-encoded strips",
		Long: `restitch reads text files holding base64-encoded image strips (a JSON
array of strings or one payload per line, optionally with data URL headers),
stacks the strips top to bottom, and writes the combined image.

Without --file it processes every matching file in the input directory;
with --file it combines just that file.`,
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
			return runCombine(cmd, ctx, flags)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.Flags().StringVarP(&flags.input, "input", "i", "", `Directory with strip source files (default "input")`)
	rootCmd.Flags().StringVarP(&flags.output, "output", "o", "", `Directory for combined images (default "output")`)
	rootCmd.Flags().StringVarP(&flags.pattern, "pattern", "p", "", `File glob matched in the input directory (default "*.txt")`)
	rootCmd.Flags().StringVarP(&flags.file, "file", "f", "", "Combine a single file instead of scanning the input directory")

	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))

	return rootCmd
}
