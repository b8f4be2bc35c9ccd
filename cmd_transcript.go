package main

import (
	"context"
	"fmt"
	"time"

	"github.com/nijaru/yt-blog/utils"
	"github.com/spf13/cobra"
)

func newTranscriptCommand() *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "transcript URL",
		Short: "Print a video's filtered captions",
		Long: `Transcript runs only the caption stage and prints the plain text, one
sentence per line. No API key is needed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, closer, err := loadCLI(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closer.Close()

			ctx, cancel := withTimeout(cmd, cfg.RequestTimeout)
			defer cancel()

			transcript, err := newPipeline(cfg, log).Transcript(ctx, args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "Transcript extracted! (%d segments)\n", transcript.Lines)
			text := transcript.Text
			if !raw {
				text = utils.FormatText(text)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "print the text as one line")
	return cmd
}

func withTimeout(cmd *cobra.Command, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, timeout)
}
