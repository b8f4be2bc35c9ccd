package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/nijaru/yt-blog/pipeline"
	"github.com/nijaru/yt-blog/utils"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const defaultOutput = "transcript_blog.md"

func newGenerateCommand() *cobra.Command {
	var (
		title  string
		out    string
		render bool
	)

	cmd := &cobra.Command{
		Use:   "generate URL",
		Short: "Generate a blog post from a video's captions",
		Long: `Generate fetches the video's English captions, asks the model for a blog
post and writes the markdown to --out (default transcript_blog.md).
Use --out - to print it instead, and --render to print it styled.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, closer, err := loadCLI(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closer.Close()

			ctx, cancel := withTimeout(cmd, cfg.RequestTimeout)
			defer cancel()

			result, err := newPipeline(cfg, log).Run(ctx, pipeline.Request{URL: args[0], Title: title})
			if err != nil {
				return err
			}

			stderr := cmd.ErrOrStderr()
			fmt.Fprintf(stderr, "Transcript extracted! (%d segments)\n", result.Transcript.Lines)
			fmt.Fprintf(stderr, "Blog: %s words | Transcript: %s words\n",
				utils.FormatCount(utils.WordCount(result.Draft.Markdown)),
				utils.FormatCount(utils.WordCount(result.Transcript.Text)))

			if render {
				return renderMarkdown(cmd.OutOrStdout(), result.Draft.Markdown)
			}
			return writeMarkdown(cmd.OutOrStdout(), stderr, out, result.Draft.Markdown)
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", `video title used in the prompt (default "YouTube Video")`)
	cmd.Flags().StringVarP(&out, "out", "o", defaultOutput, `output file, "-" for stdout`)
	cmd.Flags().BoolVar(&render, "render", false, "print the blog rendered for the terminal instead of writing a file")
	return cmd
}

func writeMarkdown(stdout, stderr io.Writer, path, markdown string) error {
	if path == "-" {
		_, err := fmt.Fprintln(stdout, markdown)
		return err
	}
	if err := os.WriteFile(path, []byte(markdown+"\n"), 0o644); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	fmt.Fprintf(stderr, "Blog written to %s\n", path)
	return nil
}

func renderMarkdown(w io.Writer, markdown string) error {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return errors.Wrap(err, "creating terminal renderer")
	}

	rendered, err := r.Render(markdown)
	if err != nil {
		return errors.Wrap(err, "rendering markdown")
	}
	_, err = io.WriteString(w, rendered)
	return err
}
