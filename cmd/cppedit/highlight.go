package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iw2rmb/cppedit/buffer"
	"github.com/iw2rmb/cppedit/config"
	"github.com/iw2rmb/cppedit/highlight"
	"github.com/iw2rmb/cppedit/syntax"
)

func newHighlightCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "highlight FILE",
		Short: "Print the highlight spans and block state of every line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}
			return printHighlight(cmd.OutOrStdout(), opts.cfg, string(data))
		},
	}
}

// printHighlight writes one line per row: the 1-based row, the state the row
// ends in, and its spans as category[start,end).
func printHighlight(w io.Writer, cfg config.Config, text string) error {
	eng, err := cfg.Engine()
	if err != nil {
		return fmt.Errorf("highlight rules: %w", err)
	}

	b := buffer.New(text, buffer.Options{})
	rows := make([][]syntax.Span, b.LineCount())
	d := highlight.NewDriver(eng, highlight.WithRenderFunc(func(row int, spans []syntax.Span) {
		rows[row] = spans
	}))
	d.Reset(b)

	for row, spans := range rows {
		parts := make([]string, 0, len(spans))
		for _, sp := range spans {
			parts = append(parts, fmt.Sprintf("%s[%d,%d)", sp.Category, sp.Start, sp.End()))
		}
		if _, err := fmt.Fprintf(w, "%d\t%s\t%s\n", row+1, d.State(row), strings.Join(parts, " ")); err != nil {
			return err
		}
	}
	return nil
}
