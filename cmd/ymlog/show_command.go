package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"ymlog/internal/event"
	"ymlog/internal/replay"
)

func newShowCommand() *cobra.Command {
	var plain bool
	var levelFlag string

	cmd := &cobra.Command{
		Use:   "show <file>",
		Short: "Render a log stream as a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open log file: %w", err)
			}
			defer file.Close()

			docs, err := replay.Documents(file)
			if err != nil {
				return fmt.Errorf("parse log stream: %w", err)
			}

			entries := filterEntries(replay.Flatten(docs), levelFlag)
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "no records")
				return nil
			}

			if plain || !writerIsTerminal(out) {
				for _, entry := range entries {
					fmt.Fprintln(out, strings.Join(entryRow(entry), "\t"))
				}
				return nil
			}

			fmt.Fprintln(out, renderEntryTable(entries))
			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Force plain tab-separated output")
	cmd.Flags().StringVar(&levelFlag, "level", "", "Only show records at or above this level")
	return cmd
}

// writerIsTerminal reports whether the command's output actually lands on a
// terminal. Redirected or captured writers always get plain output.
func writerIsTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	return ok && isatty.IsTerminal(file.Fd())
}

func filterEntries(entries []replay.Entry, level string) []replay.Entry {
	if strings.TrimSpace(level) == "" {
		return entries
	}
	min := event.ParseLevel(level)
	filtered := entries[:0]
	for _, entry := range entries {
		if entry.Placeholder {
			filtered = append(filtered, entry)
			continue
		}
		if event.ParseLevel(entry.Level) >= min {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}

// entryRow flattens one entry into the DEPTH, LEVEL, TIME, MESSAGE, FIELDS
// columns shared by the plain and table renderers.
func entryRow(entry replay.Entry) []string {
	if entry.Placeholder {
		return []string{
			strconv.Itoa(entry.Depth),
			"scope",
			"",
			scopeCaption(entry.Scope),
			"",
		}
	}
	return []string{
		strconv.Itoa(entry.Depth),
		entry.Level,
		entry.Time,
		indentMessage(entry.Message, entry.Depth),
		formatFields(entry.Fields),
	}
}

func scopeCaption(label string) string {
	if label == "" {
		return "(unnamed scope)"
	}
	return label + "/"
}

// indentMessage keeps the nesting visible in flat table output and folds
// multi-line payloads onto one line.
func indentMessage(msg string, depth int) string {
	msg = strings.ReplaceAll(msg, "\n", " \\n ")
	return strings.Repeat("  ", depth) + msg
}

func formatFields(fields []replay.Field) string {
	if len(fields) == 0 {
		return ""
	}
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		value := field.Value
		if strings.ContainsAny(value, " \t\n") {
			value = strconv.Quote(value)
		}
		parts = append(parts, field.Key+"="+value)
	}
	return strings.Join(parts, " ")
}
