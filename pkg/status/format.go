package status

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Failure is one item of a batch that did not complete.
type Failure struct {
	Path string
	Err  error
}

// FormatProgress formats a progress line with a two-decimal percentage
func FormatProgress(labels Labels, current, total int) string {
	var percentage float64
	if total > 0 {
		percentage = float64(current) / float64(total) * 100
	}
	return fmt.Sprintf("> %s: %.2f%% (%d/%d) %s %s",
		labels.Action, percentage, current, total, labels.Noun, labels.Past)
}

// FormatSummary formats the closing line of a batch. bytes is omitted when zero.
func FormatSummary(labels Labels, succeeded, total int, bytes int64) string {
	msg := fmt.Sprintf("%d/%d %s successfully %s!", succeeded, total, labels.Noun, labels.Past)
	if bytes > 0 {
		msg += fmt.Sprintf(" (%s reclaimed)", humanize.Bytes(uint64(bytes)))
	}
	return msg
}

// RenderFailures writes a table of failed items to out. Nothing is written
// when failures is empty.
func RenderFailures(out io.Writer, failures []Failure) {
	if len(failures) == 0 {
		return
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(out)
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"File", "Error"})
	for _, f := range failures {
		tw.AppendRow(table.Row{f.Path, f.Err.Error()})
	}
	tw.Render()
}
