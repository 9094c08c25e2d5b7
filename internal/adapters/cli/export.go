package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	storetimetable "timetable/internal/adapters/storage/timetable"
	"timetable/internal/application/projections"
	domain "timetable/internal/domain/timetable"
)

// mdRenderer converts exported Markdown to HTML. Subjects and memos reach it
// with HTML metacharacters backslash-escaped, so they render as entities.
var mdRenderer = goldmark.New(
	goldmark.WithExtensions(extension.Table),
	goldmark.WithRendererOptions(goldmarkHTML.WithHardWraps()),
)

func newExportCommand(opts *rootOptions) *cobra.Command {
	var format, output string
	var all bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the selected timetable as Markdown, HTML or JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tables := opts.session().Repository().Timetables()
			if !all {
				t, ok := opts.session().Peek()
				if !ok {
					t = domain.New(opts.session().Selection().Key())
				}
				tables = domain.Collection{t}
			}

			var buf bytes.Buffer
			if err := exportTimetables(&buf, format, tables); err != nil {
				return err
			}

			if output == "" || output == "-" {
				_, err := cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}
			if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("failed to write export: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%s に書き出しました\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "md", "md, html or json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	cmd.Flags().BoolVar(&all, "all", false, "export every stored timetable")
	return cmd
}

func exportTimetables(w io.Writer, format string, tables domain.Collection) error {
	switch strings.ToLower(format) {
	case "md", "markdown":
		return writeMarkdown(w, tables)
	case "html":
		return writeHTML(w, tables)
	case "json":
		return writeJSON(w, tables)
	}
	return fmt.Errorf("unknown export format %q (want md, html or json)", format)
}

func writeMarkdown(w io.Writer, tables domain.Collection) error {
	var b strings.Builder
	for i, t := range tables {
		if i > 0 {
			b.WriteString("\n")
		}
		grid := projections.QueryGetGrid(projections.GetGridQuery{Key: t.Key()},
			projections.GetGridDeps{Timetables: tables})
		markdownGrid(&b, grid, t)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func markdownGrid(b *strings.Builder, g projections.GetGridResult, t domain.Timetable) {
	fmt.Fprintf(b, "# %s\n\n", g.Title)

	b.WriteString("| 時限 |")
	for _, l := range g.DayLabels {
		b.WriteString(" " + l + " |")
	}
	b.WriteString("\n|---|")
	for range g.DayLabels {
		b.WriteString("---|")
	}
	b.WriteString("\n")

	for _, row := range g.Rows {
		fmt.Fprintf(b, "| %d |", row.Period)
		for _, c := range row.Cells {
			text := ""
			if c.Filled {
				text = c.Slot.Subject
				if d := slotDetail(c.Slot); d != "" {
					text += " (" + d + ")"
				}
			}
			b.WriteString(" " + escapeCell(text) + " |")
		}
		b.WriteString("\n")
	}

	if len(t.Slots) == 0 {
		return
	}
	b.WriteString("\n## 詳細\n\n")
	for _, c := range domain.Cells() {
		if s, ok := t.FindSlot(c.Day, c.Period); ok {
			b.WriteString("- " + escapeInline(slotSummary(s)) + "\n")
		}
	}
	for _, s := range g.Overflow {
		b.WriteString("- " + escapeInline(slotSummary(s)) + "\n")
	}
}

func slotSummary(s domain.TimeSlot) string {
	parts := []string{s.Cell().Label() + " " + s.Subject}
	if s.Teacher != "" {
		parts = append(parts, "教員: "+s.Teacher)
	}
	if s.Room != "" {
		parts = append(parts, "教室: "+s.Room)
	}
	if s.Color != domain.NoColor {
		parts = append(parts, "色: "+s.Color.Label())
	}
	if s.Memo != "" {
		parts = append(parts, "メモ: "+s.Memo)
	}
	return strings.Join(parts, " / ")
}

var (
	cellEscaper = strings.NewReplacer("|", `\|`, "\n", " ", "\\", `\\`, "*", `\*`, "_", `\_`, "`", "\\`",
		"<", `\<`, ">", `\>`, "&", `\&`)
	inlineEscaper = strings.NewReplacer("\n", " ", "\\", `\\`, "*", `\*`, "_", `\_`, "`", "\\`",
		"<", `\<`, ">", `\>`, "&", `\&`)
)

func escapeCell(s string) string {
	return cellEscaper.Replace(s)
}

func escapeInline(s string) string {
	return inlineEscaper.Replace(s)
}

func writeHTML(w io.Writer, tables domain.Collection) error {
	var md bytes.Buffer
	if err := writeMarkdown(&md, tables); err != nil {
		return err
	}
	var body bytes.Buffer
	if err := mdRenderer.Convert(md.Bytes(), &body); err != nil {
		return fmt.Errorf("failed to render html: %w", err)
	}

	title := "時間割"
	if len(tables) == 1 {
		title += " " + tables[0].Key().String()
	}
	_, err := fmt.Fprintf(w, "<!DOCTYPE html>\n<html lang=\"ja\">\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n</head>\n<body>\n%s</body>\n</html>\n",
		html.EscapeString(title), body.String())
	return err
}

func writeJSON(w io.Writer, tables domain.Collection) error {
	payload, err := storetimetable.Encode(tables)
	if err != nil {
		return err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, payload, "", "  "); err != nil {
		return err
	}
	out.WriteString("\n")
	_, err = w.Write(out.Bytes())
	return err
}
