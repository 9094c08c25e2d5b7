package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"timetable/internal/application/projections"
	domain "timetable/internal/domain/timetable"
)

const (
	periodWidth = 4
	cellWidth   = 14
)

// renderGrid prints the weekly grid with columns aligned by display width,
// so full-width Japanese text lines up with ASCII.
func renderGrid(w io.Writer, g projections.GetGridResult) {
	fmt.Fprintln(w, g.Title)

	sep := gridSeparator(len(g.DayLabels))
	fmt.Fprintln(w, sep)

	header := make([]string, len(g.DayLabels))
	copy(header, g.DayLabels)
	fmt.Fprintln(w, gridLine("", header))
	fmt.Fprintln(w, sep)

	for _, row := range g.Rows {
		subjects := make([]string, len(row.Cells))
		details := make([]string, len(row.Cells))
		for i, c := range row.Cells {
			if !c.Filled {
				continue
			}
			subjects[i] = c.Slot.Subject
			details[i] = slotDetail(c.Slot)
		}
		fmt.Fprintln(w, gridLine(fmt.Sprintf("%d限", row.Period), subjects))
		fmt.Fprintln(w, gridLine("", details))
		fmt.Fprintln(w, sep)
	}

	for _, s := range g.Overflow {
		fmt.Fprintf(w, "%s: %s\n", s.Cell().Label(), s.Subject)
	}
	fmt.Fprintf(w, "登録コマ数: %d\n", g.SlotCount)
}

func gridSeparator(columns int) string {
	var b strings.Builder
	b.WriteString("+" + strings.Repeat("-", periodWidth+2))
	for range columns {
		b.WriteString("+" + strings.Repeat("-", cellWidth+2))
	}
	b.WriteString("+")
	return b.String()
}

func gridLine(first string, cells []string) string {
	var b strings.Builder
	b.WriteString("| " + fit(first, periodWidth) + " ")
	for _, c := range cells {
		b.WriteString("| " + fit(c, cellWidth) + " ")
	}
	b.WriteString("|")
	return b.String()
}

// fit truncates s to width display columns and pads it to exactly width.
func fit(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width, "~"), width)
}

// slotDetail is the second grid line of a filled cell: room, else teacher.
func slotDetail(s domain.TimeSlot) string {
	if s.Room != "" {
		return s.Room
	}
	return s.Teacher
}

// renderSlot prints every set field of one slot.
func renderSlot(w io.Writer, title string, s domain.TimeSlot) {
	fmt.Fprintf(w, "%s (%s)\n", s.Cell().Label(), title)
	fmt.Fprintf(w, "  科目: %s\n", s.Subject)
	if s.Teacher != "" {
		fmt.Fprintf(w, "  教員: %s\n", s.Teacher)
	}
	if s.Room != "" {
		fmt.Fprintf(w, "  教室: %s\n", s.Room)
	}
	if s.Color != domain.NoColor {
		fmt.Fprintf(w, "  色:   %s\n", s.Color.Label())
	}
	if s.Memo != "" {
		fmt.Fprintf(w, "  メモ: %s\n", s.Memo)
	}
}
