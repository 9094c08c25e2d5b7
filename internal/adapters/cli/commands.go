package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"timetable/internal/application/orchestrators"
	"timetable/internal/application/projections"
	domain "timetable/internal/domain/timetable"
)

func newShowCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the selected timetable as a weekly grid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			grid := projections.QueryGetGrid(projections.GetGridQuery{
				Key: opts.session().Selection().Key(),
			}, projections.GetGridDeps{Timetables: opts.session().Repository()})
			renderGrid(cmd.OutOrStdout(), grid)
			return nil
		},
	}
}

func newGetCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get DAY PERIOD",
		Short: "Print one cell of the selected timetable",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cell, err := parseCell(args[0], args[1])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			slot, ok := opts.session().Slot(cell.Day, cell.Period)
			if !ok {
				fmt.Fprintf(out, "%s: 空きコマ\n", cell.Label())
				return nil
			}
			renderSlot(out, opts.session().Selection().String(), slot)
			return nil
		},
	}
}

func newSetCommand(opts *rootOptions) *cobra.Command {
	var teacher, room, memo, color string

	cmd := &cobra.Command{
		Use:   "set DAY PERIOD [SUBJECT]",
		Short: "Create or replace the class in one cell",
		Long: "Create or replace the class in one cell. When the cell is already filled,\n" +
			"fields that are not given keep their current value.",
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := orchestrators.SaveSlotInput{Day: args[0], Period: args[1]}
			if cell, err := parseCell(args[0], args[1]); err == nil {
				if cur, ok := opts.session().Slot(cell.Day, cell.Period); ok {
					input.Subject = cur.Subject
					input.Teacher = cur.Teacher
					input.Room = cur.Room
					input.Memo = cur.Memo
					input.Color = string(cur.Color)
				}
			}
			if len(args) == 3 {
				input.Subject = args[2]
			}
			flags := cmd.Flags()
			if flags.Changed("teacher") {
				input.Teacher = teacher
			}
			if flags.Changed("room") {
				input.Room = room
			}
			if flags.Changed("memo") {
				input.Memo = memo
			}
			if flags.Changed("color") {
				input.Color = color
			}

			slot, err := orchestrators.ExecuteSaveSlot(cmd.Context(), input, orchestrators.SaveSlotDeps{Session: opts.session()})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "保存しました: %s %s (%s)\n", slot.Cell().Label(), slot.Subject, opts.session().Selection())
			return nil
		},
	}

	cmd.Flags().StringVar(&teacher, "teacher", "", "teacher name")
	cmd.Flags().StringVar(&room, "room", "", "classroom")
	cmd.Flags().StringVar(&memo, "memo", "", "free-form note")
	cmd.Flags().StringVar(&color, "color", "", "cell colour: "+paletteNames())
	return cmd
}

func newRemoveCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "rm DAY PERIOD",
		Aliases: []string{"delete"},
		Short:   "Clear one cell of the selected timetable",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			removed, err := orchestrators.ExecuteDeleteSlot(cmd.Context(), orchestrators.DeleteSlotInput{
				Day:    args[0],
				Period: args[1],
			}, orchestrators.DeleteSlotDeps{Session: opts.session()})
			if err != nil {
				return err
			}
			cell, _ := parseCell(args[0], args[1])
			if removed {
				fmt.Fprintf(cmd.OutOrStdout(), "削除しました: %s\n", cell.Label())
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "空きコマです: %s\n", cell.Label())
			}
			return nil
		},
	}
}

var errSelectOutsideShell = errors.New("select はシェルの中でのみ使えます。単発のコマンドには --year と --semester を指定してください")

func newSelectCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "select YEAR [SEMESTER]",
		Short: "Switch the selected year and semester (shell only)",
		Long:  "Switch the selected year and semester for the rest of a shell session. The selection is not stored; one-off commands take --year and --semester instead.",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !opts.inShell {
				return errSelectOutsideShell
			}
			input := orchestrators.SelectTimetableInput{Year: args[0]}
			if len(args) == 2 {
				input.Semester = args[1]
			}
			sel, err := orchestrators.ExecuteSelectTimetable(input, orchestrators.SelectTimetableDeps{Session: opts.session()})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "選択中: %s\n", sel)
			return nil
		},
	}
}

func newYearsCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "years",
		Short: "List selectable years",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			renderYears(cmd.OutOrStdout(),
				projections.QueryGetYearOptions(projections.GetYearOptionsDeps{Years: opts.session().Repository()}),
				opts.session().Years(),
				opts.session().Selection().Year)
			return nil
		},
	}
}

func newAddYearCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add-year YEAR",
		Short: "Add a year with empty 前期 and 後期 timetables",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := orchestrators.ExecuteAddYear(cmd.Context(), orchestrators.AddYearInput{Year: args[0]},
				orchestrators.AddYearDeps{Session: opts.session()})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if res.Created {
				fmt.Fprintf(out, "%d年を追加しました (前期・後期)\n", res.Year)
				fmt.Fprintf(out, "選択中: %s\n", opts.session().Selection())
			} else {
				fmt.Fprintf(out, "%d年は既にあります\n", res.Year)
			}
			return nil
		},
	}
}

// parseCell reads a (day, period) address typed on the command line.
func parseCell(day, period string) (domain.Cell, error) {
	d, err := domain.ParseDay(day)
	if err != nil {
		return domain.Cell{}, err
	}
	p, err := strconv.Atoi(strings.TrimSpace(period))
	if err != nil || p < 1 {
		return domain.Cell{}, fmt.Errorf("%w: %q", domain.ErrInvalidPeriod, period)
	}
	return domain.Cell{Day: d, Period: p}, nil
}

func paletteNames() string {
	names := make([]string, 0, len(domain.Palette))
	for _, e := range domain.Palette {
		names = append(names, e.Name)
	}
	return strings.Join(names, "|")
}

func renderYears(w io.Writer, options, stored []int, selected int) {
	have := make(map[int]bool, len(stored))
	for _, y := range stored {
		have[y] = true
	}
	for _, y := range options {
		marker := " "
		if y == selected {
			marker = "*"
		}
		note := ""
		if !have[y] {
			note = " (未作成)"
		}
		fmt.Fprintf(w, "%s %d年%s\n", marker, y, note)
	}
}
