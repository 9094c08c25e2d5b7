// Package cli is the command-line and interactive-shell surface of the
// timetable editor.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	storetimetable "timetable/internal/adapters/storage/timetable"
	"timetable/internal/app"
	"timetable/internal/application/orchestrators"
	"timetable/internal/application/session"
	"timetable/internal/config"
)

// rootOptions carries persistent flags and the wired App for one command tree.
type rootOptions struct {
	configPath string
	year       string
	semester   string
	timings    bool

	app     *app.App
	ownsApp bool
	inShell bool
	started time.Time
}

func (o *rootOptions) session() *session.Session {
	return o.app.Session
}

// Execute runs the command line in args and returns the process exit code.
func Execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts := &rootOptions{}
	root := newRootCommand(opts)
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if opts.ownsApp {
		if cerr := opts.app.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	if err != nil {
		printError(stderr, err)
		return 1
	}
	return 0
}

func newRootCommand(opts *rootOptions) *cobra.Command {
	root := &cobra.Command{
		Use:           "timetable",
		Short:         "Weekly class timetable editor",
		Long:          "Edit a weekly class timetable (Mon-Fri, periods 1-7) per academic year and semester.",
		Version:       app.BuildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			opts.reportTimings(cmd.ErrOrStderr())
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default $CONFIG_PATH or "+config.DefaultPath+")")
	flags.StringVar(&opts.year, "year", "", "select academic year before running the command")
	flags.StringVar(&opts.semester, "semester", "", "select semester (前期|後期|1|2) before running the command")
	flags.BoolVar(&opts.timings, "timings", false, "print storage timings after the command")

	root.AddCommand(
		newShowCommand(opts),
		newGetCommand(opts),
		newSetCommand(opts),
		newRemoveCommand(opts),
		newSelectCommand(opts),
		newYearsCommand(opts),
		newAddYearCommand(opts),
		newExportCommand(opts),
		newShellCommand(opts),
	)
	return root
}

// setup loads config and wires the App unless one is already attached,
// then applies --year/--semester.
func (o *rootOptions) setup(cmd *cobra.Command) error {
	if o.app == nil {
		cfg, err := config.Load(o.configPath)
		if err != nil {
			return err
		}
		app.NewLogger(cfg.Log, cmd.ErrOrStderr())

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		o.app = app.New(ctx, cfg, storageObserver(cmd.ErrOrStderr()))
		o.ownsApp = true
	}
	o.started = time.Now()

	if o.year == "" && o.semester == "" {
		return nil
	}
	_, err := orchestrators.ExecuteSelectTimetable(orchestrators.SelectTimetableInput{
		Year:     o.year,
		Semester: o.semester,
	}, orchestrators.SelectTimetableDeps{Session: o.session()})
	return err
}

func (o *rootOptions) reportTimings(w io.Writer) {
	if !o.timings || o.app == nil {
		return
	}
	snap := o.app.Collector.Snapshot(o.started, 5)
	fmt.Fprintf(w, "timings: %d recorded, query p50 %.2fms p95 %.2fms p99 %.2fms\n",
		snap.Total, snap.QueryP50Ms, snap.QueryP95Ms, snap.QueryP99Ms)
	for _, s := range snap.Persistence {
		fmt.Fprintf(w, "  %-16s n=%d avg %.2fms max %.2fms\n", s.Op, s.Count, s.AvgMs, s.MaxMs)
	}
	for _, s := range snap.SlowestQueries {
		fmt.Fprintf(w, "  %-16s n=%d avg %.2fms max %.2fms\n", s.Op, s.Count, s.AvgMs, s.MaxMs)
	}
}

// storageObserver tells the user when their edits are not being kept.
func storageObserver(w io.Writer) storetimetable.Observer {
	return func(o storetimetable.Outcome) {
		switch {
		case o.Op == storetimetable.OpLoad && o.Degraded():
			fmt.Fprintln(w, "注意: 保存先が使えないため、変更は保存されません")
		case o.Op == storetimetable.OpLoad && !o.OK():
			fmt.Fprintln(w, "警告: 保存データを読み込めませんでした。空の時間割で開始します")
		case o.Op == storetimetable.OpSave && o.Status == storetimetable.StatusFailed:
			fmt.Fprintln(w, "警告: 時間割を保存できませんでした")
		}
	}
}

func printError(w io.Writer, err error) {
	var ve *orchestrators.ValidationError
	if errors.As(err, &ve) {
		fmt.Fprintln(w, ve.Error())
		return
	}
	fmt.Fprintf(w, "エラー: %v\n", err)
}
