package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var errUnterminatedQuote = errors.New("unterminated quote")

func newShellCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Edit interactively; every command is available at the prompt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShell(cmd, opts)
		},
	}
}

// runShell reads one command per line and runs it against the same session,
// so selection changes carry over between lines. Errors are printed and the
// loop continues.
func runShell(cmd *cobra.Command, opts *rootOptions) error {
	in := bufio.NewScanner(cmd.InOrStdin())
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	fmt.Fprintln(out, "時間割シェル: help で一覧、quit で終了")
	for {
		fmt.Fprintf(out, "%s> ", opts.session().Selection())
		if !in.Scan() {
			fmt.Fprintln(out)
			return in.Err()
		}

		args, err := splitLine(in.Text())
		if err != nil {
			printError(errOut, err)
			continue
		}
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "quit", "exit":
			return nil
		case "shell":
			fmt.Fprintln(errOut, "既にシェルの中です")
			continue
		}

		line := newRootCommand(&rootOptions{app: opts.app, inShell: true})
		line.SetArgs(args)
		line.SetIn(cmd.InOrStdin())
		line.SetOut(out)
		line.SetErr(errOut)
		if err := line.ExecuteContext(cmd.Context()); err != nil {
			printError(errOut, err)
		}
	}
}

// splitLine splits a shell line on whitespace. Single or double quotes group
// words; a backslash escapes the next character outside single quotes.
func splitLine(s string) ([]string, error) {
	var (
		args    []string
		cur     strings.Builder
		inWord  bool
		quote   rune
		escaped bool
	)
	for _, r := range s {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == '\\' && quote != '\'':
			escaped = true
			inWord = true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inWord = true
		case r == ' ' || r == '\t' || r == '　':
			if inWord {
				args = append(args, cur.String())
				cur.Reset()
				inWord = false
			}
		default:
			cur.WriteRune(r)
			inWord = true
		}
	}
	if quote != 0 || escaped {
		return nil, errUnterminatedQuote
	}
	if inWord {
		args = append(args, cur.String())
	}
	return args, nil
}
