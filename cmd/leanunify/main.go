package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	lean "github.com/SCKelemen/lean"
	"github.com/SCKelemen/lean/engine"
)

// Version is this build's version string, mirroring the teacher's cmd/1pl
// convention of a package-level var a release process can override via
// -ldflags.
var Version = "leanunify/0.1"

func main() {
	var verbose bool

	root := &cobra.Command{
		Use:     "leanunify",
		Short:   "Drive the higher-order unification engine from a constraint script",
		Version: Version,
		Run: func(cmd *cobra.Command, args []string) {
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
			runREPL()
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log engine tracing at debug level")

	var steps int
	check := &cobra.Command{
		Use:   "check <script>",
		Short: "Run a constraint script non-interactively and print the first solution",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
			b, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			return runScript(string(b), steps)
		},
	}
	check.Flags().IntVar(&steps, "max-steps", 0, "override unifier.max_steps (0 = engine default)")
	root.AddCommand(check)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runScript(src string, maxSteps int) error {
	s := newSession()
	for _, line := range splitLines(src) {
		if err := s.runLine(line); err != nil {
			return err
		}
	}
	return solveAndPrint(s, maxSteps)
}

func solveAndPrint(s *session, maxSteps int) error {
	var cs []engine.Constraint
	for i := 0; i+1 < len(s.constraints); i += 2 {
		cs = append(cs, engine.EqConstraint(s.constraints[i], s.constraints[i+1], nil))
	}

	var opts []engine.Option
	if maxSteps > 0 {
		opts = append(opts, engine.WithMaxSteps(maxSteps))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sols, ctx := lean.Unify(ctx, toyEnv{}, cs, &counterNames{}, noPlugin{}, nil, toyChecker{}, opts...)
	if !sols.Next() {
		if err := sols.Err(); err != nil {
			return err
		}
		fmt.Println("no solution")
		return nil
	}

	out := map[string]interface{}{}
	_ = sols.Scan(out)
	for name := range s.metas {
		if v, ok := out[name]; ok {
			fmt.Printf("?%s := %v\n", name, v)
		}
	}
	logrus.WithField("request_id", engine.RequestID(ctx)).Debug("check: done")
	return nil
}

func splitLines(src string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			lines = append(lines, src[start:i])
			start = i + 1
		}
	}
	if start < len(src) {
		lines = append(lines, src[start:])
	}
	return lines
}

// runREPL is the interactive counterpart to check: a raw-mode terminal
// reading one statement per line, solving and printing after each blank
// line, the same incremental-accumulate-then-solve shape cmd/1pl used for
// accumulating a multi-line Prolog clause before executing it.
func runREPL() {
	oldState, err := term.MakeRaw(0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enter raw mode, falling back to line mode: %v\n", err)
		runLineMode()
		return
	}
	restore := func() { _ = term.Restore(0, oldState) }
	defer restore()

	t := term.NewTerminal(os.Stdin, "unify> ")
	defer fmt.Print("\r\n")

	s := newSession()
	for {
		line, err := t.ReadLine()
		if err != nil {
			return
		}
		if line == "" {
			if len(s.constraints) > 0 {
				restore()
				if err := solveAndPrint(s, 0); err != nil {
					fmt.Fprintln(os.Stderr, err)
				}
				oldState, _ = term.MakeRaw(0)
				s = newSession()
			}
			continue
		}
		if line == "quit" || line == "exit" {
			return
		}
		if err := s.runLine(line); err != nil {
			fmt.Fprintln(t, err)
		}
	}
}

// runLineMode is the non-raw fallback when stdin isn't a terminal (e.g.
// piped input, or running under a test harness).
func runLineMode() {
	s := newSession()
	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			if len(s.constraints) > 0 {
				if err := solveAndPrint(s, 0); err != nil {
					fmt.Fprintln(os.Stderr, err)
				}
				s = newSession()
			}
			continue
		}
		if line == "quit" || line == "exit" {
			return
		}
		if err := s.runLine(line); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
}
