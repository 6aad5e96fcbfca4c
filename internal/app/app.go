// internal/app/app.go
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"dualretract/internal/appcore"
	"dualretract/internal/cli"
	"dualretract/internal/clibase"
	"dualretract/internal/cliutil"
	"dualretract/internal/cmdutil"
	"dualretract/internal/engine"
	"dualretract/internal/pipeline"
	"dualretract/internal/profile"
	"dualretract/internal/version"
	"dualretract/internal/writers"
)

const name = "dualretract"

// Exit codes.
const (
	ExitOK       = 0
	ExitRejected = 1 // input rejected or lint findings
	ExitUsage    = 2 // bad flags or profile
	ExitIO       = 3
	ExitCanceled = 130
)

// shell carries per-invocation state shared by the subcommands.
type shell struct {
	stdout, stderr io.Writer
	global         cli.Global
	log            *zap.Logger
}

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	sh := &shell{stdout: stdout, stderr: stderr, log: zap.NewNop()}
	root := sh.rootCommand()
	root.SetArgs(argv)

	err := root.ExecuteContext(parent)
	defer func() { _ = sh.log.Sync() }()

	code := ExitCode(err)
	switch {
	case code == ExitOK, code == ExitCanceled:
	case code == ExitUsage && errors.Is(err, cli.ErrUsage):
		_, _ = fmt.Fprintf(stderr, "error: %v\nRun '%s --help' for usage.\n", err, root.CommandPath())
	default:
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
	}
	return code
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

// ExitCode maps an error to the process exit status. With several errors
// the most severe wins.
func ExitCode(err error) int {
	code := ExitOK
	rank := map[int]int{ExitOK: 0, ExitRejected: 1, ExitUsage: 2, ExitIO: 3, ExitCanceled: 4}
	for _, e := range multierr.Errors(err) {
		if c := exitCode(e); rank[c] > rank[code] {
			code = c
		}
	}
	return code
}

func exitCode(err error) int {
	switch {
	case err == nil, writers.IsBrokenPipe(err):
		return ExitOK
	case errors.Is(err, context.Canceled):
		return ExitCanceled
	case errors.Is(err, cli.ErrUsage),
		errors.Is(err, profile.ErrNotFound),
		errors.Is(err, profile.ErrMissingField),
		errors.Is(err, profile.ErrInvalidField),
		errors.Is(err, pipeline.ErrOutputExists),
		isCobraUsage(err):
		return ExitUsage
	case errors.Is(err, engine.ErrUnknownTool), errors.Is(err, appcore.ErrFindings):
		return ExitRejected
	default:
		return ExitIO
	}
}

// isCobraUsage recognizes command lookup failures, which cobra does not wrap.
func isCobraUsage(err error) bool {
	return strings.HasPrefix(err.Error(), "unknown command ")
}

// usageArgs wraps a cobra positional-args validator so failures map to ErrUsage.
func usageArgs(v cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := v(cmd, args); err != nil {
			return fmt.Errorf("%w: %v", cli.ErrUsage, err)
		}
		return nil
	}
}

func (sh *shell) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   name,
		Short: "Rewrite dual-extrusion gcode for MakerBot-style dual extruders",
		Long: clibase.Long(name, `
Rewrites sliced gcode so the idle extruder is retracted on every toolchange
and primed again before it prints. Machine constants come from a profile.`),
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          usageArgs(cobra.NoArgs),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := sh.global.Validate(); err != nil {
				return err
			}
			sh.log = cmdutil.NewLogger(sh.stderr, sh.global.Verbose, sh.global.Quiet)
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if sh.global.Examples {
				clibase.PrintExamples(cmd.OutOrStdout(), name, clibase.Quickstart)
				return nil
			}
			return cmd.Help()
		},
	}
	root.SetOut(sh.stdout)
	root.SetErr(sh.stderr)
	root.SetVersionTemplate(name + " version {{.Version}}\n")
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", cli.ErrUsage, err)
	})

	cli.RegisterGlobal(root.PersistentFlags(), &sh.global)
	root.Flags().BoolVar(&sh.global.Examples, "examples", false, "print quickstart examples and exit")

	root.AddCommand(
		sh.processCommand(),
		sh.lintCommand(),
		sh.profilesCommand(),
		sh.watchCommand(),
		sh.versionCommand(),
	)
	return root
}

func (sh *shell) processCommand() *cobra.Command {
	var o cli.Process
	cmd := &cobra.Command{
		Use:   "process -p PROFILE [inputs...]",
		Short: "Rewrite gcode files (or stdin) for a dual-extruder machine",
		Long: clibase.Long(name+" process", `
Each input is rewritten in one pass. With a single input the result goes to
--output (stdout by default); with several, each writes <name><suffix> beside
its input. Gzip-compressed inputs are read transparently.`),
		Example: "  dualretract process -p Replicator2X part.gcode -o part.dual.gcode",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Validate(args, cmd.Flags().Changed("output")); err != nil {
				return err
			}
			return appcore.Process(cmd.Context(), cmd.OutOrStdout(), sh.log, appcore.Options{
				Inputs:      o.Inputs,
				Profile:     o.Profile,
				ProfileDirs: sh.global.ProfileDirs,
				Output:      o.Output,
				Suffix:      o.Suffix,
				Format:      o.Format,
				Force:       o.Force,
			})
		},
	}
	cli.RegisterProcess(cmd.Flags(), &o)
	return cmd
}

func (sh *shell) lintCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "lint [inputs...]",
		Short: "Report gcode lines the tokenizer cannot parse",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"-"}
			}
			in, err := expand(args)
			if err != nil {
				return err
			}
			return appcore.Lint(cmd.Context(), cmd.OutOrStdout(), in)
		},
	}
}

func (sh *shell) profilesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List machine profiles",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			names, err := profile.Names(sh.global.ProfileDirs...)
			if err != nil {
				return fmt.Errorf("%w: %v", cli.ErrUsage, err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(names, "\n"))
			return err
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show NAME",
		Short: "Print a resolved profile as JSON",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := profile.Load(args[0], sh.global.ProfileDirs...)
			if err != nil {
				return err
			}
			return writers.WriteJSON(cmd.OutOrStdout(), p)
		},
	})
	return cmd
}

func (sh *shell) watchCommand() *cobra.Command {
	var o cli.Watch
	cmd := &cobra.Command{
		Use:   "watch -p PROFILE DIR",
		Short: "Rewrite gcode files as they appear in a directory",
		Long: clibase.Long(name+" watch", `
Every *.gcode file written to DIR is rewritten once it has been quiet for
--settle. Outputs carry --suffix and are never picked up again. Stop with
Ctrl-C.`),
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Validate(args[0]); err != nil {
				return err
			}
			return appcore.Watch(cmd.Context(), sh.log, appcore.WatchOptions{
				Dir:         o.Dir,
				Profile:     o.Profile,
				ProfileDirs: sh.global.ProfileDirs,
				Suffix:      o.Suffix,
				Format:      o.Format,
				Settle:      o.Settle,
				Force:       o.Force,
			})
		},
	}
	cli.RegisterWatch(cmd.Flags(), &o)
	return cmd
}

func (sh *shell) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", name, version.Version)
			return err
		},
	}
}

// expand is cliutil.ExpandPositionals with usage-error mapping.
func expand(args []string) ([]string, error) {
	in, err := cliutil.ExpandPositionals(args)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cli.ErrUsage, err)
	}
	return in, nil
}
