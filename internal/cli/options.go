// internal/cli/options.go
package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"dualretract/internal/cliutil"
	"dualretract/internal/gcodeio"
	"dualretract/internal/watch"
	"dualretract/internal/writers"
)

// ErrUsage marks errors caused by how the command was invoked.
var ErrUsage = errors.New("usage")

// Usagef returns an error wrapping ErrUsage.
func Usagef(format string, a ...any) error {
	return fmt.Errorf("%w: %s", ErrUsage, fmt.Sprintf(format, a...))
}

// DefaultSuffix replaces the extension of each input when outputs are
// written beside their inputs.
const DefaultSuffix = ".dual.gcode"

// Global holds flags shared by every command.
type Global struct {
	Verbose     bool
	Quiet       bool
	ProfileDirs []string
	Examples    bool
}

// RegisterGlobal wires the shared flags onto fs (the root's persistent set).
func RegisterGlobal(fs *pflag.FlagSet, g *Global) {
	fs.BoolVarP(&g.Verbose, "verbose", "v", false, "debug logging")
	fs.BoolVarP(&g.Quiet, "quiet", "q", false, "warnings and errors only")
	fs.StringArrayVar(&g.ProfileDirs, "profiles-dir", nil, "extra directory of machine profiles (repeatable; later wins)")
}

func (g *Global) Validate() error {
	if g.Verbose && g.Quiet {
		return Usagef("--verbose conflicts with --quiet")
	}
	return nil
}

// Process holds the process command's flags and inputs.
type Process struct {
	Profile string
	Output  string
	Suffix  string
	Format  string
	Force   bool

	Inputs []string
}

func RegisterProcess(fs *pflag.FlagSet, o *Process) {
	fs.StringVarP(&o.Profile, "profile", "p", "", "machine profile name [*]")
	fs.StringVarP(&o.Output, "output", "o", gcodeio.Stdin, "output file for a single input, '-' for stdout")
	fs.StringVar(&o.Suffix, "suffix", DefaultSuffix, "output suffix when several inputs are processed")
	fs.StringVar(&o.Format, "format", "gcode", "output format: "+strings.Join(writers.Formats(), " | "))
	fs.BoolVar(&o.Force, "force", false, "overwrite existing output files")
}

// Validate expands globs among args and checks the flag combination.
// outputSet reports whether --output was given explicitly.
func (o *Process) Validate(args []string, outputSet bool) error {
	if o.Profile == "" {
		return Usagef("--profile is required")
	}
	if err := validFormat(o.Format); err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{gcodeio.Stdin}
	}
	in, err := cliutil.ExpandPositionals(args)
	if err != nil {
		return Usagef("%v", err)
	}
	o.Inputs = in
	if len(in) > 1 {
		if outputSet {
			return Usagef("--output cannot be used with %d inputs; outputs are named with --suffix", len(in))
		}
		for _, p := range in {
			if p == gcodeio.Stdin {
				return Usagef("'-' (stdin) cannot be mixed with other inputs")
			}
		}
		if o.Suffix == "" || !strings.Contains(o.Suffix, ".") {
			return Usagef("--suffix %q must contain an extension", o.Suffix)
		}
	}
	return nil
}

// Watch holds the watch command's flags.
type Watch struct {
	Profile string
	Suffix  string
	Format  string
	Settle  time.Duration
	Force   bool

	Dir string
}

func RegisterWatch(fs *pflag.FlagSet, o *Watch) {
	fs.StringVarP(&o.Profile, "profile", "p", "", "machine profile name [*]")
	fs.StringVar(&o.Suffix, "suffix", DefaultSuffix, "suffix of written outputs; such files are never picked up")
	fs.StringVar(&o.Format, "format", "gcode", "output format: "+strings.Join(writers.Formats(), " | "))
	fs.DurationVar(&o.Settle, "settle", watch.DefaultSettle, "quiet time before a file is processed")
	fs.BoolVar(&o.Force, "force", false, "overwrite existing output files")
}

func (o *Watch) Validate(dir string) error {
	if o.Profile == "" {
		return Usagef("--profile is required")
	}
	if err := validFormat(o.Format); err != nil {
		return err
	}
	if o.Settle <= 0 {
		return Usagef("--settle must be > 0")
	}
	if o.Suffix == "" || !strings.Contains(o.Suffix, ".") {
		return Usagef("--suffix %q must contain an extension", o.Suffix)
	}
	o.Dir = dir
	return nil
}

func validFormat(f string) error {
	for _, known := range writers.Formats() {
		if f == known {
			return nil
		}
	}
	return Usagef("invalid --format %q", f)
}
