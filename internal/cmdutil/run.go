package cmdutil

import (
	"context"

	"go.uber.org/multierr"
)

// RunInputs calls fn for each input in order. A failing input does not stop
// the others; all errors are returned together. Cancellation stops the loop.
func RunInputs(ctx context.Context, inputs []string, fn func(context.Context, string) error) error {
	var errs error
	for _, in := range inputs {
		if err := ctx.Err(); err != nil {
			return multierr.Append(errs, err)
		}
		if err := fn(ctx, in); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}
