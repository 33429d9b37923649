package maincmd

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/mna/cellfn/internal/scenario"
	"github.com/mna/cellfn/lang/bindings"
	"github.com/mna/mainer"
	"go.uber.org/zap"
)

func (c *Cmd) List(ctx context.Context, stdio mainer.Stdio, args []string) error {
	set := bindings.New(nil)
	tw := tabwriter.NewWriter(stdio.Stdout, 0, 8, 2, ' ', 0)
	for _, name := range set.Names() {
		b, _ := set.Lookup(name)
		fmt.Fprintf(tw, "%s\t%d\t%s\n", name, b.Entry.Arity, b.Shape)
	}
	return printError(stdio, tw.Flush())
}

func (c *Cmd) Run(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return RunFiles(ctx, stdio, c.logger, args...)
}

// RunFiles runs the scenario files in order, writing their output to
// stdio.Stdout. If there is more than one file, the output of each one is
// preceded by a header line with its name. An invalid scenario is reported to
// stdio.Stderr and does not prevent the next files from running, the first
// such error is returned.
func RunFiles(ctx context.Context, stdio mainer.Stdio, logger *zap.Logger, files ...string) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := scenario.Runner{Stdout: stdio.Stdout, Logger: logger}

	var firstErr error
	for i, file := range files {
		if err := ctx.Err(); err != nil {
			return printError(stdio, err)
		}
		if len(files) > 1 {
			if i > 0 {
				fmt.Fprintln(stdio.Stdout)
			}
			fmt.Fprintf(stdio.Stdout, "# %s\n", file)
		}

		sc, err := scenario.LoadFile(file)
		if err == nil {
			err = r.Run(ctx, sc)
		}
		if err != nil {
			logger.Debug("scenario failed", zap.String("file", file), zap.Error(err))
			printError(stdio, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
