package cli

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

// ingest processes an event stream that was captured earlier, from a file or
// from stdin when the argument is "-".
func (a *App) ingest(ctx *cli.Context) error {
	if ctx.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one events file argument (or - for stdin)")
	}

	cfg, err := a.resolveConfig(ctx)
	if err != nil {
		return err
	}

	path := ctx.Args().First()
	if path == "-" {
		return a.processStream(ctx.Context, cfg, os.Stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open events file: %w", err)
	}
	defer f.Close()

	return a.processStream(ctx.Context, cfg, f)
}
