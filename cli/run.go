package cli

// This file contains the run command: execute the host test command as a
// child process and process the event stream it writes.

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"al.essio.dev/pkg/shellescape"
	"github.com/urfave/cli/v2"
)

// eventsEnv tells the child's reporter shim where to write its event stream.
const eventsEnv = "SMARTREPORT_EVENTS"

func (a *App) run(ctx *cli.Context) error {
	args := ctx.Args().Slice()
	if len(args) > 0 && args[0] == "--" {
		args = args[1:]
	}
	if len(args) == 0 {
		return fmt.Errorf("no test command given, usage: %s run -- <test command>", AppName)
	}

	cfg, err := a.resolveConfig(ctx)
	if err != nil {
		return err
	}

	eventsDir, err := os.MkdirTemp("", AppName+"-events-*")
	if err != nil {
		return fmt.Errorf("failed to create events directory: %w", err)
	}
	defer os.RemoveAll(eventsDir)
	eventsPath := filepath.Join(eventsDir, "events.jsonl")

	a.logger.Info().
		Str("command", shellescape.QuoteCommand(args)).
		Msg("Running test command")

	cmd := exec.Command(args[0], args[1:]...)
	cmd.Env = append(os.Environ(), eventsEnv+"="+eventsPath)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	exitCode := 0
	if err := cmd.Run(); err != nil {
		// Test failures are expected to return non-zero exit codes
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
			a.logger.Info().
				Int("exit_code", exitCode).
				Msg("Tests completed with failures")
		} else {
			return fmt.Errorf("failed to execute test command: %w", err)
		}
	} else {
		a.logger.Info().Msg("Tests completed successfully")
	}

	f, err := os.Open(eventsPath)
	if err != nil {
		// Reporting is a side channel: surface the problem but keep the
		// child's exit code
		a.logger.Error().Err(err).Msg("Test command wrote no event stream, skipping report")
		return exitCodeError(exitCode)
	}
	defer f.Close()

	if err := a.processStream(ctx.Context, cfg, f); err != nil {
		a.logger.Error().Err(err).Msg("Failed to generate report")
	}
	return exitCodeError(exitCode)
}

// exitCodeError propagates the child's exit code without printing anything
// further.
func exitCodeError(code int) error {
	if code == 0 {
		return nil
	}
	return cli.Exit("", code)
}
