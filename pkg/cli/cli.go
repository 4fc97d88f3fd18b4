package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/ghrelease/pkg/cli/config"
	"github.com/m-mizutani/ghrelease/pkg/domain/types"
	githubinfra "github.com/m-mizutani/ghrelease/pkg/infra/github"
	"github.com/urfave/cli/v3"
)

// runConfig holds output streams and client settings for one Run
type runConfig struct {
	stdout        io.Writer
	stderr        io.Writer
	githubOptions []githubinfra.Option
}

// Option is a functional option for Run
type Option func(*runConfig)

// WithStdout sets where the release ID is written
func WithStdout(w io.Writer) Option {
	return func(c *runConfig) {
		c.stdout = w
	}
}

// WithStderr sets where logs and failure reports are written
func WithStderr(w io.Writer) Option {
	return func(c *runConfig) {
		c.stderr = w
	}
}

// WithGitHubOptions passes extra options to the GitHub client
func WithGitHubOptions(opts ...githubinfra.Option) Option {
	return func(c *runConfig) {
		c.githubOptions = append(c.githubOptions, opts...)
	}
}

// Run runs the CLI application. The returned error decides the exit code through
// types.ExitCodeOf; a failure report has already been written to stderr.
func Run(ctx context.Context, args []string, opts ...Option) error {
	rc := &runConfig{
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(rc)
	}

	loggerCfg := config.Logger{Output: rc.stderr}
	var logger *slog.Logger

	app := &cli.Command{
		Name:           "ghrelease",
		Usage:          "Create or find a GitHub release and print its ID",
		Version:        types.Version,
		Writer:         rc.stdout,
		ErrWriter:      rc.stderr,
		Flags:          loggerCfg.Flags(),
		DefaultCommand: "resolve",
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			var err error
			logger, err = loggerCfg.Configure()
			if err != nil {
				return nil, err
			}

			logger = logger.With("run_id", uuid.NewString())
			slog.SetDefault(logger)
			ctx = ctxlog.With(ctx, logger)
			return ctx, nil
		},
		Commands: []*cli.Command{
			cmdResolve(rc),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		if logger == nil {
			logger = slog.New(slog.NewTextHandler(rc.stderr, nil))
		}
		logger.Debug("CLI execution failed", slog.Any("error", err))
		writeReport(rc.stderr, err)
		return err
	}

	return nil
}
