package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/ghrelease/pkg/cli/config"
	"github.com/m-mizutani/ghrelease/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdResolve(rc *runConfig) *cli.Command {
	var (
		releaseCfg config.Release
		githubCfg  config.GitHub
	)

	flags := append(releaseCfg.Flags(), githubCfg.Flags()...)

	return &cli.Command{
		Name:    "resolve",
		Aliases: []string{"r"},
		Usage:   "Create the release for PRODUCT_VERSION, or find it if it exists, and print its ID",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			// All settings are checked before any request is sent
			if err := releaseCfg.Validate(); err != nil {
				return err
			}
			if err := githubCfg.Validate(); err != nil {
				return err
			}

			logger.Debug("Configuration loaded",
				slog.Any("release", releaseCfg),
				slog.Any("github", githubCfg),
			)

			githubClient, err := githubCfg.NewClient(rc.githubOptions...)
			if err != nil {
				return err
			}

			releaseUC := usecase.NewRelease(githubClient)
			result, err := releaseUC.Resolve(ctx, releaseCfg.Target())
			if err != nil {
				return err
			}

			logger.Info("Release resolved",
				"release_id", result.ID,
				"source", result.Source,
			)

			if _, err := fmt.Fprintln(rc.stdout, result.ID); err != nil {
				return goerr.Wrap(err, "failed to write release ID")
			}
			return nil
		},
	}
}
