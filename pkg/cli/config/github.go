package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/ghrelease/pkg/domain/interfaces"
	"github.com/m-mizutani/ghrelease/pkg/domain/types"
	githubinfra "github.com/m-mizutani/ghrelease/pkg/infra/github"
	"github.com/urfave/cli/v3"
)

// GitHub holds GitHub API configuration
type GitHub struct {
	Token  string `masq:"secret"`
	APIURL string
}

// Flags returns CLI flags for GitHub configuration
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub token used as 'Authorization: token <value>'",
			Destination: &c.Token,
			Sources:     cli.EnvVars("GITHUB_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "github-api-url",
			Usage:       "GitHub REST API base URL",
			Value:       githubinfra.DefaultBaseURL,
			Destination: &c.APIURL,
			Sources:     cli.EnvVars("GHRELEASE_GITHUB_API_URL"),
		},
	}
}

// Validate checks that the token is set
func (c *GitHub) Validate() error {
	if c.Token == "" {
		return missingEnv("GITHUB_TOKEN")
	}
	return nil
}

// NewClient builds a GitHub client from the configuration
func (c *GitHub) NewClient(opts ...githubinfra.Option) (interfaces.GitHubClient, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	opts = append([]githubinfra.Option{githubinfra.WithBaseURL(c.APIURL)}, opts...)
	client, err := githubinfra.NewClient(c.Token, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create GitHub client", goerr.T(types.ErrTagConfig))
	}
	return client, nil
}
