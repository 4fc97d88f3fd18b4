package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/ghrelease/pkg/domain/model"
	"github.com/m-mizutani/ghrelease/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// Release holds the release to resolve
type Release struct {
	Owner   string
	Package string
	Version string
}

// Flags returns CLI flags for release configuration. Presence is checked by
// Validate rather than Required so the error names the environment variable.
func (c *Release) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "owner",
			Usage:       "Repository owner",
			Destination: &c.Owner,
			Sources:     cli.EnvVars("OWNER"),
		},
		&cli.StringFlag{
			Name:        "package",
			Usage:       "Repository name",
			Destination: &c.Package,
			Sources:     cli.EnvVars("PACKAGE"),
		},
		&cli.StringFlag{
			Name:        "product-version",
			Usage:       "Version used as tag and name of the release",
			Destination: &c.Version,
			Sources:     cli.EnvVars("PRODUCT_VERSION"),
		},
	}
}

// Validate checks the settings in OWNER, PACKAGE, PRODUCT_VERSION order and reports
// the first one missing
func (c *Release) Validate() error {
	required := []struct {
		env   string
		value string
	}{
		{"OWNER", c.Owner},
		{"PACKAGE", c.Package},
		{"PRODUCT_VERSION", c.Version},
	}

	for _, r := range required {
		if r.value == "" {
			return missingEnv(r.env)
		}
	}
	return nil
}

// Target returns the release target
func (c *Release) Target() model.ReleaseTarget {
	return model.ReleaseTarget{
		Owner:   c.Owner,
		Repo:    c.Package,
		Version: c.Version,
	}
}

func missingEnv(name string) error {
	return goerr.New("Required environment variable: "+name+" is missing",
		goerr.V("env", name),
		goerr.T(types.ErrTagConfig),
	)
}
