package github

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/ghrelease/pkg/domain/interfaces"
	"github.com/m-mizutani/ghrelease/pkg/domain/model"
)

// DefaultBaseURL is the public GitHub REST API endpoint
const DefaultBaseURL = "https://api.github.com/"

// config holds internal client configuration
type config struct {
	baseURL   string
	transport http.RoundTripper
}

// Option is a functional option for client configuration
type Option func(*config)

// WithBaseURL sets the REST API root, e.g. a GitHub Enterprise "https://host/api/v3/"
func WithBaseURL(baseURL string) Option {
	return func(c *config) {
		c.baseURL = baseURL
	}
}

// WithTransport replaces the client's own transport. It only affects requests sent by
// this client.
func WithTransport(transport http.RoundTripper) Option {
	return func(c *config) {
		c.transport = transport
	}
}

type client struct {
	githubClient *github.Client
}

// NewClient creates a GitHub client authenticated with a personal access token
func NewClient(token string, opts ...Option) (interfaces.GitHubClient, error) {
	if token == "" {
		return nil, goerr.New("GitHub token is empty")
	}

	// Each client owns its transport so settings never leak into http.DefaultTransport
	cfg := &config{
		baseURL:   DefaultBaseURL,
		transport: http.DefaultTransport.(*http.Transport).Clone(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	baseURL, err := url.Parse(cfg.baseURL)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse GitHub API base URL", goerr.V("base_url", cfg.baseURL))
	}
	if !strings.HasSuffix(baseURL.Path, "/") {
		baseURL.Path += "/"
	}

	githubClient := github.NewClient(&http.Client{
		Transport: &tokenTransport{token: token, base: cfg.transport},
	})
	githubClient.BaseURL = baseURL

	return &client{
		githubClient: githubClient,
	}, nil
}

// CreateRelease sends POST /repos/{owner}/{repo}/releases
func (c *client) CreateRelease(ctx context.Context, owner, repo string, req *model.ReleaseRequest) (*model.APIResponse, error) {
	httpReq, err := c.githubClient.NewRequest(http.MethodPost, releasesPath(owner, repo), req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build create release request",
			goerr.V("owner", owner), goerr.V("repo", repo))
	}

	return c.do(ctx, httpReq)
}

// ListReleases sends GET /repos/{owner}/{repo}/releases
func (c *client) ListReleases(ctx context.Context, owner, repo string) (*model.APIResponse, error) {
	httpReq, err := c.githubClient.NewRequest(http.MethodGet, releasesPath(owner, repo), nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build list releases request",
			goerr.V("owner", owner), goerr.V("repo", repo))
	}

	return c.do(ctx, httpReq)
}

// do sends the request and returns status and raw body for any HTTP response.
// go-github reports non-2xx statuses as errors; those still carry the response and
// CheckResponse puts the body back, so it can be read again here.
func (c *client) do(ctx context.Context, req *http.Request) (*model.APIResponse, error) {
	logger := ctxlog.From(ctx)

	// Every call must reach GitHub so the real status and body are reported, even
	// when an earlier response said the rate limit is exhausted
	ctx = context.WithValue(ctx, github.BypassRateLimitCheck, true)

	var buf bytes.Buffer
	resp, err := c.githubClient.Do(ctx, req, &buf)
	if resp == nil {
		return nil, goerr.Wrap(err, "failed to send GitHub API request",
			goerr.V("method", req.Method),
			goerr.V("url", req.URL.String()),
		)
	}

	if err != nil {
		var acceptedErr *github.AcceptedError
		switch {
		case errors.As(err, &acceptedErr):
			buf.Write(acceptedErr.Raw)
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			return nil, goerr.Wrap(err, "failed to read GitHub API response",
				goerr.V("method", req.Method),
				goerr.V("url", req.URL.String()),
				goerr.V("status", resp.StatusCode),
			)
		default:
			if _, readErr := io.Copy(&buf, resp.Body); readErr != nil {
				return nil, goerr.Wrap(readErr, "failed to read GitHub API error response",
					goerr.V("status", resp.StatusCode))
			}
		}
	}

	logger.Debug("GitHub API response",
		"method", req.Method,
		"url", req.URL.String(),
		"status", resp.StatusCode,
		"body_bytes", buf.Len(),
	)

	return &model.APIResponse{
		StatusCode: resp.StatusCode,
		Body:       buf.Bytes(),
	}, nil
}

func releasesPath(owner, repo string) string {
	return fmt.Sprintf("repos/%s/%s/releases", url.PathEscape(owner), url.PathEscape(repo))
}

// tokenTransport sets "Authorization: token <token>" on every request
type tokenTransport struct {
	token string
	base  http.RoundTripper
}

func (t *tokenTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("Authorization", "token "+t.token)
	return t.base.RoundTrip(req)
}
