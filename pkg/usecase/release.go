package usecase

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/ghrelease/pkg/domain/interfaces"
	"github.com/m-mizutani/ghrelease/pkg/domain/model"
	"github.com/m-mizutani/ghrelease/pkg/domain/types"
)

// errCodeAlreadyExists is the validation error code GitHub returns with 422 when a
// release for the tag exists
const errCodeAlreadyExists = "already_exists"

type releaseUseCase struct {
	githubClient interfaces.GitHubClient
}

// NewRelease creates a new instance of ReleaseUseCase
func NewRelease(githubClient interfaces.GitHubClient) interfaces.ReleaseUseCase {
	return &releaseUseCase{
		githubClient: githubClient,
	}
}

// Resolve creates a release for target.Version, or finds the existing one when GitHub
// reports it already exists. Returned errors carry a types.ErrTag* tag that decides
// the exit code, plus "status" and "body" values for diagnosis.
func (uc *releaseUseCase) Resolve(ctx context.Context, target model.ReleaseTarget) (*model.ResolvedRelease, error) {
	logger := ctxlog.From(ctx)

	logger.Info("Creating release",
		"repository", target.FullName(),
		"version", target.Version,
	)

	resp, err := uc.githubClient.CreateRelease(ctx, target.Owner, target.Repo, target.Request())
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create release",
			goerr.V("repository", target.FullName()),
			goerr.T(types.ErrTagUnexpectedResponse),
		)
	}

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		// 200 is not documented for create, but some API variants answer with it
		id, err := releaseIDFromCreated(resp)
		if err != nil {
			return nil, err
		}
		logger.Info("Release created", "release_id", id, "version", target.Version)
		return &model.ResolvedRelease{ID: id, Source: model.ReleaseSourceCreated}, nil

	case http.StatusUnprocessableEntity:
		if !hasAlreadyExists(resp.Body) {
			return nil, goerr.New("release was expected to already exist, but the response did not say so",
				goerr.V("status", resp.StatusCode),
				goerr.V("body", string(resp.Body)),
				goerr.T(types.ErrTagUnexpectedConflict),
			)
		}

		logger.Info("Release already exists, looking it up",
			"repository", target.FullName(),
			"version", target.Version,
		)
		return uc.findExisting(ctx, target)

	default:
		return nil, goerr.New("unexpected response status code",
			goerr.V("status", resp.StatusCode),
			goerr.V("body", string(resp.Body)),
			goerr.T(types.ErrTagUnexpectedResponse),
		)
	}
}

// findExisting scans the release list for the first entry tagged target.Version
func (uc *releaseUseCase) findExisting(ctx context.Context, target model.ReleaseTarget) (*model.ResolvedRelease, error) {
	logger := ctxlog.From(ctx)

	resp, err := uc.githubClient.ListReleases(ctx, target.Owner, target.Repo)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list releases",
			goerr.V("repository", target.FullName()),
			goerr.T(types.ErrTagUnexpectedResponse),
		)
	}

	// Status is not checked: a non-list body simply yields no match
	var releases []*github.RepositoryRelease
	if err := json.Unmarshal(resp.Body, &releases); err != nil {
		logger.Warn("Release list is not a JSON array", "status", resp.StatusCode, "error", err)
		releases = nil
	}

	for _, release := range releases {
		if release == nil || release.GetTagName() != target.Version {
			continue
		}

		if release.ID == nil {
			return nil, goerr.New("release ID was not found in the existing GitHub release",
				goerr.V("status", resp.StatusCode),
				goerr.V("body", string(resp.Body)),
				goerr.T(types.ErrTagProtocol),
			)
		}

		logger.Info("Found existing release", "release_id", release.GetID(), "version", target.Version)
		return &model.ResolvedRelease{ID: release.GetID(), Source: model.ReleaseSourceExisting}, nil
	}

	// Same exit code as any unexpected response, but a message of its own
	return nil, goerr.New("release already exists but its tag was not found in the release list",
		goerr.V("version", target.Version),
		goerr.V("release_count", len(releases)),
		goerr.V("status", resp.StatusCode),
		goerr.V("body", string(resp.Body)),
		goerr.T(types.ErrTagUnexpectedResponse),
	)
}

func releaseIDFromCreated(resp *model.APIResponse) (int64, error) {
	var release github.RepositoryRelease
	if err := json.Unmarshal(resp.Body, &release); err != nil {
		return 0, goerr.Wrap(err, "failed to parse created release",
			goerr.V("status", resp.StatusCode),
			goerr.V("body", string(resp.Body)),
			goerr.T(types.ErrTagProtocol),
		)
	}

	if release.ID == nil {
		return 0, goerr.New("release ID was not found for the newly created GitHub release",
			goerr.V("status", resp.StatusCode),
			goerr.V("body", string(resp.Body)),
			goerr.T(types.ErrTagProtocol),
		)
	}

	return release.GetID(), nil
}

func hasAlreadyExists(body []byte) bool {
	var errResp github.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil {
		return false
	}

	for _, e := range errResp.Errors {
		if e.Code == errCodeAlreadyExists {
			return true
		}
	}
	return false
}
