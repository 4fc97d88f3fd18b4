package interfaces

import (
	"context"

	"github.com/m-mizutani/ghrelease/pkg/domain/model"
)

// GitHubClient defines the release endpoints used by the resolver. Any HTTP response
// is returned as *model.APIResponse whatever its status; error is reserved for
// failures where no response was received.
type GitHubClient interface {
	// CreateRelease sends POST /repos/{owner}/{repo}/releases
	CreateRelease(ctx context.Context, owner, repo string, req *model.ReleaseRequest) (*model.APIResponse, error)

	// ListReleases sends GET /repos/{owner}/{repo}/releases (first page only)
	ListReleases(ctx context.Context, owner, repo string) (*model.APIResponse, error)
}
