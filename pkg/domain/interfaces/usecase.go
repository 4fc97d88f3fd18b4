package interfaces

import (
	"context"

	"github.com/m-mizutani/ghrelease/pkg/domain/model"
)

// ReleaseUseCase resolves the ID of the release for a version tag
type ReleaseUseCase interface {
	// Resolve creates the release, or finds it when it already exists
	Resolve(ctx context.Context, target model.ReleaseTarget) (*model.ResolvedRelease, error)
}
