package model

import "fmt"

// ReleaseTarget identifies the release to create or find
type ReleaseTarget struct {
	Owner   string // Repository owner
	Repo    string // Repository name (PACKAGE)
	Version string // Tag and release name (PRODUCT_VERSION)
}

// FullName returns "owner/repo"
func (t ReleaseTarget) FullName() string {
	return fmt.Sprintf("%s/%s", t.Owner, t.Repo)
}

// Request builds the create-release payload for this target
func (t ReleaseTarget) Request() *ReleaseRequest {
	return &ReleaseRequest{
		TagName: t.Version,
		Name:    t.Version,
	}
}

// ReleaseRequest is the body of POST /repos/{owner}/{repo}/releases
type ReleaseRequest struct {
	TagName string `json:"tag_name"`
	Name    string `json:"name"`
}

// ReleaseSource tells how a release ID was obtained
type ReleaseSource string

const (
	ReleaseSourceCreated  ReleaseSource = "created"
	ReleaseSourceExisting ReleaseSource = "existing"
)

// ResolvedRelease is the outcome of a successful resolution
type ResolvedRelease struct {
	ID     int64
	Source ReleaseSource
}
