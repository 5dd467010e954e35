package ports

import "context"

// SyncResult describes what a source sync did.
type SyncResult struct {
	Cloned   bool
	UpToDate bool
	Head     string
}

// SourceSyncer keeps a local checkout of a remote template repository.
type SourceSyncer interface {
	// Sync clones url into dir when dir is empty, otherwise fast-forwards it.
	Sync(ctx context.Context, url, dir string) (SyncResult, error)
}
