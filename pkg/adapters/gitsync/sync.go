// Package gitsync keeps local checkouts of git template sources using go-git.
package gitsync

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/go-git/go-git/v5"

	"github.com/user/memecli/pkg/ports"
)

// ErrNotFastForward is returned when the remote history diverged from the checkout.
var ErrNotFastForward = errors.New("gitsync: update is not a fast-forward")

// Syncer implements ports.SourceSyncer.
type Syncer struct {
	fs       ports.FileSystem
	progress io.Writer
}

// New creates a Syncer. progress receives git's sideband output and may be nil.
func New(fs ports.FileSystem, progress io.Writer) *Syncer {
	return &Syncer{fs: fs, progress: progress}
}

// Sync clones url into dir when dir is missing or empty; otherwise it pulls
// the checkout's origin, accepting fast-forwards only.
func (s *Syncer) Sync(ctx context.Context, url, dir string) (ports.SyncResult, error) {
	empty, err := s.fs.IsEmptyDir(dir)
	if err != nil {
		return ports.SyncResult{}, fmt.Errorf("inspect %s: %w", dir, err)
	}
	if empty {
		return s.clone(ctx, url, dir)
	}
	return s.pull(ctx, dir)
}

func (s *Syncer) clone(ctx context.Context, url, dir string) (ports.SyncResult, error) {
	if err := s.fs.MkdirAll(dir); err != nil {
		return ports.SyncResult{}, fmt.Errorf("create %s: %w", dir, err)
	}

	repo, err := git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL:      url,
		Progress: s.progress,
	})
	if err != nil {
		return ports.SyncResult{}, fmt.Errorf("clone %s: %w", url, err)
	}
	return ports.SyncResult{Cloned: true, Head: head(repo)}, nil
}

func (s *Syncer) pull(ctx context.Context, dir string) (ports.SyncResult, error) {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		return ports.SyncResult{}, fmt.Errorf("open %s: %w", dir, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return ports.SyncResult{}, fmt.Errorf("worktree %s: %w", dir, err)
	}

	err = wt.PullContext(ctx, &git.PullOptions{
		RemoteName: git.DefaultRemoteName,
		Progress:   s.progress,
	})
	switch {
	case errors.Is(err, git.NoErrAlreadyUpToDate):
		return ports.SyncResult{UpToDate: true, Head: head(repo)}, nil
	case errors.Is(err, git.ErrNonFastForwardUpdate):
		return ports.SyncResult{}, fmt.Errorf("%w: %s", ErrNotFastForward, dir)
	case err != nil:
		return ports.SyncResult{}, fmt.Errorf("pull %s: %w", dir, err)
	}
	return ports.SyncResult{Head: head(repo)}, nil
}

func head(repo *git.Repository) string {
	ref, err := repo.Head()
	if err != nil {
		return ""
	}
	return ref.Hash().String()
}

// Ensure Syncer implements ports.SourceSyncer
var _ ports.SourceSyncer = (*Syncer)(nil)
