package gitsync

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/user/memecli/pkg/adapters/osfilesystem"
	"github.com/user/memecli/pkg/mocks"
)

// requireGit skips tests that clone over the local file transport, which
// go-git serves through the git-upload-pack binary.
func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git-upload-pack"); err != nil {
		t.Skip("git-upload-pack not available")
	}
}

func commitFile(t *testing.T, repo *git.Repository, dir, name, content string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(filepath.Join(dir, name)), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := wt.Add(name); err != nil {
		t.Fatal(err)
	}
	hash, err := wt.Commit("add "+name, &git.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.com", When: time.Now()},
	})
	if err != nil {
		t.Fatal(err)
	}
	return hash.String()
}

func TestSyncer_CloneThenUpdate(t *testing.T) {
	requireGit(t)
	ctx := context.Background()

	upstreamDir := t.TempDir()
	upstream, err := git.PlainInit(upstreamDir, false)
	if err != nil {
		t.Fatal(err)
	}
	first := commitFile(t, upstream, upstreamDir, "drake/config.json", `{"text": []}`)

	checkout := filepath.Join(t.TempDir(), "cache", "default")
	s := New(osfilesystem.New(), nil)

	res, err := s.Sync(ctx, upstreamDir, checkout)
	if err != nil {
		t.Fatalf("clone failed: %v", err)
	}
	if !res.Cloned || res.Head != first {
		t.Errorf("unexpected clone result %+v, want head %s", res, first)
	}
	if _, err := os.Stat(filepath.Join(checkout, "drake", "config.json")); err != nil {
		t.Errorf("expected cloned template file: %v", err)
	}

	res, err = s.Sync(ctx, upstreamDir, checkout)
	if err != nil {
		t.Fatalf("second sync failed: %v", err)
	}
	if !res.UpToDate || res.Cloned {
		t.Errorf("expected up-to-date result, got %+v", res)
	}

	second := commitFile(t, upstream, upstreamDir, "doge/config.json", `{"text": []}`)
	res, err = s.Sync(ctx, upstreamDir, checkout)
	if err != nil {
		t.Fatalf("fast-forward failed: %v", err)
	}
	if res.UpToDate || res.Head != second {
		t.Errorf("expected fast-forward to %s, got %+v", second, res)
	}
}

func TestSyncer_InspectError(t *testing.T) {
	fs := mocks.NewFileSystem()
	boom := errors.New("permission denied")
	s := New(&statFailingFS{FileSystem: fs, err: boom}, nil)

	_, err := s.Sync(context.Background(), "https://example.com/x.git", "/cache/x")
	if !errors.Is(err, boom) {
		t.Errorf("expected inspect error, got %v", err)
	}
}

func TestSyncer_OpenNonRepository(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "stray.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	s := New(osfilesystem.New(), nil)
	_, err := s.Sync(context.Background(), "https://example.com/x.git", dir)
	if !errors.Is(err, git.ErrRepositoryNotExists) {
		t.Errorf("expected ErrRepositoryNotExists, got %v", err)
	}
}

type statFailingFS struct {
	*mocks.FileSystem
	err error
}

func (f *statFailingFS) IsEmptyDir(string) (bool, error) {
	return false, f.err
}
