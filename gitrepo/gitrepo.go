// Package gitrepo commits admin content edits into the site's git checkout
// so every change made through the editor has history.
package gitrepo

import (
	"fmt"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

const (
	defaultAuthorName  = "stanza admin"
	defaultAuthorEmail = "admin@localhost"
)

// Repo wraps a git working tree.
type Repo struct {
	repo *git.Repository
}

// Open locates the repository containing dir, searching parent directories
// the way the git CLI does.
func Open(dir string) (*Repo, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}
	return &Repo{repo: repo}, nil
}

// Commit stages everything and records a commit. An empty author falls back
// to the built-in editor identity. Committing with nothing staged is not an
// error; the commit is skipped.
func (r *Repo) Commit(message, author string) error {
	wt, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("get worktree: %w", err)
	}
	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return fmt.Errorf("stage changes: %w", err)
	}

	status, err := wt.Status()
	if err != nil {
		return fmt.Errorf("worktree status: %w", err)
	}
	if status.IsClean() {
		return nil
	}

	if author == "" {
		author = defaultAuthorName
	}
	_, err = wt.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  author,
			Email: defaultAuthorEmail,
			When:  time.Now(),
		},
	})
	if err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
