package gitrepo

import (
	"os"
	"path/filepath"
	"testing"

	git "github.com/go-git/go-git/v5"
)

func initRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if _, err := git.PlainInit(dir, false); err != nil {
		t.Fatalf("init repo: %v", err)
	}
	return dir
}

func TestOpenMissingRepo(t *testing.T) {
	if _, err := Open(t.TempDir()); err == nil {
		t.Error("expected error opening a non-repository")
	}
}

func TestCommit(t *testing.T) {
	dir := initRepo(t)
	if err := os.WriteFile(filepath.Join(dir, "posts.md"), []byte("hello\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := r.Commit("Add posts.md", ""); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	head, err := r.repo.Head()
	if err != nil {
		t.Fatalf("Head: %v", err)
	}
	commit, err := r.repo.CommitObject(head.Hash())
	if err != nil {
		t.Fatalf("CommitObject: %v", err)
	}
	if commit.Message != "Add posts.md" {
		t.Errorf("message = %q", commit.Message)
	}
	if commit.Author.Name != defaultAuthorName {
		t.Errorf("author = %q", commit.Author.Name)
	}
}

func TestCommitCleanTreeIsNoop(t *testing.T) {
	dir := initRepo(t)
	if err := os.WriteFile(filepath.Join(dir, "a.md"), []byte("a\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	r, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := r.Commit("first", "editor"); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	head, _ := r.repo.Head()

	// Nothing changed; no new commit should be created.
	if err := r.Commit("second", "editor"); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	after, _ := r.repo.Head()
	if head.Hash() != after.Hash() {
		t.Error("empty commit created")
	}
}

func TestCommitCustomAuthor(t *testing.T) {
	dir := initRepo(t)
	if err := os.WriteFile(filepath.Join(dir, "b.md"), []byte("b\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	r, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := r.Commit("msg", "Jane"); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	head, _ := r.repo.Head()
	commit, _ := r.repo.CommitObject(head.Hash())
	if commit.Author.Name != "Jane" {
		t.Errorf("author = %q", commit.Author.Name)
	}
}
