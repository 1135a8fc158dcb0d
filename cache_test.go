package stanza

import (
	"errors"
	"testing"
	"time"
)

func TestNodeCacheLoadsOnce(t *testing.T) {
	loads := 0
	c := NewNodeCache(time.Minute, func() ([]Node, error) {
		loads++
		return []Node{{Slug: "/posts/a/"}}, nil
	})

	for i := 0; i < 3; i++ {
		nodes, err := c.Nodes()
		if err != nil {
			t.Fatalf("Nodes: %v", err)
		}
		if len(nodes) != 1 {
			t.Fatalf("got %d nodes", len(nodes))
		}
	}
	if loads != 1 {
		t.Errorf("loader ran %d times, want 1", loads)
	}
}

func TestNodeCacheInvalidate(t *testing.T) {
	loads := 0
	c := NewNodeCache(time.Minute, func() ([]Node, error) {
		loads++
		return []Node{{Slug: "/posts/a/"}}, nil
	})

	if _, err := c.Nodes(); err != nil {
		t.Fatal(err)
	}
	c.Invalidate()
	if _, err := c.Nodes(); err != nil {
		t.Fatal(err)
	}
	if loads != 2 {
		t.Errorf("loader ran %d times, want 2", loads)
	}
}

func TestNodeCacheLoadError(t *testing.T) {
	boom := errors.New("boom")
	c := NewNodeCache(time.Minute, func() ([]Node, error) {
		return nil, boom
	})
	if _, err := c.Nodes(); !errors.Is(err, boom) {
		t.Errorf("err = %v", err)
	}
}

func TestNodeCacheGet(t *testing.T) {
	c := NewNodeCache(time.Minute, func() ([]Node, error) {
		return []Node{
			{Slug: "/posts/a/", Title: "A"},
			{Slug: "/pages/about/", Title: "About"},
		}, nil
	})

	n, err := c.Get("/pages/about/")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if n.Title != "About" {
		t.Errorf("Title = %q", n.Title)
	}

	if _, err := c.Get("/nope/"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v", err)
	}
}
