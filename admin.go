package stanza

import (
	"context"
	"crypto/subtle"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/stanza/frontmatter"
	"github.com/eringen/stanza/views"
)

func (s *Server) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return Render(c, views.AdminLogin(viewConfig(s.Site.Config), false, CsrfToken(c)))
	}
	return s.renderAdminDashboard(c, c.QueryParam("msg"))
}

func (s *Server) handleAdminLogin(c echo.Context) error {
	ip := c.RealIP()
	if !s.loginLimiter.Check(ip) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(s.Site.Config.AdminPassword)) == 1 {
		if err := setAdminSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	s.loginLimiter.Record(ip)
	return Render(c, views.AdminLogin(viewConfig(s.Site.Config), true, CsrfToken(c)))
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

func (s *Server) handleAdminNew(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	entry := views.AdminEntry{
		Kind: KindPost,
		Date: time.Now().Format("2006-01-02"),
	}
	return Render(c, views.AdminForm(viewConfig(s.Site.Config), entry, CsrfToken(c)))
}

func (s *Server) handleAdminEdit(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	node, err := s.cache.Get("/" + c.Param("*"))
	if err == ErrNotFound {
		return c.NoContent(http.StatusNotFound)
	}
	if err != nil {
		return err
	}
	return Render(c, views.AdminForm(viewConfig(s.Site.Config), adminEntry(node), CsrfToken(c)))
}

func (s *Server) handleAdminSave(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	if err := c.Request().ParseForm(); err != nil {
		return err
	}
	meta, slug, msg := entryFromForm(c)
	if msg != "" {
		return s.renderAdminDashboard(c, msg)
	}
	doc, err := frontmatter.Serialize(meta, []byte(c.FormValue("content")))
	if err != nil {
		return err
	}

	rel := path.Join(kindDir(meta.Template), slug+".md")
	dst := filepath.Join(s.Site.Config.ContentDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(dst, doc, 0o644); err != nil {
		return err
	}

	// A renamed slug leaves the old file behind; drop it.
	if original := c.FormValue("original"); original != "" && original != rel {
		_ = os.Remove(filepath.Join(s.Site.Config.ContentDir, filepath.FromSlash(original)))
		s.forgetRendered(original)
	}
	s.forgetRendered(rel)
	s.afterContentChange(c, "Update "+rel)

	return s.renderAdminDashboard(c, "Saved "+rel)
}

func (s *Server) handleAdminDelete(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	node, err := s.cache.Get("/" + c.Param("*"))
	if err == ErrNotFound {
		return c.NoContent(http.StatusNotFound)
	}
	if err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.Site.Config.ContentDir, filepath.FromSlash(node.File))); err != nil {
		return err
	}
	s.forgetRendered(node.File)
	s.afterContentChange(c, "Delete "+node.File)

	return s.renderAdminDashboard(c, "Deleted "+node.File)
}

func (s *Server) renderAdminDashboard(c echo.Context, msg string) error {
	nodes, err := s.cache.Nodes()
	if err != nil {
		return err
	}
	entries := make([]views.AdminEntry, 0, len(nodes))
	for _, n := range nodes {
		entries = append(entries, adminEntry(n))
	}
	return Render(c, views.AdminDashboard(viewConfig(s.Site.Config), entries, msg, CsrfToken(c)))
}

// afterContentChange commits the edit when running inside a git checkout,
// refreshes the node cache, and rebuilds the site.
func (s *Server) afterContentChange(c echo.Context, message string) {
	if s.repo != nil {
		if err := s.repo.Commit(message, ""); err != nil {
			c.Logger().Errorf("git commit: %v", err)
		}
	}
	s.cache.Invalidate()
	// The request finishes before the rebuild does; don't tie it to the
	// request context.
	go s.Rebuild(context.Background())
}

func (s *Server) forgetRendered(rel string) {
	if s.Site.Cache == nil {
		return
	}
	if err := s.Site.Cache.Forget(rel); err != nil {
		// Worst case a stale entry lingers until the hash changes.
		return
	}
}

// entryFromForm maps the edit form onto frontmatter metadata plus the file
// slug. A non-empty msg is a validation error to show on the dashboard.
func entryFromForm(c echo.Context) (meta frontmatter.Meta, slug, msg string) {
	title := strings.TrimSpace(c.FormValue("title"))
	slug = Slugify(strings.TrimSpace(c.FormValue("slug")))
	if slug == "" {
		slug = Slugify(title)
	}
	if slug == "" {
		return meta, "", "Slug is required. Add a title or slug."
	}
	date := strings.TrimSpace(c.FormValue("date"))
	if date != "" {
		if _, ok := nodeTime(date); !ok {
			return meta, "", "Invalid date format. Use YYYY-MM-DD."
		}
	}
	kind := c.FormValue("kind")
	if kind != KindPost && kind != KindPage {
		kind = KindPost
	}
	tags := strings.Split(c.FormValue("tags"), ",")
	for i := range tags {
		tags[i] = strings.TrimSpace(tags[i])
	}
	meta = frontmatter.Meta{
		Template:    kind,
		Title:       title,
		Date:        date,
		Tags:        FilterEmpty(tags),
		MainTag:     strings.TrimSpace(c.FormValue("mainTag")),
		Description: strings.TrimSpace(c.FormValue("description")),
		SocialImage: strings.TrimSpace(c.FormValue("socialImage")),
		Draft:       c.FormValue("draft") != "",
	}
	return meta, slug, ""
}

func adminEntry(n Node) views.AdminEntry {
	return views.AdminEntry{
		Slug:        n.Slug,
		File:        n.File,
		Kind:        n.Kind,
		Title:       n.Title,
		Date:        n.Date,
		Tags:        strings.Join(n.Tags, ", "),
		MainTag:     n.MainTag,
		Description: n.Description,
		SocialImage: n.SocialImage,
		Draft:       n.Draft,
		Body:        n.Body,
	}
}

// kindDir maps a template kind to its content subdirectory.
func kindDir(kind string) string {
	if kind == KindPage {
		return "pages"
	}
	return "posts"
}
