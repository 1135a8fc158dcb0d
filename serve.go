package stanza

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/stanza/gitrepo"
	"github.com/eringen/stanza/views"
)

// Server is the preview server: it serves the built site from the output
// dir, rebuilds on content changes, and hosts the admin editor.
type Server struct {
	Site *Site
	Echo *echo.Echo
	Addr string

	cache        *NodeCache
	loginLimiter *LoginLimiter
	repo         *gitrepo.Repo
	configPath   string

	buildMu sync.Mutex
}

// NewServer creates a preview server for the given site. configPath is
// watched for config edits; pass "" to skip.
func NewServer(site *Site, addr, configPath string) *Server {
	s := &Server{
		Site:       site,
		Echo:       echo.New(),
		Addr:       addr,
		configPath: configPath,
	}
	s.Echo.HideBanner = true
	s.cache = NewNodeCache(time.Minute, func() ([]Node, error) {
		// The admin lists drafts too.
		return LoadNodes(site.Config.ContentDir, LoadOptions{Drafts: true, Cache: site.Cache})
	})
	return s
}

func (s *Server) adminEnabled() bool {
	return s.Site.Config.AdminPassword != "" && s.Site.Config.SessionSecret != ""
}

// Start builds the site, begins watching for changes, and serves until ctx
// is cancelled.
func (s *Server) Start(ctx context.Context) error {
	if err := s.Site.Build(ctx); err != nil {
		return err
	}

	if repo, err := gitrepo.Open("."); err == nil {
		s.repo = repo
	} else {
		slog.Info("Not inside a git repository, admin saves won't be committed")
	}

	if s.adminEnabled() {
		s.loginLimiter = NewLoginLimiter(5, time.Minute)
		defer s.loginLimiter.Close()
	} else {
		slog.Warn("Admin disabled: set ADMIN_PASSWORD and ADMIN_SESSION_SECRET to enable it")
	}

	watchFiles := []string{}
	if s.configPath != "" {
		watchFiles = append(watchFiles, s.configPath)
	}
	watcher, err := NewWatcher(
		[]string{s.Site.Config.ContentDir, s.Site.Config.StaticDir},
		watchFiles,
		func() { s.Rebuild(context.Background()) },
	)
	if err != nil {
		return err
	}
	if err := watcher.Start(ctx); err != nil {
		return err
	}
	defer watcher.Stop()

	s.setupMiddleware()
	s.setupRoutes()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.Echo.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown", "error", err)
		}
	}()

	slog.Info("Preview server listening", "addr", s.Addr)
	if err := s.Echo.Start(s.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Rebuild reloads the site configuration, re-renders the site, and
// refreshes the admin's node cache. Builds are serialized; errors are
// logged, not fatal, so a broken frontmatter edit doesn't kill the server.
func (s *Server) Rebuild(ctx context.Context) {
	s.buildMu.Lock()
	defer s.buildMu.Unlock()
	if s.configPath != "" {
		cfg, err := LoadConfig(s.configPath)
		if err != nil {
			slog.Error("Config reload failed, keeping the previous config", "path", s.configPath, "error", err)
		} else {
			s.Site.Config = cfg
		}
	}
	if err := s.Site.Build(ctx); err != nil {
		slog.Error("Rebuild failed", "error", err)
		return
	}
	s.cache.Invalidate()
}

func (s *Server) setupRoutes() {
	e := s.Echo
	e.HTTPErrorHandler = s.httpErrorHandler

	if s.adminEnabled() {
		e.GET("/admin/", s.handleAdmin)
		e.POST("/admin/login/", s.handleAdminLogin)
		e.POST("/admin/logout/", handleAdminLogout)
		e.GET("/admin/new/", s.handleAdminNew)
		e.GET("/admin/edit/*", s.handleAdminEdit)
		e.POST("/admin/save/", s.handleAdminSave)
		e.POST("/admin/delete/*", s.handleAdminDelete)
		e.GET("/admin/images/", s.handleImageList)
		e.POST("/admin/images/upload/", s.handleImageUpload)
		e.POST("/admin/images/delete/:filename/", s.handleImageDelete)
	}

	// Everything else is the statically built site.
	e.Static("/", s.Site.Config.OutputDir)
}

func (s *Server) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, views.NotFound(viewConfig(s.Site.Config)))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
	}
	s.Echo.DefaultHTTPErrorHandler(err, c)
}
