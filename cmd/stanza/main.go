package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/eringen/stanza"
	"github.com/eringen/stanza/frontmatter"
	"github.com/eringen/stanza/scaffold"
)

// version is set at build time via ldflags.
var version = "dev"

var CLI struct {
	Config  string `short:"c" help:"Site configuration file" default:"config.yml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Build struct {
		Output string `short:"o" help:"Override the configured output directory"`
		Drafts bool   `help:"Include entries marked draft: true"`
	} `cmd:"" help:"Build the static site"`

	Serve struct {
		Addr   string `help:"Listen address" default:":3000"`
		Drafts bool   `help:"Include entries marked draft: true"`
	} `cmd:"" help:"Build the site, watch for changes, and serve it with the admin editor"`

	New struct {
		Kind  string `arg:"" enum:"post,page" help:"Content kind (post or page)"`
		Title string `arg:"" help:"Entry title"`
	} `cmd:"" help:"Create a content file with frontmatter filled in"`

	Init struct {
		Dir   string `arg:"" optional:"" default:"." help:"Target directory"`
		Force bool   `help:"Overwrite existing files"`
	} `cmd:"" help:"Scaffold a new site in the target directory"`

	Version struct{} `cmd:"" help:"Print the stanza version"`
}

func main() {
	// A missing .env is the common case, not an error.
	_ = godotenv.Load()

	ctx := kong.Parse(&CLI)

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})))

	var err error
	switch ctx.Command() {
	case "build":
		err = runBuild()
	case "serve":
		err = runServe()
	case "new <kind> <title>":
		err = runNew(CLI.New.Kind, CLI.New.Title)
	case "init", "init <dir>":
		err = runInit(CLI.Init.Dir, CLI.Init.Force)
	case "version":
		fmt.Printf("stanza %s\n", version)
	}
	if err != nil {
		slog.Error("Command failed", "command", ctx.Command(), "error", err)
		os.Exit(1)
	}
}

func loadSite(drafts bool) (*stanza.Site, error) {
	cfg, err := stanza.LoadConfig(CLI.Config)
	if err != nil {
		return nil, err
	}

	opts := []stanza.Option{stanza.WithDrafts(drafts)}
	cache, err := stanza.OpenBuildCache(cfg.CachePath)
	if err != nil {
		slog.Warn("Render cache unavailable, building without it", "path", cfg.CachePath, "error", err)
	} else {
		opts = append(opts, stanza.WithCache(cache))
	}
	return stanza.New(cfg, opts...), nil
}

func runBuild() error {
	site, err := loadSite(CLI.Build.Drafts)
	if err != nil {
		return err
	}
	if CLI.Build.Output != "" {
		site.Config.OutputDir = CLI.Build.Output
	}
	defer closeCache(site)
	return site.Build(context.Background())
}

func runServe() error {
	site, err := loadSite(CLI.Serve.Drafts)
	if err != nil {
		return err
	}
	defer closeCache(site)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	server := stanza.NewServer(site, CLI.Serve.Addr, CLI.Config)
	return server.Start(ctx)
}

func runNew(kind, title string) error {
	cfg, err := stanza.LoadConfig(CLI.Config)
	if err != nil {
		return err
	}
	slug := stanza.Slugify(title)
	if slug == "" {
		return fmt.Errorf("cannot derive a slug from title %q", title)
	}

	meta := frontmatter.Meta{
		Template: kind,
		Title:    title,
		Draft:    true,
	}
	if kind == stanza.KindPost {
		meta.Date = time.Now().Format("2006-01-02")
	}
	doc, err := frontmatter.Serialize(meta, []byte("\n"))
	if err != nil {
		return err
	}

	rel := path.Join(kind+"s", slug+".md")
	dst := filepath.Join(cfg.ContentDir, filepath.FromSlash(rel))
	if _, err := os.Stat(dst); err == nil {
		return fmt.Errorf("%s already exists", dst)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(dst, doc, 0o644); err != nil {
		return err
	}
	fmt.Printf("Created %s\n", dst)
	return nil
}

func runInit(dir string, force bool) error {
	name := filepath.Base(dir)
	if name == "." || name == string(filepath.Separator) {
		if wd, err := os.Getwd(); err == nil {
			name = filepath.Base(wd)
		}
	}
	data := scaffold.Data{
		SiteName: name,
		Date:     time.Now().Format("2006-01-02"),
	}
	if err := scaffold.Generate(dir, data, force); err != nil {
		return err
	}

	fmt.Println("Done! Next steps:")
	fmt.Println()
	if dir != "." {
		fmt.Printf("  cd %s\n", dir)
	}
	fmt.Println("  stanza serve")
	fmt.Println()
	fmt.Println("Edit config.yml, then set ADMIN_PASSWORD and ADMIN_SESSION_SECRET")
	fmt.Println("in .env to enable the editor at /admin/.")
	return nil
}

func closeCache(site *stanza.Site) {
	if site.Cache != nil {
		if err := site.Cache.Close(); err != nil {
			slog.Warn("Closing render cache", "error", err)
		}
	}
}
