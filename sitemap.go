package stanza

import (
	"encoding/xml"
	"os"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// WriteSitemap renders the sitemap for every indexable route to path.
func WriteSitemap(path string, cfg SiteConfig, routes []Route) error {
	urls := make([]sitemapURL, 0, len(routes))
	for _, r := range routes {
		if r.NoIndex {
			continue
		}
		urls = append(urls, sitemapURL{
			Loc:     AbsURL(cfg.URL, r.Path),
			LastMod: r.LastMod,
		})
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.WriteString(xml.Header); err != nil {
		return err
	}
	if err := xml.NewEncoder(f).Encode(sitemap); err != nil {
		return err
	}
	return f.Close()
}
