package stanza

import (
	"encoding/xml"
	"os"
	"time"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
	GUID        string `xml:"guid"`
}

// WriteRSS renders the RSS 2.0 feed for the given posts (already sorted
// newest first) to path.
func WriteRSS(path string, cfg SiteConfig, posts []Node) error {
	items := make([]rssItem, 0, len(posts))
	for _, p := range posts {
		pubDate := ""
		if t, ok := nodeTime(p.Date); ok {
			pubDate = t.Format(time.RFC1123Z)
		}
		postURL := AbsURL(cfg.URL, p.Slug)
		items = append(items, rssItem{
			Title:       p.Title,
			Link:        postURL,
			Description: p.Description,
			PubDate:     pubDate,
			GUID:        postURL,
		})
	}
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       cfg.Title,
			Link:        cfg.URL,
			Description: cfg.Subtitle,
			Items:       items,
		},
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.WriteString(xml.Header); err != nil {
		return err
	}
	if err := xml.NewEncoder(f).Encode(feed); err != nil {
		return err
	}
	return f.Close()
}
