package views

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

// adminLayout is a minimal chrome for the admin editor, separate from the
// public site layout.
func adminLayout(buf *bytes.Buffer, cfg SiteConfig, title string, body func(*bytes.Buffer)) {
	buf.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	buf.WriteString("<meta charset=\"utf-8\"/>\n")
	buf.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\"/>\n")
	buf.WriteString("<meta name=\"robots\" content=\"noindex\"/>\n")
	buf.WriteString("<title>" + esc(title) + " — " + esc(cfg.Title) + " admin</title>\n")
	buf.WriteString("</head>\n<body class=\"admin\">\n")
	buf.WriteString("<header class=\"admin__header\"><a href=\"/admin/\">" + esc(cfg.Title) + " admin</a> · <a href=\"/\">view site</a></header>\n")
	body(buf)
	buf.WriteString("</body>\n</html>\n")
}

// AdminLogin renders the password prompt.
func AdminLogin(cfg SiteConfig, showError bool, csrfToken string) templ.Component {
	return component(func(buf *bytes.Buffer) {
		adminLayout(buf, cfg, "Sign in", func(buf *bytes.Buffer) {
			if showError {
				buf.WriteString("<p class=\"admin__error\">Wrong password.</p>\n")
			}
			buf.WriteString("<form method=\"post\" action=\"/admin/login/\">\n")
			buf.WriteString("<input type=\"hidden\" name=\"_csrf\" value=\"" + esc(csrfToken) + "\"/>\n")
			buf.WriteString("<label>Password <input type=\"password\" name=\"password\" autofocus/></label>\n")
			buf.WriteString("<button type=\"submit\">Sign in</button>\n</form>\n")
		})
	})
}

// AdminDashboard lists every content file, drafts included.
func AdminDashboard(cfg SiteConfig, entries []AdminEntry, message, csrfToken string) templ.Component {
	return component(func(buf *bytes.Buffer) {
		adminLayout(buf, cfg, "Content", func(buf *bytes.Buffer) {
			if message != "" {
				buf.WriteString("<p class=\"admin__message\">" + esc(message) + "</p>\n")
			}
			buf.WriteString("<p><a href=\"/admin/new/\">New entry</a> · <a href=\"/admin/images/\">Images</a></p>\n")
			buf.WriteString("<table class=\"admin__table\">\n<tr><th>Title</th><th>Kind</th><th>Date</th><th>Status</th><th></th></tr>\n")
			for _, e := range entries {
				status := "published"
				if e.Draft {
					status = "draft"
				}
				buf.WriteString("<tr>")
				buf.WriteString("<td><a href=\"/admin/edit" + esc(e.Slug) + "\">" + esc(e.Title) + "</a></td>")
				buf.WriteString("<td>" + esc(e.Kind) + "</td>")
				buf.WriteString("<td>" + esc(e.Date) + "</td>")
				buf.WriteString("<td>" + status + "</td>")
				buf.WriteString("<td><form method=\"post\" action=\"/admin/delete" + esc(e.Slug) + "\"><input type=\"hidden\" name=\"_csrf\" value=\"" + esc(csrfToken) + "\"/><button type=\"submit\">Delete</button></form></td>")
				buf.WriteString("</tr>\n")
			}
			buf.WriteString("</table>\n")
			buf.WriteString("<form method=\"post\" action=\"/admin/logout/\"><input type=\"hidden\" name=\"_csrf\" value=\"" + esc(csrfToken) + "\"/><button type=\"submit\">Sign out</button></form>\n")
		})
	})
}

// AdminForm renders the edit form for one entry (zero-valued for new ones).
func AdminForm(cfg SiteConfig, e AdminEntry, csrfToken string) templ.Component {
	return component(func(buf *bytes.Buffer) {
		title := "Edit"
		if e.File == "" {
			title = "New entry"
		}
		adminLayout(buf, cfg, title, func(buf *bytes.Buffer) {
			buf.WriteString("<form method=\"post\" action=\"/admin/save/\" class=\"admin__form\">\n")
			buf.WriteString("<input type=\"hidden\" name=\"_csrf\" value=\"" + esc(csrfToken) + "\"/>\n")
			buf.WriteString("<input type=\"hidden\" name=\"original\" value=\"" + esc(e.File) + "\"/>\n")
			buf.WriteString("<label>Title <input name=\"title\" value=\"" + esc(e.Title) + "\"/></label>\n")
			buf.WriteString("<label>Slug <input name=\"slug\" value=\"" + esc(bareSlug(e)) + "\" placeholder=\"derived from title when empty\"/></label>\n")
			buf.WriteString("<label>Kind <select name=\"kind\">")
			for _, k := range []string{"post", "page"} {
				sel := ""
				if e.Kind == k {
					sel = " selected"
				}
				buf.WriteString("<option value=\"" + k + "\"" + sel + ">" + k + "</option>")
			}
			buf.WriteString("</select></label>\n")
			buf.WriteString("<label>Date <input name=\"date\" value=\"" + esc(e.Date) + "\" placeholder=\"YYYY-MM-DD\"/></label>\n")
			buf.WriteString("<label>Tags <input name=\"tags\" value=\"" + esc(e.Tags) + "\" placeholder=\"comma, separated\"/></label>\n")
			buf.WriteString("<label>Main tag <input name=\"mainTag\" value=\"" + esc(e.MainTag) + "\"/></label>\n")
			buf.WriteString("<label>Description <input name=\"description\" value=\"" + esc(e.Description) + "\"/></label>\n")
			buf.WriteString("<label>Social image <input name=\"socialImage\" value=\"" + esc(e.SocialImage) + "\" placeholder=\"/media/cover.jpg\"/></label>\n")
			checked := ""
			if e.Draft {
				checked = " checked"
			}
			buf.WriteString("<label><input type=\"checkbox\" name=\"draft\"" + checked + "/> Draft</label>\n")
			buf.WriteString("<label>Body<br/><textarea name=\"content\" rows=\"24\" cols=\"90\">" + esc(e.Body) + "</textarea></label>\n")
			buf.WriteString("<button type=\"submit\">Save</button> <a href=\"/admin/\">Cancel</a>\n</form>\n")
		})
	})
}

// AdminImages renders the uploaded image gallery and upload form.
func AdminImages(cfg SiteConfig, images []ImageInfo, csrfToken string) templ.Component {
	return component(func(buf *bytes.Buffer) {
		adminLayout(buf, cfg, "Images", func(buf *bytes.Buffer) {
			buf.WriteString("<p><a href=\"/admin/\">Back to content</a></p>\n")
			buf.WriteString("<form method=\"post\" action=\"/admin/images/upload/\" enctype=\"multipart/form-data\">\n")
			buf.WriteString("<input type=\"hidden\" name=\"_csrf\" value=\"" + esc(csrfToken) + "\"/>\n")
			buf.WriteString("<input type=\"file\" name=\"image\" accept=\"image/*\"/> <button type=\"submit\">Upload</button>\n</form>\n")
			buf.WriteString("<table class=\"admin__table\">\n<tr><th>File</th><th>Size</th><th>Dimensions</th><th></th></tr>\n")
			for _, img := range images {
				buf.WriteString("<tr>")
				buf.WriteString("<td><a href=\"/media/" + esc(img.Filename) + "\">" + esc(img.Filename) + "</a></td>")
				buf.WriteString("<td>" + strconv.Itoa(img.Size) + " bytes</td>")
				buf.WriteString("<td>" + strconv.Itoa(img.Width) + "×" + strconv.Itoa(img.Height) + "</td>")
				buf.WriteString("<td><form method=\"post\" action=\"/admin/images/delete/" + esc(PathEscape(img.Filename)) + "/\"><input type=\"hidden\" name=\"_csrf\" value=\"" + esc(csrfToken) + "\"/><button type=\"submit\">Delete</button></form></td>")
				buf.WriteString("</tr>\n")
			}
			buf.WriteString("</table>\n")
		})
	})
}

// ImageInfo mirrors the root package's image metadata for rendering.
type ImageInfo struct {
	Filename string
	Width    int
	Height   int
	Size     int
}

// bareSlug strips the kind directory and slashes from a derived route so the
// form shows just the final path segment.
func bareSlug(e AdminEntry) string {
	s := strings.Trim(e.Slug, "/")
	if i := strings.LastIndexByte(s, '/'); i >= 0 {
		s = s[i+1:]
	}
	return s
}
