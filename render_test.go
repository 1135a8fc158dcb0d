package stanza

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

func TestRenderStatus(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/missing/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	cmp := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<p>gone</p>")
		return err
	})
	if err := RenderStatus(c, http.StatusNotFound, cmp); err != nil {
		t.Fatalf("RenderStatus: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); ct != echo.MIMETextHTMLCharsetUTF8 {
		t.Errorf("content type = %q", ct)
	}
	if rec.Body.String() != "<p>gone</p>" {
		t.Errorf("body = %q", rec.Body.String())
	}
}
