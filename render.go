package stanza

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// Render writes a component as the HTML body of a 200 response. Admin
// handlers use it for every page; error pages go through RenderStatus.
func Render(c echo.Context, cmp templ.Component) error {
	return RenderStatus(c, http.StatusOK, cmp)
}

// RenderStatus writes a component with an explicit status code.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	res := c.Response()
	res.Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	res.WriteHeader(code)
	return cmp.Render(c.Request().Context(), res)
}
