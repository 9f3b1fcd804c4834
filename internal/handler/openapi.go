package handler

import (
	"embed"
	"net/http"

	"github.com/deppfellow/nutri-api/internal/server"
	"github.com/labstack/echo/v4"
)

//go:embed static/openapi.html static/openapi.json
var staticFiles embed.FS

// OpenAPIHandler serves the API reference page and the document it renders.
type OpenAPIHandler struct {
	Handler
}

func NewOpenAPIHandler(s *server.Server) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler: NewHandler(s),
	}
}

// ServeOpenAPIUI serves the docs page uncached so edits show up immediately.
func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	return h.serve(c, "static/openapi.html", echo.MIMETextHTMLCharsetUTF8)
}

// ServeOpenAPISpec serves the OpenAPI document the docs page loads.
func (h *OpenAPIHandler) ServeOpenAPISpec(c echo.Context) error {
	return h.serve(c, "static/openapi.json", echo.MIMEApplicationJSONCharsetUTF8)
}

func (h *OpenAPIHandler) serve(c echo.Context, name, contentType string) error {
	body, err := staticFiles.ReadFile(name)
	if err != nil {
		return err
	}

	c.Response().Header().Set("Cache-Control", "no-cache")
	return c.Blob(http.StatusOK, contentType, body)
}
