package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/qrstyle/internal/config"
	"github.com/cristianadrielbraun/qrstyle/internal/qr"
	"github.com/cristianadrielbraun/qrstyle/web/components"
	"github.com/cristianadrielbraun/qrstyle/web/pages"
)

// Handler holds the dependencies shared by the HTTP handlers.
type Handler struct {
	cfg    *config.Config
	logger *slog.Logger
}

// New returns a Handler using cfg for request defaults. A nil logger
// uses slog.Default().
func New(cfg *config.Config, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{cfg: cfg, logger: logger}
}

// Routes registers every route on r.
func (h *Handler) Routes(r gin.IRouter) {
	r.GET("/", h.Home)
	r.GET("/healthz", h.Healthz)
	r.GET("/sitemap.xml", h.SitemapXML)

	api := r.Group("/api")
	{
		api.GET("/qr", h.QRCodeHandler)
		api.POST("/htmx/toast", h.GenericToast)
	}
}

// Home serves the generator page.
func (h *Handler) Home(c *gin.Context) {
	d := components.FormDefaults{
		Text:       "https://example.com",
		Style:      h.cfg.Render.Style,
		Foreground: hexOr(h.cfg.Render.Foreground, qr.Black),
		Background: hexOr(h.cfg.Render.Background, qr.White),
		Gradient:   h.cfg.Render.Gradient,
		Gradient2:  hexOr(h.cfg.Render.Gradient2, qr.Black),
		Level:      h.cfg.Render.Level,
		Size:       h.cfg.Render.Size,
	}
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := pages.HomePage(d).Render(c.Request.Context(), c.Writer); err != nil {
		h.logger.Error("rendering home page", "error", err)
	}
}

// hexOr returns s as #rrggbb, or def when s does not parse.
func hexOr(s string, def qr.Color) string {
	c, err := qr.ParseColor(s)
	if err != nil {
		return def.Hex()
	}
	return c.Hex()
}

// Healthz reports that the server is up.
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// SitemapXML serves a minimal sitemap for the site.
func (h *Handler) SitemapXML(c *gin.Context) {
	c.Header("Content-Type", "application/xml; charset=utf-8")
	scheme := "https"
	host := c.Request.Host
	if xf := c.Request.Header.Get("X-Forwarded-Proto"); xf != "" {
		scheme = xf
	} else if c.Request.TLS == nil && isLocalHost(host) {
		scheme = "http"
	}
	base := scheme + "://" + host
	xml := "" +
		"<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n" +
		"<urlset xmlns=\"http://www.sitemaps.org/schemas/sitemap/0.9\">\n" +
		"  <url>\n" +
		"    <loc>" + base + "/" + "</loc>\n" +
		"    <changefreq>monthly</changefreq>\n" +
		"    <priority>1.0</priority>\n" +
		"  </url>\n" +
		"</urlset>\n"
	c.String(http.StatusOK, xml)
}

func isLocalHost(host string) bool {
	for _, p := range []string{"localhost", "127.0.0.1", "[::1]"} {
		if host == p || strings.HasPrefix(host, p+":") {
			return true
		}
	}
	return false
}
