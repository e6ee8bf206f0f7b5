package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/image/draw"

	"github.com/cristianadrielbraun/qrstyle/internal/qr"
)

// normalizeHTTPURL validates and normalizes a URL string for QR generation.
// It ensures an http/https scheme, a non-empty hostname, and returns a cleaned absolute URL.
func normalizeHTTPURL(s string) (string, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return "", fmt.Errorf("URL parameter is required")
	}
	// If missing scheme, default to https
	if !strings.Contains(v, "://") {
		v = "https://" + v
	}
	u, err := url.ParseRequestURI(v)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %v", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("only http and https URLs are supported")
	}
	if u.Host == "" {
		return "", fmt.Errorf("URL must include a valid host")
	}
	return u.String(), nil
}

// maxPreviewSize caps the previewSize query parameter.
const maxPreviewSize = 2048

// QRCodeHandler renders a QR code from query parameters. The payload comes
// from "text", or from "url" which is normalized to an http(s) URL first.
// Invalid options answer 400; anything else that fails answers 500.
func (h *Handler) QRCodeHandler(c *gin.Context) {
	req, format, err := h.parseRequest(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.logger.Debug("qr request",
		"format", format,
		"style", req.Render.Style.String(),
		"gradient", req.Render.Gradient.String(),
		"size", req.Render.Size,
		"level", req.Matrix.Level.String(),
	)

	if ratio, ok := qr.CheckContrast(req.Render); !ok {
		msg := fmt.Sprintf("low contrast %.2f:1, the code may not scan", ratio)
		c.Header("X-QR-Warning", msg)
		h.logger.Warn("low contrast", "ratio", ratio, "fg", req.Render.ContrastSample().Hex(), "bg", req.Render.Background.Hex())
	}

	var buf bytes.Buffer
	if format == qr.FormatSVG {
		err = qr.WriteImage(&buf, req, format)
	} else {
		err = h.writeRaster(&buf, c, req, format)
	}
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("qr generation failed", "error", err)
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	if c.Query("download") != "" {
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="qrcode.%s"`, format))
	}
	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

// writeRaster generates the image, applies the optional exact preview size
// and encodes it.
func (h *Handler) writeRaster(buf *bytes.Buffer, c *gin.Context, req qr.Request, format qr.Format) error {
	img, err := qr.Generate(req)
	if err != nil {
		return err
	}
	out := image.Image(img)
	if ps := c.Query("previewSize"); ps != "" {
		target, err := strconv.Atoi(ps)
		if err != nil || target <= 0 || target > maxPreviewSize {
			return fmt.Errorf("%w: previewSize must be in 1..%d", qr.ErrInvalidOption, maxPreviewSize)
		}
		out = scaleToFit(img, target)
	}
	return qr.Encode(buf, out, format)
}

// scaleToFit resizes img so its longer side is target pixels. Nearest
// neighbour keeps module edges sharp.
func scaleToFit(img *image.RGBA, target int) *image.RGBA {
	b := img.Bounds()
	w, h := target, target
	if b.Dx() > b.Dy() {
		h = max(1, b.Dy()*target/b.Dx())
	} else if b.Dy() > b.Dx() {
		w = max(1, b.Dx()*target/b.Dy())
	}
	if w == b.Dx() && h == b.Dy() {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, qr.ErrInvalidOption),
		errors.Is(err, qr.ErrEmptyText),
		errors.Is(err, qr.ErrPayloadTooLarge),
		errors.Is(err, qr.ErrUnsupportedFormat):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// parseRequest builds a render request from the query string on top of the
// configured defaults.
func (h *Handler) parseRequest(c *gin.Context) (qr.Request, qr.Format, error) {
	req := qr.Request{Text: c.Query("text")}

	if raw := c.Query("url"); raw != "" {
		u, err := normalizeHTTPURL(raw)
		if err != nil {
			return req, "", err
		}
		req.Text = u
	}
	if strings.TrimSpace(req.Text) == "" {
		return req, "", errors.New("text or url parameter is required")
	}
	if len(req.Text) > h.cfg.MaxTextLength {
		return req, "", fmt.Errorf("text is too long (max %d bytes)", h.cfg.MaxTextLength)
	}

	format, err := qr.ParseFormat(c.DefaultQuery("format", "png"))
	if err != nil {
		return req, "", err
	}

	if req.Matrix, err = h.matrixOptions(c); err != nil {
		return req, "", err
	}
	if req.Render, err = h.renderOptions(c); err != nil {
		return req, "", err
	}
	if req.Frame, err = h.frameOptions(c); err != nil {
		return req, "", err
	}
	return req, format, nil
}

func (h *Handler) matrixOptions(c *gin.Context) (qr.MatrixOptions, error) {
	opts, err := h.cfg.MatrixOptions()
	if err != nil {
		return opts, err
	}
	if v := c.Query("ec"); v != "" {
		if opts.Level, err = qr.ParseLevel(v); err != nil {
			return opts, err
		}
	}
	if v := c.Query("encoder"); v != "" {
		if opts.Encoder, err = qr.EncoderByName(v); err != nil {
			return opts, err
		}
	}
	if opts.Border, err = intQuery(c, "border", opts.Border); err != nil {
		return opts, err
	}
	if opts.Version, err = intQuery(c, "version", opts.Version); err != nil {
		return opts, err
	}
	return opts, nil
}

func (h *Handler) renderOptions(c *gin.Context) (qr.RenderOptions, error) {
	opts, err := h.cfg.Render.RenderOptions()
	if err != nil {
		return opts, err
	}
	if v := c.Query("style"); v != "" {
		if opts.Style, err = qr.ParseStyle(v); err != nil {
			return opts, err
		}
	}
	if v := c.Query("gradient"); v != "" {
		if opts.Gradient, err = qr.ParseGradient(v); err != nil {
			return opts, err
		}
	}
	if err := colorQuery(c, "fg", &opts.Foreground); err != nil {
		return opts, err
	}
	if err := colorQuery(c, "bg", &opts.Background); err != nil {
		return opts, err
	}
	if v, ok := c.GetQuery("fg2"); ok {
		if opts.Gradient2, err = qr.ParseOptionalColor(v); err != nil {
			return opts, err
		}
	}
	if opts.Size, err = intQuery(c, "size", opts.Size); err != nil {
		return opts, err
	}
	if opts.Padding, err = intQuery(c, "padding", opts.Padding); err != nil {
		return opts, err
	}
	if opts.Radius, err = floatQuery(c, "radius", opts.Radius); err != nil {
		return opts, err
	}
	if v := c.Query("logo"); v != "" {
		if opts.Logo, err = h.logoPath(v); err != nil {
			return opts, err
		}
	}
	opts.MaxPixels = h.cfg.MaxPixels
	return opts, opts.Validate()
}

// logoPath resolves a logo name inside the configured logo directory.
func (h *Handler) logoPath(name string) (string, error) {
	if h.cfg.LogoDir == "" {
		return "", fmt.Errorf("%w: logos are disabled", qr.ErrInvalidOption)
	}
	path := filepath.Join(h.cfg.LogoDir, filepath.Base(name))
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("%w: logo %q not found", qr.ErrInvalidOption, name)
	}
	return path, nil
}

func (h *Handler) frameOptions(c *gin.Context) (qr.FrameOptions, error) {
	opts := qr.DefaultFrameOptions()
	opts.FontPath = h.cfg.FontPath
	opts.MaxPixels = h.cfg.MaxPixels
	opts.Label = c.Query("label")

	var err error
	if opts.Enabled, err = boolQuery(c, "frame", false); err != nil {
		return opts, err
	}
	if v := c.Query("labelPos"); v != "" {
		if opts.LabelPosition, err = qr.ParseLabelPosition(v); err != nil {
			return opts, err
		}
	}
	if err := colorQuery(c, "frameBg", &opts.Background); err != nil {
		return opts, err
	}
	if err := colorQuery(c, "labelColor", &opts.LabelColor); err != nil {
		return opts, err
	}
	if v, ok := c.GetQuery("frameBorder"); ok {
		if opts.Border, err = qr.ParseOptionalColor(v); err != nil {
			return opts, err
		}
	}
	if opts.Radius, err = intQuery(c, "frameRadius", opts.Radius); err != nil {
		return opts, err
	}
	if opts.Pad, err = intQuery(c, "framePad", opts.Pad); err != nil {
		return opts, err
	}
	if opts.LabelPad, err = intQuery(c, "labelPad", opts.LabelPad); err != nil {
		return opts, err
	}
	if opts.FontSize, err = floatQuery(c, "fontSize", opts.FontSize); err != nil {
		return opts, err
	}
	return opts, opts.Validate()
}

func intQuery(c *gin.Context, key string, def int) (int, error) {
	v := c.Query(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, fmt.Errorf("%w: %s must be an integer, got %q", qr.ErrInvalidOption, key, v)
	}
	return n, nil
}

func floatQuery(c *gin.Context, key string, def float64) (float64, error) {
	v := c.Query(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def, fmt.Errorf("%w: %s must be a number, got %q", qr.ErrInvalidOption, key, v)
	}
	return f, nil
}

func boolQuery(c *gin.Context, key string, def bool) (bool, error) {
	v := c.Query(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def, fmt.Errorf("%w: %s must be a boolean, got %q", qr.ErrInvalidOption, key, v)
	}
	return b, nil
}

func colorQuery(c *gin.Context, key string, dst *qr.Color) error {
	v := c.Query(key)
	if v == "" {
		return nil
	}
	col, err := qr.ParseColor(v)
	if err != nil {
		return err
	}
	*dst = col
	return nil
}
