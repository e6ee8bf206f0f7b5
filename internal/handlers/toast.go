package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/qrstyle/web/components"
)

// GenericToast renders a toast from form values as an HTML fragment. The
// home page uses it to surface render warnings.
func (h *Handler) GenericToast(c *gin.Context) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)

	err := components.Toast(components.ToastProps{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Variant:     components.ParseVariant(c.PostForm("variant")),
		Dismissible: c.PostForm("dismissible") == "on",
	}).Render(c.Request.Context(), c.Writer)
	if err != nil {
		h.logger.Error("rendering toast", "error", err)
	}
}
