package handlers

import (
	"io/fs"
	"net/http"

	"airquality_dashboard/web"

	"github.com/gin-gonic/gin"
)

const (
	viewerPage  = "index.html"
	controlPage = "control.html"
)

// registerStaticRoutes serves the viewer on /, the control panel on /control
// and their assets under /static.
func (h *Handler) registerStaticRoutes(r *gin.Engine) {
	assets := web.Assets()
	r.GET("/", h.servePage(assets, viewerPage))
	r.GET("/control", h.servePage(assets, controlPage))
	r.StaticFS("/static", http.FS(assets))
}

// servePage writes the page bytes directly; http.FileServer would redirect
// index.html requests.
func (h *Handler) servePage(assets fs.FS, name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, err := fs.ReadFile(assets, name)
		if err != nil {
			h.logAndJSONError(c, http.StatusInternalServerError, "page unavailable", "static_read_failed", err, "page", name)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", page)
	}
}
