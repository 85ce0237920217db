// Operational endpoints: service banner, dependency diagnostics and liveness.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RootResponse is returned by GET /.
type RootResponse struct {
	Message string `json:"message" example:"SaaS.ai API is running"`
}

// Root godoc
// @ID          root
// @Summary     Service banner
// @Tags        System
// @Produce     json
// @Success     200  {object}  handlers.RootResponse
// @Router      / [get]
func (h *Handlers) Root(c *gin.Context) {
	ok(c, http.StatusOK, RootResponse{Message: "SaaS.ai API is running"})
}

// Diagnostics godoc
// @ID          diagnostics
// @Summary     Backend and database diagnostics
// @Description Reports backend status, database connectivity, whether storage settings are configured, and up to ten table names. Always answers 200.
// @Tags        System
// @Produce     json
// @Success     200  {object}  services.DiagnosticsReport
// @Router      /test [get]
func (h *Handlers) Diagnostics(c *gin.Context) {
	ok(c, http.StatusOK, h.diagSvc.Check(c.Request.Context()))
}

// Health godoc
// @ID          health
// @Summary     Liveness probe
// @Tags        System
// @Produce     json
// @Success     200  {object}  map[string]string
// @Router      /health [get]
func (h *Handlers) Health(c *gin.Context) {
	ok(c, http.StatusOK, gin.H{"status": "ok"})
}
