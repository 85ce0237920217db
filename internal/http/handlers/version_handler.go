// Prototype version HTTP handlers.
//
//   - GET /ideas/{id}/versions   (all versions of an idea, highest first, ETag)
//   - GET /versions/{id}         (one version)
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-idea-prototyper/internal/idcodec"
	"github.com/tbourn/go-idea-prototyper/internal/repo"
)

// ListVersions godoc
// @ID          listVersions
// @Summary     List the versions of an idea
// @Description Returns every prototype version for the idea, highest version first. An unknown idea yields an empty list. Supports weak ETag via If-None-Match.
// @Tags        Versions
// @Produce     json
//
// @Param       id             path    string  true   "Idea ID (ULID)"              example(01J9Z3M6Q4T8V2X5B7C9D1F3GH)
// @Param       If-None-Match  header  string  false  "Return 304 if ETag matches"
//
// @Success     200  {object} handlers.ListVersionsResponse
// @Header      200  {string} ETag  "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     400  {object} handlers.ErrorResponse "Malformed id"
// @Failure     500  {object} handlers.ErrorResponse "Storage unavailable"
// @Router      /ideas/{id}/versions [get]
func (h *Handlers) ListVersions(c *gin.Context) {
	ctx := c.Request.Context()
	ideaID := c.Param("id")

	if id, perr := idcodec.Parse(ideaID); perr == nil && h.storeDB() != nil {
		count, maxTS, err := repo.VersionsStats(ctx, h.storeDB(), id)
		if err == nil {
			var ts int64
			if maxTS != nil {
				ts = maxTS.Unix()
			}
			etag := fmt.Sprintf(`W/"versions:%s:%d:%d"`, id, count, ts)
			if conditionalGET(c, etag) {
				return
			}
		}
	}

	items, err := h.protoSvc.ListVersions(ctx, ideaID)
	if err != nil {
		mapServiceError(c, err, ErrCodeInternal)
		return
	}
	ok(c, http.StatusOK, ListVersionsResponse{Count: len(items), Items: toVersionDTOs(items)})
}

// GetVersion godoc
// @ID          getVersion
// @Summary     Fetch a prototype version
// @Tags        Versions
// @Produce     json
//
// @Param       id  path  string  true  "Version ID (ULID)"  example(01J9Z3N0A1B2C3D4E5F6G7H8J9)
//
// @Success     200  {object}  handlers.VersionDTO
// @Failure     400  {object}  handlers.ErrorResponse  "Malformed id"
// @Failure     404  {object}  handlers.ErrorResponse  "Version not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Storage unavailable"
// @Router      /versions/{id} [get]
func (h *Handlers) GetVersion(c *gin.Context) {
	v, err := h.protoSvc.GetVersion(c.Request.Context(), c.Param("id"))
	if err != nil {
		mapServiceError(c, err, ErrCodeInternal)
		return
	}
	ok(c, http.StatusOK, toVersionDTO(v))
}
