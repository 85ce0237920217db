package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-idea-prototyper/internal/utils"
)

// SearchIdeas godoc
// @ID          searchIdeas
// @Summary     Find similar ideas
// @Description Ranks recently stored ideas by word overlap with q (Jaccard similarity, common words ignored).
// @Tags        Ideas
// @Produce     json
// @Param       q  query  string  true   "Free-text query"     example(plant shop)
// @Param       k  query  int     false  "Maximum hits"        minimum(1) maximum(20) default(5)
// @Success     200  {object}  handlers.SearchIdeasResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Missing query"
// @Failure     500  {object}  handlers.ErrorResponse  "Storage unavailable"
// @Router      /search [get]
func (h *Handlers) SearchIdeas(c *gin.Context) {
	q := c.Query("q")
	k := utils.AtoiDefault(c.Query("k"), 0)

	matches, err := h.ideaSvc.Search(c.Request.Context(), q, k)
	if err != nil {
		mapServiceError(c, err, ErrCodeInternal)
		return
	}
	ok(c, http.StatusOK, SearchIdeasResponse{
		Query: q,
		Count: len(matches),
		Items: toSearchHits(matches),
	})
}
