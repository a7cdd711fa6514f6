package handlers

import (
	"net/http"

	"workhive/middleware"
	searchService "workhive/services/search"
	"workhive/utils"

	"github.com/gin-gonic/gin"
)

// SearchHandler serves the single role-branched search endpoint.
type SearchHandler struct {
	Service searchService.SearchService
}

func NewSearchHandler(svc searchService.SearchService) *SearchHandler {
	return &SearchHandler{Service: svc}
}

// SearchHandler runs the geo-matching search for the caller's role:
// workers receive ranked open jobs, contractors ranked worker profiles.
func (h *SearchHandler) SearchHandler(c *gin.Context) {
	actorID, role := middleware.Identity(c)

	var req searchService.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	result, err := h.Service.Search(actorID, role, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
