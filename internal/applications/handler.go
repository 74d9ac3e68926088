package applications

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/UrielYanez/ms-users/internal/shared/server/respond"
)

// Handler serves the job-application listing for a profile.
type Handler struct {
	Repo Repo
}

// NewHandler constructs a Handler.
func NewHandler(repo Repo) *Handler {
	return &Handler{Repo: repo}
}

// RegisterRoutes attaches application routes to the router group. The :id
// segment is the auth identity.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/usuarios/:id/postulaciones", h.list)
}

func (h *Handler) list(c *gin.Context) {
	authID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || authID <= 0 {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "id must be a positive integer", nil)
		return
	}

	aggregate, err := h.Repo.ListByAuthID(c.Request.Context(), authID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, respond.CodeStore, "failed to fetch applications", nil)
		return
	}
	if len(aggregate) == 0 {
		respond.OK(c, gin.H{"postulaciones": []any{}})
		return
	}
	c.Data(http.StatusOK, "application/json", aggregate)
}
