package cv

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/UrielYanez/ms-users/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches CV routes to the router group. The :id segment is
// the auth identity, not the internal profile id.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/usuarios/:id/cv", h.get)
	rg.PUT("/usuarios/:id/cv", h.put)
	rg.GET("/usuarios/:id/cv/pdf", h.exportPDF)
}

func (h *Handler) get(c *gin.Context) {
	authID, ok := authIDParam(c)
	if !ok {
		return
	}

	doc, err := h.Svc.GetDocument(c.Request.Context(), authID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, respond.CodeNotFound, "profile not provisioned for this identity; create one first", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, respond.CodeStore, "failed to fetch cv", nil)
		}
		return
	}
	respond.OK(c, doc)
}

func (h *Handler) put(c *gin.Context) {
	authID, ok := authIDParam(c)
	if !ok {
		return
	}

	var payload Payload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "invalid cv payload", nil)
		return
	}

	profileID, err := h.Svc.Sync(c.Request.Context(), authID, payload)
	if err != nil {
		var constraintErr *ConstraintError
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, respond.CodeNotFound, "profile not provisioned for this identity; create one first", nil)
		case errors.As(err, &constraintErr):
			respond.Error(c, http.StatusBadRequest, respond.CodeConstraint, "cv update rejected and rolled back", gin.H{
				"table":      constraintErr.Table,
				"constraint": constraintErr.Constraint,
				"detail":     constraintErr.Detail,
			})
		default:
			respond.Error(c, http.StatusInternalServerError, respond.CodeStore, "cv update failed and was rolled back", nil)
		}
		return
	}

	c.Set("profileId", profileID)
	respond.OK(c, gin.H{
		"message":    "CV actualizado exitosamente.",
		"id_usuario": profileID,
	})
}

func (h *Handler) exportPDF(c *gin.Context) {
	authID, ok := authIDParam(c)
	if !ok {
		return
	}

	rendered, err := h.Svc.ExportPDF(c.Request.Context(), authID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, respond.CodeNotFound, "profile not provisioned for this identity; create one first", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to render cv pdf", nil)
		}
		return
	}

	c.Header("Content-Disposition", `attachment; filename="cv.pdf"`)
	c.Data(http.StatusOK, "application/pdf", rendered)
}

func authIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "id must be a positive integer", nil)
		return 0, false
	}
	return id, true
}
