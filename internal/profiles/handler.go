package profiles

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

// RegisterRoutes attaches profile routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/usuarios", h.create)
	rg.GET("/usuarios", h.list)
	rg.GET("/usuarios/auth/:id", h.getByAuthID)
	rg.GET("/usuarios/:id", h.getByID)
	rg.PUT("/usuarios/:id", h.update)
	rg.DELETE("/usuarios/:id", h.remove)
}

func (h *Handler) create(c *gin.Context) {
	var profile Profile
	if err := c.ShouldBindJSON(&profile); err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "invalid request body", nil)
		return
	}

	created, err := h.Svc.Create(c.Request.Context(), profile)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "missing required profile fields", nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, respond.CodeConstraint, "failed to create profile", err.Error())
		return
	}
	respond.JSON(c, http.StatusCreated, created)
}

func (h *Handler) list(c *gin.Context) {
	listed, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, respond.CodeStore, "failed to list profiles", nil)
		return
	}
	respond.OK(c, listed)
}

func (h *Handler) getByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	profile, err := h.Svc.GetByID(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, respond.CodeNotFound, "profile not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, respond.CodeStore, "failed to fetch profile", nil)
		}
		return
	}
	respond.OK(c, profile)
}

func (h *Handler) getByAuthID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	profile, err := h.Svc.ResolveAuthID(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			// Not a fault: this identity simply has no profile yet.
			respond.Error(c, http.StatusNotFound, respond.CodeNotFound, "profile not provisioned for this identity; create one first", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, respond.CodeStore, "failed to fetch profile", nil)
		}
		return
	}
	respond.OK(c, profile)
}

func (h *Handler) update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var profile Profile
	if err := c.ShouldBindJSON(&profile); err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "invalid request body", nil)
		return
	}
	profile.ID = id

	updated, err := h.Svc.Update(c.Request.Context(), profile)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, respond.CodeNotFound, "profile not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "missing required profile fields", nil)
		default:
			respond.Error(c, http.StatusBadRequest, respond.CodeConstraint, "failed to update profile", err.Error())
		}
		return
	}
	respond.OK(c, updated)
}

func (h *Handler) remove(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, respond.CodeNotFound, "profile not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, respond.CodeStore, "failed to delete profile", nil)
		}
		return
	}
	c.Status(http.StatusNoContent)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "id must be a positive integer", nil)
		return 0, false
	}
	return id, true
}
