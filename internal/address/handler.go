package address

import (
	"context"
	"errors"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"

	"github.com/UrielYanez/ms-users/internal/shared/server/respond"
)

var postalCodeRe = regexp.MustCompile(`^\d{4,5}$`)

// Lookuper is the postal-code lookup dependency, satisfied by *Client.
type Lookuper interface {
	Lookup(ctx context.Context, cp string) (Info, error)
}

// Handler proxies postal-code lookups, with an optional cache in front.
type Handler struct {
	Lookup Lookuper
	Cache  Cache
}

// NewHandler constructs a Handler. cache may be nil.
func NewHandler(lookup Lookuper, cache Cache) *Handler {
	return &Handler{Lookup: lookup, Cache: cache}
}

// RegisterRoutes attaches address routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/direccion/:cp", h.lookup)
}

func (h *Handler) lookup(c *gin.Context) {
	cp := c.Param("cp")
	if !postalCodeRe.MatchString(cp) {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "postal code must be 4 or 5 digits", nil)
		return
	}

	ctx := c.Request.Context()
	if h.Cache != nil {
		if info, ok := h.Cache.Get(ctx, cp); ok {
			respond.OK(c, info)
			return
		}
	}

	info, err := h.Lookup.Lookup(ctx, cp)
	if err != nil {
		var upstreamErr *UpstreamError
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, respond.CodeNotFound, "postal code not found", nil)
		case errors.Is(err, ErrNotConfigured):
			respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "address lookup is not configured", nil)
		case errors.As(err, &upstreamErr):
			respond.Error(c, http.StatusInternalServerError, respond.CodeUpstream, "address service unavailable", upstreamErr.Detail)
		default:
			respond.Error(c, http.StatusInternalServerError, respond.CodeUpstream, "address lookup failed", nil)
		}
		return
	}

	if h.Cache != nil {
		h.Cache.Set(ctx, cp, info)
	}
	respond.OK(c, info)
}
