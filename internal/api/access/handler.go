package access

import (
	"context"
	"errors"
	"net/http"

	"entitlements-api/internal/app/gate"
	"entitlements-api/internal/app/http/middleware"
	"entitlements-api/internal/domain/users"

	"github.com/gin-gonic/gin"
)

type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (*users.User, error)
}

type Handler struct {
	users UserFinder
	gate  *gate.Gate
}

func NewHandler(finder UserFinder, g *gate.Gate) *Handler {
	return &Handler{users: finder, gate: g}
}

type FeatureResponse struct {
	Feature      string `json:"feature"`
	RequiredTier string `json:"required_tier"`
	Allowed      bool   `json:"allowed"`
	Basis        string `json:"basis"`
}

func toResponse(d gate.FeatureDecision) FeatureResponse {
	return FeatureResponse{
		Feature:      d.Feature,
		RequiredTier: string(d.RequiredTier),
		Allowed:      d.Allowed,
		Basis:        string(d.Basis),
	}
}

func (h *Handler) currentUser(c *gin.Context) (*users.User, bool) {
	email := c.GetString(middleware.ContextEmail)
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, false
	}
	user, err := h.users.FindByEmail(c.Request.Context(), email)
	if errors.Is(err, users.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return nil, false
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
		return nil, false
	}
	return user, true
}

// GET /features
func (h *Handler) ListFeatures(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	decisions, err := h.gate.CheckAll(*user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Feature gate misconfigured"})
		return
	}

	out := make([]FeatureResponse, 0, len(decisions))
	for _, d := range decisions {
		out = append(out, toResponse(d))
	}
	c.JSON(http.StatusOK, out)
}

// GET /features/:name
func (h *Handler) GetFeature(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	d, err := h.gate.Check(*user, c.Param("name"))
	if errors.Is(err, gate.ErrUnknownFeature) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown feature"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Feature gate misconfigured"})
		return
	}
	c.JSON(http.StatusOK, toResponse(d))
}
