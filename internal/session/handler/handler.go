// Package handler exposes the session lifecycle over HTTP: login, the list of
// active sessions, and logout.
package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront/internal/metrics"
	"storefront/internal/server/middleware"
	sessionservice "storefront/internal/session/service"
	userservice "storefront/internal/user/service"
)

type Handler struct {
	sessions *sessionservice.Manager
	users    *userservice.Service
	log      *zap.Logger
}

func NewHandler(sessions *sessionservice.Manager, users *userservice.Service, log *zap.Logger) *Handler {
	return &Handler{sessions: sessions, users: users, log: log}
}

// RegisterRoutes mounts the session endpoints on the given group.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.POST("/api/sessions", h.CreateSession)
	r.GET("/api/sessions", middleware.RequireUser(), h.ListSessions)
	r.DELETE("/api/sessions", middleware.RequireUser(), h.DeleteSession)
}

type createSessionRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type tokenPairResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type sessionResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Valid     bool      `json:"valid"`
	UserAgent string    `json:"userAgent"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateSession handles POST /api/sessions: a login. A wrong password and an
// unknown email get the same 401 body.
func (h *Handler) CreateSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	u, err := h.users.ValidatePassword(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.log.Error("validate password", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if u == nil {
		metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	sess, err := h.sessions.CreateSession(c.Request.Context(), u.ID, c.Request.UserAgent())
	if err != nil {
		h.log.Error("create session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	accessToken, refreshToken, err := h.sessions.IssueTokenPair(u, sess.ID)
	if err != nil {
		h.log.Error("issue token pair", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	c.JSON(http.StatusOK, tokenPairResponse{AccessToken: accessToken, RefreshToken: refreshToken})
}

// ListSessions handles GET /api/sessions: the caller's active sessions.
func (h *Handler) ListSessions(c *gin.Context) {
	p := middleware.PrincipalFromContext(c)

	sessions, err := h.sessions.ListActiveSessions(c.Request.Context(), p.UserID())
	if err != nil {
		h.log.Error("list sessions", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	out := make([]sessionResponse, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, sessionResponse{
			ID:        s.ID,
			UserID:    s.UserID,
			Valid:     s.Valid,
			UserAgent: s.UserAgent,
			CreatedAt: s.CreatedAt,
			UpdatedAt: s.UpdatedAt,
		})
	}
	c.JSON(http.StatusOK, out)
}

// DeleteSession handles DELETE /api/sessions: logout. It revokes the session
// the presented access token belongs to, so refresh tokens bound to it stop
// working. The null pair in the response tells the client to drop its copies.
func (h *Handler) DeleteSession(c *gin.Context) {
	p := middleware.PrincipalFromContext(c)

	if err := h.sessions.InvalidateSession(c.Request.Context(), p.SessionID); err != nil {
		h.log.Error("invalidate session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"accessToken": nil, "refreshToken": nil})
}
