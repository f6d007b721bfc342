package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront/internal/metrics"
	"storefront/internal/security"
	sessionservice "storefront/internal/session/service"
)

// Header names for the credential transport. The access token travels in the
// standard Authorization header; the refresh token and the renewal signal use
// dedicated headers.
const (
	RefreshHeader = "x-refresh"
	RenewedHeader = "x-access-token"

	bearerPrefix = "bearer "
)

// Verifier is the token verification the middleware needs.
type Verifier interface {
	Verify(token string) (*security.Principal, error)
}

// Reissuer exchanges a refresh token for a new access token.
type Reissuer interface {
	ReissueAccessToken(ctx context.Context, refreshToken string) (string, error)
}

// Outcome is the result of authenticating one request. Principal is nil for
// anonymous requests. RenewedAccessToken is set only when a silent refresh
// produced a new access token the client must capture.
type Outcome struct {
	Principal          *security.Principal
	RenewedAccessToken string
}

// Authenticate resolves the principal for a request given its raw access and
// refresh credentials. It never fails a request over an untrusted credential:
// missing, malformed, and refused cases all degrade to an anonymous Outcome.
// The one error it returns is an infrastructure failure during reissuance,
// which must not be mistaken for a revoked session.
func Authenticate(ctx context.Context, accessToken, refreshToken string, codec Verifier, reissuer Reissuer) (Outcome, error) {
	if accessToken == "" {
		return Outcome{}, nil
	}

	p, err := codec.Verify(accessToken)
	switch {
	case err == nil:
		return Outcome{Principal: p}, nil
	case errors.Is(err, security.ErrTokenExpired):
		// Only expiry opens the refresh path; an invalid token offers
		// nothing trustworthy to refresh from.
	default:
		return Outcome{}, nil
	}

	if refreshToken == "" {
		return Outcome{}, nil
	}

	newToken, err := reissuer.ReissueAccessToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, sessionservice.ErrReissueRefused) {
			metrics.TokenReissuesTotal.WithLabelValues("refused").Inc()
			return Outcome{}, nil
		}
		metrics.TokenReissuesTotal.WithLabelValues("error").Inc()
		return Outcome{}, err
	}

	// The token was minted a moment ago; re-verifying is redundant but keeps
	// the attach path symmetric with the non-refresh one.
	p, err = codec.Verify(newToken)
	if err != nil {
		metrics.TokenReissuesTotal.WithLabelValues("error").Inc()
		return Outcome{}, fmt.Errorf("verify reissued token: %w", err)
	}
	metrics.TokenReissuesTotal.WithLabelValues("success").Inc()
	return Outcome{Principal: p, RenewedAccessToken: newToken}, nil
}

// DeserializeUser returns the authentication middleware. It resolves the
// request's principal (refreshing silently when possible), stores it in the
// gin context, and surfaces a renewed access token via the response header.
// Requests without a usable credential pass through anonymously; gating is
// RequireUser's job.
func DeserializeUser(codec Verifier, reissuer Reissuer, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		access := extractBearer(c.Request.Header.Get("Authorization"))
		refresh := c.GetHeader(RefreshHeader)

		out, err := Authenticate(c.Request.Context(), access, refresh, codec, reissuer)
		if err != nil {
			log.Error("authentication unavailable", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "authentication temporarily unavailable"})
			return
		}
		if out.RenewedAccessToken != "" {
			c.Header(RenewedHeader, out.RenewedAccessToken)
		}
		if out.Principal != nil {
			setPrincipal(c, out.Principal)
		}
		c.Next()
	}
}

// extractBearer returns the Bearer token from an Authorization header value,
// or "" if missing or malformed.
func extractBearer(v string) string {
	v = strings.TrimSpace(v)
	if len(v) < len(bearerPrefix) {
		return ""
	}
	if !strings.EqualFold(v[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(v[len(bearerPrefix):])
}
