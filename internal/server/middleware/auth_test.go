package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"storefront/internal/security"
	sessionservice "storefront/internal/session/service"
)

type stubReissuer struct {
	token string
	err   error
	calls int
}

func (s *stubReissuer) ReissueAccessToken(_ context.Context, _ string) (string, error) {
	s.calls++
	return s.token, s.err
}

func testCodec(t *testing.T) *security.TokenCodec {
	t.Helper()
	codec, err := security.NewTestCodec()
	require.NoError(t, err)
	return codec
}

func signToken(t *testing.T, codec *security.TokenCodec, ttl time.Duration) string {
	t.Helper()
	p := security.Principal{
		Email:     "jane.doe@example.com",
		Name:      "Jane Doe",
		SessionID: "s1",
	}
	p.Subject = "u1"
	token, err := codec.Sign(p, ttl)
	require.NoError(t, err)
	return token
}

func TestAuthenticateValidAccessToken(t *testing.T) {
	codec := testCodec(t)
	reissuer := &stubReissuer{}

	out, err := Authenticate(context.Background(), signToken(t, codec, time.Minute), "", codec, reissuer)
	require.NoError(t, err)
	require.NotNil(t, out.Principal)
	assert.Equal(t, "u1", out.Principal.UserID())
	assert.Equal(t, "s1", out.Principal.SessionID)
	assert.Empty(t, out.RenewedAccessToken)
	assert.Zero(t, reissuer.calls)
}

func TestAuthenticateNoAccessToken(t *testing.T) {
	codec := testCodec(t)
	reissuer := &stubReissuer{}

	out, err := Authenticate(context.Background(), "", "some-refresh", codec, reissuer)
	require.NoError(t, err)
	assert.Nil(t, out.Principal)
	assert.Zero(t, reissuer.calls)
}

func TestAuthenticateInvalidAccessTokenSkipsRefresh(t *testing.T) {
	codec := testCodec(t)
	reissuer := &stubReissuer{token: signToken(t, codec, time.Minute)}

	out, err := Authenticate(context.Background(), "not-a-token", "some-refresh", codec, reissuer)
	require.NoError(t, err)
	assert.Nil(t, out.Principal)
	assert.Zero(t, reissuer.calls)
}

func TestAuthenticateExpiredWithoutRefresh(t *testing.T) {
	codec := testCodec(t)
	reissuer := &stubReissuer{}

	out, err := Authenticate(context.Background(), signToken(t, codec, -time.Minute), "", codec, reissuer)
	require.NoError(t, err)
	assert.Nil(t, out.Principal)
	assert.Zero(t, reissuer.calls)
}

func TestAuthenticateSilentRefresh(t *testing.T) {
	codec := testCodec(t)
	renewed := signToken(t, codec, time.Minute)
	reissuer := &stubReissuer{token: renewed}

	out, err := Authenticate(context.Background(), signToken(t, codec, -time.Minute), "refresh-token", codec, reissuer)
	require.NoError(t, err)
	require.NotNil(t, out.Principal)
	assert.Equal(t, "u1", out.Principal.UserID())
	assert.Equal(t, renewed, out.RenewedAccessToken)
	assert.Equal(t, 1, reissuer.calls)
}

func TestAuthenticateRefusedRefresh(t *testing.T) {
	codec := testCodec(t)
	reissuer := &stubReissuer{err: sessionservice.ErrReissueRefused}

	out, err := Authenticate(context.Background(), signToken(t, codec, -time.Minute), "refresh-token", codec, reissuer)
	require.NoError(t, err)
	assert.Nil(t, out.Principal)
	assert.Empty(t, out.RenewedAccessToken)
}

func TestAuthenticateInfrastructureError(t *testing.T) {
	codec := testCodec(t)
	storeErr := errors.New("load session: connection refused")
	reissuer := &stubReissuer{err: storeErr}

	_, err := Authenticate(context.Background(), signToken(t, codec, -time.Minute), "refresh-token", codec, reissuer)
	require.Error(t, err)
	assert.ErrorIs(t, err, storeErr)
}

func newAuthRouter(t *testing.T, codec *security.TokenCodec, reissuer Reissuer) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(DeserializeUser(codec, reissuer, zap.NewNop()))
	r.GET("/whoami", func(c *gin.Context) {
		p := PrincipalFromContext(c)
		if p == nil {
			c.JSON(http.StatusOK, gin.H{"user": nil})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": p.UserID()})
	})
	r.GET("/private", RequireUser(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestDeserializeUserAttachesPrincipal(t *testing.T) {
	codec := testCodec(t)
	r := newAuthRouter(t, codec, &stubReissuer{})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, codec, time.Minute))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":"u1"}`, w.Body.String())
	assert.Empty(t, w.Header().Get(RenewedHeader))
}

func TestDeserializeUserRenewalHeader(t *testing.T) {
	codec := testCodec(t)
	renewed := signToken(t, codec, time.Minute)
	r := newAuthRouter(t, codec, &stubReissuer{token: renewed})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, codec, -time.Minute))
	req.Header.Set(RefreshHeader, "refresh-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":"u1"}`, w.Body.String())
	assert.Equal(t, renewed, w.Header().Get(RenewedHeader))
}

func TestDeserializeUserInfrastructureErrorAborts(t *testing.T) {
	codec := testCodec(t)
	r := newAuthRouter(t, codec, &stubReissuer{err: errors.New("db down")})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, codec, -time.Minute))
	req.Header.Set(RefreshHeader, "refresh-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRequireUser(t *testing.T) {
	codec := testCodec(t)
	r := newAuthRouter(t, codec, &stubReissuer{})

	t.Run("anonymous is forbidden", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private", nil))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("authenticated passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, codec, time.Minute))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestExtractBearer(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"standard", "Bearer abc.def.ghi", "abc.def.ghi"},
		{"lowercase scheme", "bearer token123", "token123"},
		{"missing", "", ""},
		{"wrong scheme", "Basic dXNlcjpwYXNz", ""},
		{"scheme only", "Bearer ", ""},
		{"padded", "  Bearer   tok  ", "tok"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, extractBearer(tc.in))
		})
	}
}
