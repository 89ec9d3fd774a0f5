package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m-kaif07/esport-tournament-website/models"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func validClaims(userID int, role string) jwt.MapClaims {
	now := time.Now()
	return jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"name":    "tester",
		"iat":     now.Unix(),
		"exp":     now.Add(time.Hour).Unix(),
	}
}

func TestAuthenticateAcceptsBearerToken(t *testing.T) {
	var gotUserID int
	var gotRole models.UserRole

	handler := Authenticate(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error
		gotUserID, err = GetUserIDFromContext(r.Context())
		require.NoError(t, err)
		gotRole, err = GetUserRoleFromContext(r.Context())
		require.NoError(t, err)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, validClaims(17, "admin")))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 17, gotUserID)
	assert.Equal(t, models.RoleAdmin, gotRole)
}

func TestAuthenticateAcceptsQueryToken(t *testing.T) {
	handler := Authenticate(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/ws/me?token="+signToken(t, validClaims(3, "user")), nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthenticateRejectsBadTokens(t *testing.T) {
	handler := Authenticate(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	tests := []struct {
		name  string
		token string
	}{
		{name: "missing token", token: ""},
		{name: "garbage token", token: "not-a-jwt"},
		{
			name: "wrong signature",
			token: func() string {
				tok := jwt.NewWithClaims(jwt.SigningMethodHS256, validClaims(1, "user"))
				signed, err := tok.SignedString([]byte("other-secret"))
				require.NoError(t, err)
				return signed
			}(),
		},
		{
			name: "expired",
			token: signToken(t, jwt.MapClaims{
				"user_id": 1,
				"role":    "user",
				"exp":     time.Now().Add(-time.Hour).Unix(),
			}),
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.token != "" {
				req.Header.Set("Authorization", "Bearer "+tc.token)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestAuthorizeRoles(t *testing.T) {
	protected := Authenticate(testSecret)(Authorize(models.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	adminReq := httptest.NewRequest(http.MethodPost, "/admin/tournaments", nil)
	adminReq.Header.Set("Authorization", "Bearer "+signToken(t, validClaims(1, "admin")))
	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, adminReq)
	assert.Equal(t, http.StatusOK, rec.Code)

	userReq := httptest.NewRequest(http.MethodPost, "/admin/tournaments", nil)
	userReq.Header.Set("Authorization", "Bearer "+signToken(t, validClaims(2, "user")))
	rec = httptest.NewRecorder()
	protected.ServeHTTP(rec, userReq)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGetUserIDFromContextRejectsMissingClaims(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := GetUserIDFromContext(req.Context())
	assert.Error(t, err)
}
