package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-LessonBooking/pkg/adminauth"
	"github.com/m04kA/SMC-LessonBooking/pkg/logger"
)

func newAuthority(t *testing.T) *adminauth.Authority {
	t.Helper()
	hash, err := adminauth.HashPassword("secret", bcrypt.MinCost)
	require.NoError(t, err)
	a, err := adminauth.NewAuthority(hash, "jwt", time.Minute)
	require.NoError(t, err)
	return a
}

func grantEcho(t *testing.T, called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		assert.NoError(t, adminauth.Require(adminauth.GrantFromContext(r.Context())))
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAdminAuth_AcceptsValidToken(t *testing.T) {
	authority := newAuthority(t)
	token, err := authority.Login("secret")
	require.NoError(t, err)

	called := false
	h := AdminAuth(authority, logger.Nop())(grantEcho(t, &called))

	req := httptest.NewRequest(http.MethodGet, "/admin/bookings", nil)
	req.Header.Set("Authorization", "Bearer "+token.Value)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.True(t, called)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestAdminAuth_RejectsMissingOrInvalidToken(t *testing.T) {
	authority := newAuthority(t)

	for name, header := range map[string]string{
		"missing": "",
		"scheme":  "Basic abc",
		"garbage": "Bearer not-a-jwt",
	} {
		t.Run(name, func(t *testing.T) {
			called := false
			h := AdminAuth(authority, logger.Nop())(grantEcho(t, &called))

			req := httptest.NewRequest(http.MethodGet, "/admin/bookings", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.False(t, called)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

type fakeVerifier struct{}

func (fakeVerifier) Verify(string) (adminauth.Grant, error) {
	return adminauth.Grant{}, errors.New("nope")
}

func TestAdminAuth_VerifierError(t *testing.T) {
	called := false
	h := AdminAuth(fakeVerifier{}, logger.Nop())(grantEcho(t, &called))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer x")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

type httpObservation struct {
	method, route, status string
}

type fakeHTTPRecorder struct {
	seen []httpObservation
}

func (f *fakeHTTPRecorder) ObserveHTTPRequest(method, route, status string, _ time.Duration) {
	f.seen = append(f.seen, httpObservation{method, route, status})
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	rec := &fakeHTTPRecorder{}
	r := mux.NewRouter()
	r.Use(MetricsMiddleware(rec))
	r.HandleFunc("/bookings/{bookingId}/cancel", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}).Methods(http.MethodPost)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/bookings/17/cancel", nil))

	require.Len(t, rec.seen, 1)
	assert.Equal(t, httpObservation{"POST", "/bookings/{bookingId}/cancel", "409"}, rec.seen[0])
}
