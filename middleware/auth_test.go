package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"slackhub/appctx"
	"slackhub/core"
	"slackhub/models"
	"slackhub/services/organizations"
	"slackhub/services/users"
)

func TestWithAuthSecretKey(t *testing.T) {
	secretKey := "sk_test-secret-key"

	t.Run("Valid secret key resolves a machine identity", func(t *testing.T) {
		mockUsers := &users.MockUsersService{}
		mockOrgs := &organizations.MockOrganizationsService{}
		organizationID := models.OrgID(core.NewID("org"))
		organization := &models.Organization{ID: organizationID}

		mockOrgs.On("GetOrganizationBySecretKey", mock.Anything, secretKey).
			Return(mo.Some(organization), nil)

		m := NewClerkAuthMiddleware(mockUsers, mockOrgs, "clerk-secret")

		var capturedActor *models.Actor
		handler := m.WithAuth(func(w http.ResponseWriter, r *http.Request) {
			capturedActor, _ = appctx.GetActor(r.Context())
			w.WriteHeader(http.StatusOK)
		})

		r := httptest.NewRequest(http.MethodGet, "/slack/integrations", nil)
		r.Header.Set("X-API-Key", secretKey)
		w := httptest.NewRecorder()
		handler(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, capturedActor)
		assert.Equal(t, models.ActorTypeIdentity, capturedActor.Type)
		assert.Equal(t, models.AuthMethodAccessToken, capturedActor.AuthMethod)
		assert.Equal(t, organizationID, capturedActor.OrganizationID)
		mockOrgs.AssertExpectations(t)
	})

	t.Run("Unknown secret key is unauthorized", func(t *testing.T) {
		mockUsers := &users.MockUsersService{}
		mockOrgs := &organizations.MockOrganizationsService{}

		mockOrgs.On("GetOrganizationBySecretKey", mock.Anything, secretKey).
			Return(mo.None[*models.Organization](), nil)

		m := NewClerkAuthMiddleware(mockUsers, mockOrgs, "clerk-secret")
		handler := m.WithAuth(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not be reached")
		})

		r := httptest.NewRequest(http.MethodGet, "/slack/integrations", nil)
		r.Header.Set("X-API-Key", secretKey)
		w := httptest.NewRecorder()
		handler(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestWithAuthMissingCredentials(t *testing.T) {
	t.Run("No credentials at all", func(t *testing.T) {
		m := NewClerkAuthMiddleware(&users.MockUsersService{}, &organizations.MockOrganizationsService{}, "clerk-secret")
		handler := m.WithAuth(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not be reached")
		})

		r := httptest.NewRequest(http.MethodGet, "/slack/integrations", nil)
		w := httptest.NewRecorder()
		handler(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Malformed authorization header", func(t *testing.T) {
		m := NewClerkAuthMiddleware(&users.MockUsersService{}, &organizations.MockOrganizationsService{}, "clerk-secret")
		handler := m.WithAuth(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not be reached")
		})

		r := httptest.NewRequest(http.MethodGet, "/slack/integrations", nil)
		r.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		w := httptest.NewRecorder()
		handler(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestWithAuthTestingMode(t *testing.T) {
	t.Run("Testing mode provisions a synthetic actor", func(t *testing.T) {
		t.Setenv("TESTING_MODE", "true")

		m := NewClerkAuthMiddleware(&users.MockUsersService{}, &organizations.MockOrganizationsService{}, "clerk-secret")

		var capturedActor *models.Actor
		handler := m.WithAuth(func(w http.ResponseWriter, r *http.Request) {
			capturedActor, _ = appctx.GetActor(r.Context())
			w.WriteHeader(http.StatusOK)
		})

		r := httptest.NewRequest(http.MethodGet, "/slack/integrations", nil)
		w := httptest.NewRecorder()
		handler(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, capturedActor)
		assert.Equal(t, models.ActorTypeUser, capturedActor.Type)
		assert.True(t, core.IsValidULID(string(capturedActor.OrganizationID)))
	})
}
