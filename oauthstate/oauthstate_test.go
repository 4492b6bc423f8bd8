package oauthstate

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slackhub/models"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func createTestActor(organizationID string) *models.Actor {
	return &models.Actor{
		Type:           models.ActorTypeUser,
		ID:             "u_01G0EZ1XTM37C5X11SQTDNCTM1",
		AuthMethod:     models.AuthMethodJWT,
		OrganizationID: models.OrgID(organizationID),
	}
}

func createTestSigner(t *testing.T) *Signer {
	signer, err := NewSigner(testSecret)
	require.NoError(t, err)
	return signer
}

func TestNewSigner(t *testing.T) {
	t.Run("Valid secret", func(t *testing.T) {
		signer, err := NewSigner(testSecret)

		require.NoError(t, err)
		assert.NotNil(t, signer)
	})

	t.Run("Secret too short", func(t *testing.T) {
		signer, err := NewSigner("tooshort")

		assert.Error(t, err)
		assert.Nil(t, signer)
	})
}

func TestIssueAndVerify(t *testing.T) {
	actor := createTestActor("org_01G0EZ1XTM37C5X11SQTDNCTM1")

	t.Run("Install claims round-trip", func(t *testing.T) {
		signer := createTestSigner(t)

		token, err := signer.Issue(NewInstallClaims(actor, "engineering", "Team workspace"))
		require.NoError(t, err)
		assert.NotEmpty(t, token)

		claims, err := signer.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, "org_01G0EZ1XTM37C5X11SQTDNCTM1", claims.OrgID)
		assert.Equal(t, OperationInstall, claims.Operation)
		assert.Equal(t, "engineering", claims.Slug)
		assert.Equal(t, "Team workspace", claims.Description)
		assert.Equal(t, string(models.ActorTypeUser), claims.ActorType)
		assert.Equal(t, actor.ID, claims.ActorID)
		assert.True(t, strings.HasPrefix(claims.ID, "state_"))
	})

	t.Run("Reinstall claims round-trip", func(t *testing.T) {
		signer := createTestSigner(t)

		token, err := signer.Issue(NewReinstallClaims(actor, "si_01G0EZ1XTM37C5X11SQTDNCTM1"))
		require.NoError(t, err)

		claims, err := signer.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, OperationReinstall, claims.Operation)
		assert.Equal(t, "si_01G0EZ1XTM37C5X11SQTDNCTM1", claims.SlackIntegrationID)
	})

	t.Run("Each token gets a fresh ID", func(t *testing.T) {
		signer := createTestSigner(t)
		claims := NewInstallClaims(actor, "engineering", "")

		first, err := signer.Issue(claims)
		require.NoError(t, err)
		second, err := signer.Issue(claims)
		require.NoError(t, err)

		firstClaims, err := signer.Verify(first)
		require.NoError(t, err)
		secondClaims, err := signer.Verify(second)
		require.NoError(t, err)
		assert.NotEqual(t, firstClaims.ID, secondClaims.ID)
	})
}

func TestIssueValidation(t *testing.T) {
	t.Run("Missing organization ID", func(t *testing.T) {
		signer := createTestSigner(t)

		_, err := signer.Issue(StateClaims{Operation: OperationInstall, Slug: "engineering"})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "organization ID")
	})

	t.Run("Unknown operation", func(t *testing.T) {
		signer := createTestSigner(t)

		_, err := signer.Issue(StateClaims{OrgID: "org_01G0EZ1XTM37C5X11SQTDNCTM1", Operation: "uninstall"})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unknown state operation")
	})
}

func TestVerifyRejections(t *testing.T) {
	actor := createTestActor("org_01G0EZ1XTM37C5X11SQTDNCTM1")

	t.Run("Tampered token", func(t *testing.T) {
		signer := createTestSigner(t)
		token, err := signer.Issue(NewInstallClaims(actor, "engineering", ""))
		require.NoError(t, err)

		tampered := token[:len(token)-4] + "AAAA"
		claims, err := signer.Verify(tampered)

		assert.Error(t, err)
		assert.Nil(t, claims)
	})

	t.Run("Wrong secret", func(t *testing.T) {
		signer := createTestSigner(t)
		token, err := signer.Issue(NewInstallClaims(actor, "engineering", ""))
		require.NoError(t, err)

		other, err := NewSigner("ffffffffffffffffffffffffffffffff")
		require.NoError(t, err)
		claims, err := other.Verify(token)

		assert.Error(t, err)
		assert.Nil(t, claims)
	})

	t.Run("Expired token", func(t *testing.T) {
		signer := createTestSigner(t)
		issuedAt := time.Now()
		signer.now = func() time.Time { return issuedAt }

		token, err := signer.Issue(NewInstallClaims(actor, "engineering", ""))
		require.NoError(t, err)

		signer.now = func() time.Time { return issuedAt.Add(11 * time.Minute) }
		claims, err := signer.Verify(token)

		assert.Error(t, err)
		assert.Nil(t, claims)
	})

	t.Run("Garbage input", func(t *testing.T) {
		signer := createTestSigner(t)

		claims, err := signer.Verify("not-a-jwt")

		assert.Error(t, err)
		assert.Nil(t, claims)
	})

	t.Run("Reinstall token missing target integration", func(t *testing.T) {
		signer := createTestSigner(t)
		token, err := signer.Issue(StateClaims{
			OrgID:     "org_01G0EZ1XTM37C5X11SQTDNCTM1",
			Operation: OperationReinstall,
		})
		require.NoError(t, err)

		claims, err := signer.Verify(token)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "target integration ID")
		assert.Nil(t, claims)
	})
}
