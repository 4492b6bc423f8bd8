package oauthstate

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"slackhub/core"
	"slackhub/models"
)

// Operation distinguishes how a completed callback is persisted: install
// creates a new integration record, reinstall refreshes an existing one.
type Operation string

const (
	OperationInstall   Operation = "install"
	OperationReinstall Operation = "reinstall"
)

const (
	issuer     = "slackhub"
	defaultTTL = 10 * time.Minute
	minSecret  = 32
)

// StateClaims is the self-contained payload round-tripped through Slack's
// `state` parameter. It binds a callback to the exact request that initiated
// it without any server-side pending-flow storage; expiry is enforced by the
// token itself.
type StateClaims struct {
	jwt.RegisteredClaims
	OrgID              string    `json:"orgId"`
	ActorType          string    `json:"actorType"`
	ActorID            string    `json:"actorId"`
	AuthMethod         string    `json:"authMethod"`
	Operation          Operation `json:"operation"`
	Slug               string    `json:"slug,omitempty"`
	Description        string    `json:"description,omitempty"`
	SlackIntegrationID string    `json:"slackIntegrationId,omitempty"`
}

// Signer issues and verifies HMAC-signed state tokens
type Signer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSigner(secret string) (*Signer, error) {
	if len(secret) < minSecret {
		return nil, fmt.Errorf("state secret must be at least %d bytes", minSecret)
	}
	return &Signer{
		secret: []byte(secret),
		ttl:    defaultTTL,
		now:    time.Now,
	}, nil
}

// NewInstallClaims builds the state payload for a fresh install flow
func NewInstallClaims(actor *models.Actor, slug, description string) StateClaims {
	return StateClaims{
		OrgID:       string(actor.OrganizationID),
		ActorType:   string(actor.Type),
		ActorID:     actor.ID,
		AuthMethod:  string(actor.AuthMethod),
		Operation:   OperationInstall,
		Slug:        slug,
		Description: description,
	}
}

// NewReinstallClaims builds the state payload for a token refresh of an
// existing integration
func NewReinstallClaims(actor *models.Actor, integrationID string) StateClaims {
	return StateClaims{
		OrgID:              string(actor.OrganizationID),
		ActorType:          string(actor.Type),
		ActorID:            actor.ID,
		AuthMethod:         string(actor.AuthMethod),
		Operation:          OperationReinstall,
		SlackIntegrationID: integrationID,
	}
}

// Issue signs the claims into a compact state token with a fresh jti and the
// signer's validity window
func (s *Signer) Issue(claims StateClaims) (string, error) {
	if claims.OrgID == "" {
		return "", fmt.Errorf("state claims must carry an organization ID")
	}
	if claims.Operation != OperationInstall && claims.Operation != OperationReinstall {
		return "", fmt.Errorf("unknown state operation: %q", claims.Operation)
	}

	now := s.now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Issuer:    issuer,
		ID:        core.NewID("state"),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign state token: %w", err)
	}
	return token, nil
}

// Verify checks the token's signature, issuer and expiry and returns the
// embedded claims. Any tampering, expiry or algorithm confusion fails here.
func (s *Signer) Verify(token string) (*StateClaims, error) {
	claims := &StateClaims{}
	_, err := jwt.ParseWithClaims(
		token,
		claims,
		func(t *jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to verify state token: %w", err)
	}

	if claims.OrgID == "" {
		return nil, fmt.Errorf("state token is missing an organization ID")
	}
	if claims.Operation != OperationInstall && claims.Operation != OperationReinstall {
		return nil, fmt.Errorf("state token carries an unknown operation: %q", claims.Operation)
	}
	if claims.Operation == OperationReinstall && claims.SlackIntegrationID == "" {
		return nil, fmt.Errorf("reinstall state token is missing the target integration ID")
	}

	return claims, nil
}
