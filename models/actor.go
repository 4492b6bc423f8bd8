package models

// ActorType identifies the kind of entity making a request
type ActorType string

const (
	ActorTypeUser     ActorType = "user"
	ActorTypeIdentity ActorType = "identity"
)

// AuthMethod identifies how the actor authenticated
type AuthMethod string

const (
	AuthMethodJWT         AuthMethod = "jwt"
	AuthMethodAccessToken AuthMethod = "access_token"
)

// Actor is the authenticated entity behind a request. It is resolved by the
// auth middleware and carried through the request context.
type Actor struct {
	Type           ActorType  `json:"type"`
	ID             string     `json:"id"`
	AuthMethod     AuthMethod `json:"auth_method"`
	OrganizationID OrgID      `json:"organization_id"`
}
