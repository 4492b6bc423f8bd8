package appctx

import (
	"context"

	"slackhub/models"
)

// Context keys for request-scoped entities
type contextKey string

const (
	ActorContextKey        contextKey = "actor"
	UserContextKey         contextKey = "user"
	OrganizationContextKey contextKey = "organization"
)

// SetActor adds the authenticated actor to the request context
func SetActor(ctx context.Context, actor *models.Actor) context.Context {
	return context.WithValue(ctx, ActorContextKey, actor)
}

// GetActor extracts the authenticated actor from the request context
func GetActor(ctx context.Context) (*models.Actor, bool) {
	actor, ok := ctx.Value(ActorContextKey).(*models.Actor)
	return actor, ok
}

// SetUser adds the user entity to the request context. Machine-identity
// requests carry no user.
func SetUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, UserContextKey, user)
}

// GetUser extracts the user entity from the request context
func GetUser(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(UserContextKey).(*models.User)
	return user, ok
}

// SetOrganization adds the organization entity to the request context
func SetOrganization(ctx context.Context, org *models.Organization) context.Context {
	return context.WithValue(ctx, OrganizationContextKey, org)
}

// GetOrganization extracts the organization entity from the request context
func GetOrganization(ctx context.Context) (*models.Organization, bool) {
	org, ok := ctx.Value(OrganizationContextKey).(*models.Organization)
	return org, ok
}
