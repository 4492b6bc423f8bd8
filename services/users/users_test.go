package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"slackhub/services/organizations"
	"slackhub/services/txmanager"
)

func TestGetOrCreateUserValidation(t *testing.T) {
	ctx := context.Background()
	service := NewUsersService(nil, &organizations.MockOrganizationsService{}, &txmanager.MockTransactionManager{})

	t.Run("Empty auth provider rejected", func(t *testing.T) {
		user, err := service.GetOrCreateUser(ctx, "", "user_123", "dev@example.com")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "auth_provider")
		assert.Nil(t, user)
	})

	t.Run("Empty auth provider ID rejected", func(t *testing.T) {
		user, err := service.GetOrCreateUser(ctx, "clerk", "", "dev@example.com")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "auth_provider_id")
		assert.Nil(t, user)
	})
}
