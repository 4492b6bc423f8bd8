package users

import (
	"context"
	"fmt"
	"log"

	"slackhub/db"
	"slackhub/models"
	"slackhub/services"
)

type UsersService struct {
	usersRepo            *db.PostgresUsersRepository
	organizationsService services.OrganizationsService
	txManager            services.TransactionManager
}

func NewUsersService(
	repo *db.PostgresUsersRepository,
	organizationsService services.OrganizationsService,
	txManager services.TransactionManager,
) *UsersService {
	return &UsersService{
		usersRepo:            repo,
		organizationsService: organizationsService,
		txManager:            txManager,
	}
}

// GetOrCreateUser resolves the user for an auth provider subject, provisioning
// the user together with a fresh organization on first sight. Runs inside a
// transaction so a concurrent first login cannot create two organizations.
func (s *UsersService) GetOrCreateUser(
	ctx context.Context,
	authProvider, authProviderID, email string,
) (*models.User, error) {
	log.Printf("📋 Starting to get or create user for authProvider: %s, authProviderID: %s",
		authProvider, authProviderID)

	if authProvider == "" {
		return nil, fmt.Errorf("auth_provider cannot be empty")
	}
	if authProviderID == "" {
		return nil, fmt.Errorf("auth_provider_id cannot be empty")
	}

	var user *models.User
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		existing, err := s.usersRepo.GetUserByAuthProvider(txCtx, authProvider, authProviderID, true)
		if err != nil {
			return fmt.Errorf("failed to get user by auth provider: %w", err)
		}
		if existing != nil {
			user = existing
			return nil
		}

		organization, err := s.organizationsService.CreateOrganization(txCtx)
		if err != nil {
			return fmt.Errorf("failed to create organization for new user: %w", err)
		}

		created, err := s.usersRepo.CreateUser(txCtx, authProvider, authProviderID, email, organization.ID)
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		user = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("📋 Completed successfully - retrieved/created user with ID: %s", user.ID)
	return user, nil
}
