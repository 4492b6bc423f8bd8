package organizations

import (
	"context"
	"fmt"
	"log"

	"github.com/samber/mo"

	"slackhub/core"
	"slackhub/db"
	"slackhub/models"
)

type OrganizationsService struct {
	organizationsRepo *db.PostgresOrganizationsRepository
}

func NewOrganizationsService(repo *db.PostgresOrganizationsRepository) *OrganizationsService {
	return &OrganizationsService{organizationsRepo: repo}
}

func (s *OrganizationsService) CreateOrganization(ctx context.Context) (*models.Organization, error) {
	log.Printf("📋 Starting to create organization")

	organization := &models.Organization{
		ID: models.OrgID(core.NewID("org")),
	}
	if err := s.organizationsRepo.CreateOrganization(ctx, organization); err != nil {
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}

	log.Printf("📋 Completed successfully - created organization with ID: %s", organization.ID)
	return organization, nil
}

func (s *OrganizationsService) GetOrganizationByID(
	ctx context.Context,
	id models.OrgID,
) (mo.Option[*models.Organization], error) {
	log.Printf("📋 Starting to get organization by ID: %s", id)
	if !core.IsValidULID(string(id)) {
		return mo.None[*models.Organization](), fmt.Errorf("organization ID must be a valid ULID")
	}

	organizationOpt, err := s.organizationsRepo.GetOrganizationByID(ctx, id)
	if err != nil {
		return mo.None[*models.Organization](), fmt.Errorf("failed to get organization by ID: %w", err)
	}

	if !organizationOpt.IsPresent() {
		log.Printf("📋 Completed successfully - organization not found")
		return mo.None[*models.Organization](), nil
	}

	log.Printf("📋 Completed successfully - found organization: %s", id)
	return organizationOpt, nil
}

func (s *OrganizationsService) GetOrganizationBySecretKey(
	ctx context.Context,
	secretKey string,
) (mo.Option[*models.Organization], error) {
	log.Printf("📋 Starting to get organization by secret key")
	if secretKey == "" {
		return mo.None[*models.Organization](), fmt.Errorf("secret key cannot be empty")
	}

	organizationOpt, err := s.organizationsRepo.GetOrganizationBySecretKey(ctx, secretKey)
	if err != nil {
		return mo.None[*models.Organization](), fmt.Errorf("failed to get organization by secret key: %w", err)
	}

	if !organizationOpt.IsPresent() {
		log.Printf("📋 Completed successfully - organization not found")
		return mo.None[*models.Organization](), nil
	}

	log.Printf("📋 Completed successfully - found organization by secret key")
	return organizationOpt, nil
}

func (s *OrganizationsService) GenerateSecretKey(
	ctx context.Context,
	organizationID models.OrgID,
) (string, error) {
	log.Printf("📋 Starting to generate secret key for organization: %s", organizationID)
	if !core.IsValidULID(string(organizationID)) {
		return "", fmt.Errorf("organization ID must be a valid ULID")
	}

	secretKey, err := core.NewSecretKey("sk")
	if err != nil {
		return "", fmt.Errorf("failed to generate secret key: %w", err)
	}

	if err := s.organizationsRepo.UpdateSecretKey(ctx, organizationID, secretKey); err != nil {
		return "", fmt.Errorf("failed to store organization secret key: %w", err)
	}

	log.Printf("📋 Completed successfully - generated secret key for organization: %s", organizationID)
	return secretKey, nil
}
