package api

import "slackhub/models"

// DomainUserToAPIUser converts a domain User model to an API UserModel
func DomainUserToAPIUser(domainUser *models.User) *UserModel {
	if domainUser == nil {
		return nil
	}

	return &UserModel{
		ID:             domainUser.ID,
		Email:          domainUser.Email,
		OrganizationID: string(domainUser.OrganizationID),
		CreatedAt:      domainUser.CreatedAt,
		UpdatedAt:      domainUser.UpdatedAt,
	}
}

// DomainSlackIntegrationToAPISlackIntegration converts a domain SlackIntegration model
// to an API SlackIntegrationModel
func DomainSlackIntegrationToAPISlackIntegration(domainIntegration *models.SlackIntegration) *SlackIntegrationModel {
	if domainIntegration == nil {
		return nil
	}

	return &SlackIntegrationModel{
		ID:            domainIntegration.ID,
		Slug:          domainIntegration.Slug,
		Description:   domainIntegration.Description,
		SlackTeamName: domainIntegration.SlackTeamName,
		CreatedAt:     domainIntegration.CreatedAt,
		UpdatedAt:     domainIntegration.UpdatedAt,
	}
}

// DomainSlackIntegrationsToAPISlackIntegrations converts a slice of domain
// SlackIntegration models to API models
func DomainSlackIntegrationsToAPISlackIntegrations(
	domainIntegrations []*models.SlackIntegration,
) []*SlackIntegrationModel {
	apiIntegrations := make([]*SlackIntegrationModel, 0, len(domainIntegrations))
	for _, integration := range domainIntegrations {
		apiIntegrations = append(apiIntegrations, DomainSlackIntegrationToAPISlackIntegration(integration))
	}
	return apiIntegrations
}
