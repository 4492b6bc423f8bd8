package api

import (
	"time"
)

// SlackIntegrationModel represents the slack integration data returned by the API.
// Tokens are intentionally absent from this projection.
type SlackIntegrationModel struct {
	ID            string    `json:"id"`
	Slug          string    `json:"slug"`
	Description   *string   `json:"description,omitempty"`
	SlackTeamName *string   `json:"slack_team_name,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
