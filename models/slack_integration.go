package models

import (
	"time"
)

// SlackIntegration is one organization's link to a Slack workspace. Team fields
// and the bot token are populated only after the OAuth callback succeeds; the
// token never leaves the service.
type SlackIntegration struct {
	ID             string    `db:"id"              json:"id"`
	OrganizationID OrgID     `db:"organization_id" json:"organization_id"`
	Slug           string    `db:"slug"            json:"slug"`
	Description    *string   `db:"description"     json:"description,omitempty"`
	SlackTeamID    *string   `db:"slack_team_id"   json:"slack_team_id,omitempty"`
	SlackTeamName  *string   `db:"slack_team_name" json:"slack_team_name,omitempty"`
	SlackBotToken  *string   `db:"slack_bot_token" json:"-"`
	CreatedAt      time.Time `db:"created_at"      json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"      json:"updated_at"`
}

// SlackIntegrationUpdate carries the mutable fields of an integration. Nil
// fields are left unchanged.
type SlackIntegrationUpdate struct {
	Slug        *string
	Description *string
}
