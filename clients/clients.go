package clients

import (
	"net/http"

	"github.com/samber/mo"

	"slackhub/oauthstate"
)

// OAuthV2Response contains the fields of the Slack oauth.v2.access response the
// service cares about
type OAuthV2Response struct {
	TeamID      string
	TeamName    string
	AccessToken string
}

// SlackOAuthClient defines the Slack operations needed for the OAuth code exchange
type SlackOAuthClient interface {
	GetOAuthV2Response(
		httpClient *http.Client,
		clientID, clientSecret, code, redirectURL string,
	) (*OAuthV2Response, error)
}

// SlackInstallation is the outcome of a successful callback code exchange.
// Metadata is a JSON-encoded string of the verified state claims and carries
// at least the owning organization's id under "orgId".
type SlackInstallation struct {
	TeamID      string
	TeamName    string
	AccessToken string
	Metadata    string
}

// SlackInstaller performs the provider-specific halves of the OAuth flow:
// building the authorization URL and consuming the provider's raw callback.
// HandleCallback returns an explicit two-variant result rather than invoking
// success/failure continuations.
type SlackInstaller interface {
	BuildInstallURL(claims oauthstate.StateClaims) (string, error)
	HandleCallback(r *http.Request) mo.Result[*SlackInstallation]
}
