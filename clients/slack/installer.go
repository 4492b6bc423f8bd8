package slack

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/samber/mo"

	"slackhub/clients"
	"slackhub/oauthstate"
)

const slackAuthorizeURL = "https://slack.com/oauth/v2/authorize"

// DefaultScopes are the bot scopes requested on every install
var DefaultScopes = []string{
	"chat:write",
	"chat:write.public",
	"channels:read",
	"team:read",
}

// OAuthInstaller implements clients.SlackInstaller against Slack's OAuth v2
// endpoints. The state parameter is a signed token issued and verified by the
// oauthstate signer, so the callback carries its own authorization.
type OAuthInstaller struct {
	oauthClient  clients.SlackOAuthClient
	signer       *oauthstate.Signer
	clientID     string
	clientSecret string
	redirectURL  string
	scopes       []string
	httpClient   *http.Client
}

func NewOAuthInstaller(
	oauthClient clients.SlackOAuthClient,
	signer *oauthstate.Signer,
	clientID, clientSecret, redirectURL string,
) *OAuthInstaller {
	return &OAuthInstaller{
		oauthClient:  oauthClient,
		signer:       signer,
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURL:  redirectURL,
		scopes:       DefaultScopes,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
	}
}

// BuildInstallURL signs the claims into a state token and constructs the Slack
// authorization URL the caller's browser should be redirected to
func (i *OAuthInstaller) BuildInstallURL(claims oauthstate.StateClaims) (string, error) {
	state, err := i.signer.Issue(claims)
	if err != nil {
		return "", fmt.Errorf("failed to issue state token: %w", err)
	}

	params := url.Values{}
	params.Set("client_id", i.clientID)
	params.Set("scope", strings.Join(i.scopes, ","))
	params.Set("redirect_uri", i.redirectURL)
	params.Set("state", state)

	return slackAuthorizeURL + "?" + params.Encode(), nil
}

// HandleCallback consumes the provider's raw callback request: it verifies the
// state token, exchanges the authorization code, and yields an installation
// whose Metadata is the JSON-encoded verified claims. Every failure mode
// (denial, tampered state, exchange error) comes back as the Err variant.
func (i *OAuthInstaller) HandleCallback(r *http.Request) mo.Result[*clients.SlackInstallation] {
	query := r.URL.Query()

	if denial := query.Get("error"); denial != "" {
		return mo.Err[*clients.SlackInstallation](fmt.Errorf("provider denied the authorization: %s", denial))
	}

	state := query.Get("state")
	if state == "" {
		return mo.Err[*clients.SlackInstallation](fmt.Errorf("callback is missing the state parameter"))
	}
	code := query.Get("code")
	if code == "" {
		return mo.Err[*clients.SlackInstallation](fmt.Errorf("callback is missing the authorization code"))
	}

	claims, err := i.signer.Verify(state)
	if err != nil {
		return mo.Err[*clients.SlackInstallation](fmt.Errorf("state token rejected: %w", err))
	}

	oauthResponse, err := i.oauthClient.GetOAuthV2Response(
		i.httpClient,
		i.clientID,
		i.clientSecret,
		code,
		i.redirectURL,
	)
	if err != nil {
		return mo.Err[*clients.SlackInstallation](fmt.Errorf("failed to exchange OAuth code with Slack: %w", err))
	}

	if oauthResponse.TeamID == "" {
		return mo.Err[*clients.SlackInstallation](fmt.Errorf("team ID not found in Slack OAuth response"))
	}
	if oauthResponse.TeamName == "" {
		return mo.Err[*clients.SlackInstallation](fmt.Errorf("team name not found in Slack OAuth response"))
	}
	if oauthResponse.AccessToken == "" {
		return mo.Err[*clients.SlackInstallation](fmt.Errorf("bot access token not found in Slack OAuth response"))
	}

	metadata, err := json.Marshal(claims)
	if err != nil {
		return mo.Err[*clients.SlackInstallation](fmt.Errorf("failed to encode installation metadata: %w", err))
	}

	return mo.Ok(&clients.SlackInstallation{
		TeamID:      oauthResponse.TeamID,
		TeamName:    oauthResponse.TeamName,
		AccessToken: oauthResponse.AccessToken,
		Metadata:    string(metadata),
	})
}
