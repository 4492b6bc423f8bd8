package slack

import (
	"net/http"

	"github.com/stretchr/testify/mock"

	"slackhub/clients"
)

// MockSlackOAuthClient is a mock implementation of the clients.SlackOAuthClient interface
type MockSlackOAuthClient struct {
	mock.Mock
}

func (m *MockSlackOAuthClient) GetOAuthV2Response(
	httpClient *http.Client,
	clientID, clientSecret, code, redirectURL string,
) (*clients.OAuthV2Response, error) {
	args := m.Called(httpClient, clientID, clientSecret, code, redirectURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clients.OAuthV2Response), args.Error(1)
}
