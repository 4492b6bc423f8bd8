package slack

import (
	"net/http"

	"github.com/samber/mo"
	"github.com/stretchr/testify/mock"

	"slackhub/clients"
	"slackhub/oauthstate"
)

// MockSlackInstaller is a mock implementation of the clients.SlackInstaller interface
type MockSlackInstaller struct {
	mock.Mock
}

func (m *MockSlackInstaller) BuildInstallURL(claims oauthstate.StateClaims) (string, error) {
	args := m.Called(claims)
	return args.String(0), args.Error(1)
}

func (m *MockSlackInstaller) HandleCallback(r *http.Request) mo.Result[*clients.SlackInstallation] {
	args := m.Called(r)
	return args.Get(0).(mo.Result[*clients.SlackInstallation])
}
