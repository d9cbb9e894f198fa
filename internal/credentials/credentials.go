package credentials

import (
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// Service name for OS credential store
	credentialService = "ytmenu"
	// Key for the YouTrack permanent token
	youtrackTokenKey = "youtrack_token"
)

// Manager handles secure storage and retrieval of the YouTrack permanent
// token. The token never lands in the config file; it lives in the OS
// credential store and is exported to the external MCP client process as
// YOUTRACK_API_TOKEN at invocation time.
type Manager struct {
	service string
}

// NewManager creates a new credential manager instance
func NewManager() *Manager {
	return &Manager{
		service: credentialService,
	}
}

// StoreToken securely stores a YouTrack permanent token in the OS credential
// store. The token is validated before storage.
func (m *Manager) StoreToken(token string) error {
	if strings.TrimSpace(token) == "" {
		return fmt.Errorf("token cannot be empty")
	}

	if err := ValidateTokenFormat(token); err != nil {
		return fmt.Errorf("invalid token format: %w", err)
	}

	if err := keyring.Set(m.service, youtrackTokenKey, token); err != nil {
		return fmt.Errorf("failed to store token in credential store: %w", err)
	}

	return nil
}

// GetToken retrieves the stored YouTrack token from the OS credential store.
func (m *Manager) GetToken() (string, error) {
	token, err := keyring.Get(m.service, youtrackTokenKey)
	if err != nil {
		if err == keyring.ErrNotFound {
			return "", fmt.Errorf("no YouTrack token found - configure one in Settings")
		}
		return "", fmt.Errorf("failed to retrieve token from credential store: %w", err)
	}

	if strings.TrimSpace(token) == "" {
		return "", fmt.Errorf("stored token is empty - configure a new one in Settings")
	}

	return token, nil
}

// DeleteToken removes the stored token from the OS credential store.
// Returns nil if no token is stored.
func (m *Manager) DeleteToken() error {
	err := keyring.Delete(m.service, youtrackTokenKey)
	if err != nil && err != keyring.ErrNotFound {
		return fmt.Errorf("failed to delete token from credential store: %w", err)
	}
	return nil
}

// HasToken checks if a token is stored without retrieving it.
func (m *Manager) HasToken() bool {
	_, err := keyring.Get(m.service, youtrackTokenKey)
	return err == nil
}

// ValidateTokenFormat validates that the token matches YouTrack permanent
// token format expectations. YouTrack issues tokens with a "perm:" or "perm-"
// prefix followed by dot-separated base64 segments.
func ValidateTokenFormat(token string) error {
	token = strings.TrimSpace(token)

	if !strings.HasPrefix(token, "perm:") && !strings.HasPrefix(token, "perm-") {
		return fmt.Errorf("YouTrack permanent tokens start with 'perm:' or 'perm-'")
	}

	body := token[len("perm:"):]
	if len(body) < 10 {
		return fmt.Errorf("token is too short to be valid")
	}

	if strings.ContainsAny(token, " \t\r\n") {
		return fmt.Errorf("token must not contain whitespace")
	}

	return nil
}

// MockManager is a test double that keeps tokens in memory. It mirrors the
// Manager API so TUI flows can be exercised without touching the OS keyring.
type MockManager struct {
	token string
}

func NewMockManager() *MockManager { return &MockManager{} }

func (m *MockManager) StoreToken(token string) error {
	if err := ValidateTokenFormat(token); err != nil {
		return err
	}
	m.token = token
	return nil
}

func (m *MockManager) GetToken() (string, error) {
	if m.token == "" {
		return "", fmt.Errorf("no YouTrack token found")
	}
	return m.token, nil
}

func (m *MockManager) DeleteToken() error {
	m.token = ""
	return nil
}

func (m *MockManager) HasToken() bool { return m.token != "" }

// Store is the interface shared by Manager and MockManager.
type Store interface {
	StoreToken(token string) error
	GetToken() (string, error)
	DeleteToken() error
	HasToken() bool
}
