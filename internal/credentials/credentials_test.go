package credentials

import (
	"strings"
	"testing"
)

func TestValidateTokenFormat(t *testing.T) {
	cases := []struct {
		name    string
		token   string
		wantErr bool
	}{
		{"valid colon prefix", "perm:dXNlcg==.NDYtMQ==.abcdefgh", false},
		{"valid dash prefix", "perm-dXNlcg==.NDYtMQ==.abcdefgh", false},
		{"leading whitespace trimmed", "  perm:dXNlcg==.NDYtMQ==.abcdefgh  ", false},
		{"empty", "", true},
		{"wrong prefix", "token:dXNlcg==.NDYtMQ==", true},
		{"too short", "perm:abc", true},
		{"embedded whitespace", "perm:dXNlcg== NDYtMQ==", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateTokenFormat(tc.token)
			if tc.wantErr && err == nil {
				t.Errorf("ValidateTokenFormat(%q) = nil, want error", tc.token)
			}
			if !tc.wantErr && err != nil {
				t.Errorf("ValidateTokenFormat(%q) = %v, want nil", tc.token, err)
			}
		})
	}
}

func TestMockManagerLifecycle(t *testing.T) {
	m := NewMockManager()

	if m.HasToken() {
		t.Error("fresh mock should have no token")
	}
	if _, err := m.GetToken(); err == nil {
		t.Error("GetToken on empty mock should fail")
	}

	token := "perm:dXNlcg==.NDYtMQ==.abcdefgh"
	if err := m.StoreToken(token); err != nil {
		t.Fatalf("StoreToken failed: %v", err)
	}
	if !m.HasToken() {
		t.Error("HasToken should report true after store")
	}

	got, err := m.GetToken()
	if err != nil {
		t.Fatalf("GetToken failed: %v", err)
	}
	if got != token {
		t.Errorf("GetToken = %q, want %q", got, token)
	}

	if err := m.DeleteToken(); err != nil {
		t.Fatalf("DeleteToken failed: %v", err)
	}
	if m.HasToken() {
		t.Error("HasToken should report false after delete")
	}
}

func TestMockManagerRejectsMalformedTokens(t *testing.T) {
	m := NewMockManager()

	err := m.StoreToken("not-a-token")
	if err == nil {
		t.Fatal("expected malformed token to be rejected")
	}
	if !strings.Contains(err.Error(), "perm") {
		t.Errorf("error should mention the expected prefix, got %v", err)
	}
	if m.HasToken() {
		t.Error("rejected token must not be stored")
	}
}

var _ Store = (*Manager)(nil)
var _ Store = (*MockManager)(nil)
