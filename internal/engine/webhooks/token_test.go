package webhooks

import (
	"strings"
	"testing"
)

func TestGenerateToken(t *testing.T) {
	token, err := GenerateToken()
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}

	if !strings.HasPrefix(token, "ppt_") {
		t.Errorf("Expected ppt_ prefix, got %q", token)
	}
	// 4 prefix chars + 48 hex chars for 24 bytes.
	if len(token) != 52 {
		t.Errorf("Expected 52 char token, got %d: %q", len(token), token)
	}
	for _, c := range token[4:] {
		if !strings.ContainsRune("0123456789abcdef", c) {
			t.Fatalf("Expected hex suffix, got %q", token)
		}
	}
}

func TestGenerateTokenUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := GenerateToken()
		if err != nil {
			t.Fatalf("GenerateToken returned error: %v", err)
		}
		if seen[token] {
			t.Fatalf("Duplicate token generated: %q", token)
		}
		seen[token] = true
	}
}

func TestMaskToken(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		expected string
	}{
		{
			name:     "full token",
			token:    "ppt_0123456789abcdef0123456789abcdef0123456789abcdef",
			expected: "ppt_01...cdef",
		},
		{
			name:     "short value passes through",
			token:    "ppt_012345",
			expected: "ppt_012345",
		},
		{
			name:     "empty",
			token:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MaskToken(tt.token); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}
