package store

import (
	"testing"
)

// TestEncode tests the record representation of each command variant
func TestEncode(t *testing.T) {
	tests := []struct {
		name     string
		command  Command
		expected string
	}{
		{
			name:     "Get command",
			command:  NewGetCommand("testkey"),
			expected: "get testkey",
		},
		{
			name:     "Set command",
			command:  NewSetCommand("testkey", "testvalue"),
			expected: "set testkey testvalue",
		},
		{
			name:     "Remove command",
			command:  NewRemoveCommand("testkey"),
			expected: "rm testkey",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.command.Encode(); got != tt.expected {
				t.Errorf("Encode() = %q, want %q", got, tt.expected)
			}
		})
	}
}

// TestEncodeDecode tests that decoding an encoded command round-trips
func TestEncodeDecode(t *testing.T) {
	tests := []struct {
		name    string
		command Command
	}{
		{
			name:    "Get command",
			command: NewGetCommand("testkey"),
		},
		{
			name:    "Set command",
			command: NewSetCommand("testkey", "testvalue"),
		},
		{
			name:    "Set command with punctuation",
			command: NewSetCommand("user:42", "{\"name\":\"x\"}"),
		},
		{
			name:    "Remove command",
			command: NewRemoveCommand("testkey"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded, err := Decode(tt.command.Encode())
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if decoded != tt.command {
				t.Errorf("Decode(Encode()) = %+v, want %+v", decoded, tt.command)
			}
		})
	}
}

// TestDecodeErrors tests the validation errors for malformed records
func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{
			name: "Empty line",
			line: "",
		},
		{
			name: "Whitespace only",
			line: "   \t  ",
		},
		{
			name: "Unknown command token",
			line: "put key value",
		},
		{
			name: "Get without key",
			line: "get",
		},
		{
			name: "Set without key",
			line: "set",
		},
		{
			name: "Set without value",
			line: "set key",
		},
		{
			name: "Remove without key",
			line: "rm",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.line)
			if err == nil {
				t.Fatalf("Decode(%q) expected error, got nil", tt.line)
			}
			if !IsValidation(err) {
				t.Errorf("Decode(%q) expected validation error, got %v", tt.line, err)
			}
		})
	}
}

// TestDecodeLaxTrailingTokens tests that extra trailing tokens are ignored
func TestDecodeLaxTrailingTokens(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected Command
	}{
		{
			name:     "Get with trailing tokens",
			line:     "get key extra tokens",
			expected: NewGetCommand("key"),
		},
		{
			name:     "Set with trailing tokens",
			line:     "set key value extra",
			expected: NewSetCommand("key", "value"),
		},
		{
			name:     "Remove with trailing tokens",
			line:     "rm key extra",
			expected: NewRemoveCommand("key"),
		},
		{
			name:     "Multiple spaces between tokens",
			line:     "set   key    value",
			expected: NewSetCommand("key", "value"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded, err := Decode(tt.line)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if decoded != tt.expected {
				t.Errorf("Decode(%q) = %+v, want %+v", tt.line, decoded, tt.expected)
			}
		})
	}
}
