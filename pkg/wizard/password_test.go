package wizard

import (
	"strings"
	"testing"
)

func TestGeneratePasswordClasses(t *testing.T) {
	for i := 0; i < 50; i++ {
		pw, err := GeneratePassword(DefaultPasswordLength)
		if err != nil {
			t.Fatalf("GeneratePassword: %v", err)
		}
		if len(pw) != DefaultPasswordLength {
			t.Fatalf("length: got %d, want %d", len(pw), DefaultPasswordLength)
		}
		for _, set := range []string{upperChars, lowerChars, digitChars, symbolChars} {
			if !strings.ContainsAny(pw, set) {
				t.Errorf("password %q missing a character from %q", pw, set)
			}
		}
	}
}

func TestGeneratePasswordExcludesAmbiguousChars(t *testing.T) {
	for i := 0; i < 50; i++ {
		pw, err := GeneratePassword(16)
		if err != nil {
			t.Fatalf("GeneratePassword: %v", err)
		}
		if strings.ContainsAny(pw, "IO01lo") {
			t.Errorf("password %q contains an ambiguous character", pw)
		}
	}
}

func TestGeneratePasswordLengths(t *testing.T) {
	tests := []struct {
		length  int
		wantErr bool
	}{
		{3, true},
		{4, false},
		{8, false},
		{32, false},
	}
	for _, tc := range tests {
		pw, err := GeneratePassword(tc.length)
		if tc.wantErr {
			if err == nil {
				t.Errorf("length %d: expected error", tc.length)
			}
			continue
		}
		if err != nil {
			t.Errorf("length %d: %v", tc.length, err)
			continue
		}
		if len(pw) != tc.length {
			t.Errorf("length %d: got %d characters", tc.length, len(pw))
		}
	}
}

func TestGeneratePasswordVaries(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		pw, err := GeneratePassword(DefaultPasswordLength)
		if err != nil {
			t.Fatalf("GeneratePassword: %v", err)
		}
		seen[pw] = true
	}
	if len(seen) < 19 {
		t.Errorf("expected ~20 distinct passwords, got %d", len(seen))
	}
}
