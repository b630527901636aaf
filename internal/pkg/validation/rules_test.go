package validation

import "testing"

func TestPasswordPolicy(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     string
	}{
		{"valid", "Sekret123", ""},
		{"exactly eight chars", "Abcdefg1", ""},
		{"too short", "Ab1", "password must be at least 8 characters long"},
		{"no digit", "Abcdefgh", "password must contain at least one digit"},
		{"no upper", "abcdefg1", "password must contain at least one upper-case letter"},
		{"empty", "", "password must be at least 8 characters long"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PasswordPolicy(tt.password); got != tt.want {
				t.Errorf("PasswordPolicy(%q) = %q, want %q", tt.password, got, tt.want)
			}
		})
	}
}

func TestValidEmail(t *testing.T) {
	valid := []string{
		"student@example.com",
		"jan.kowalski@uni.edu.pl",
		"a+tag@sub.domain.org",
	}
	for _, email := range valid {
		if !ValidEmail(email) {
			t.Errorf("ValidEmail(%q) = false, want true", email)
		}
	}

	invalid := []string{
		"",
		"no-at-sign",
		"user@",
		"@domain.com",
		"user@domain",
		"UPPER@EXAMPLE.COM",
	}
	for _, email := range invalid {
		if ValidEmail(email) {
			t.Errorf("ValidEmail(%q) = true, want false", email)
		}
	}
}

func TestValidName(t *testing.T) {
	if !ValidName("Jo") {
		t.Error("two-character name rejected")
	}
	if ValidName("J") {
		t.Error("one-character name accepted")
	}
	if ValidName("") {
		t.Error("empty name accepted")
	}
}
