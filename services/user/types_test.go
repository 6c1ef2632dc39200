package user

import (
	"errors"
	"testing"
)

func TestParseTheme(t *testing.T) {
	tests := []struct {
		in      string
		want    Theme
		wantErr bool
	}{
		{"light", ThemeLight, false},
		{"dark", ThemeDark, false},
		{"", "", true},
		{"Dark", "", true},
	}
	for _, tt := range tests {
		got, err := ParseTheme(tt.in)
		if got != tt.want || (err != nil) != tt.wantErr {
			t.Errorf("ParseTheme(%q) = %q, %v", tt.in, got, err)
		}
		if err != nil && !errors.Is(err, ErrInvalidTheme) {
			t.Errorf("ParseTheme(%q) error does not wrap ErrInvalidTheme", tt.in)
		}
	}
}

func TestToggle(t *testing.T) {
	if DefaultTheme.Toggle() != ThemeDark || ThemeDark.Toggle() != ThemeLight {
		t.Error("toggle does not flip between light and dark")
	}
}
