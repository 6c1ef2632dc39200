package storage

import (
	"errors"
	"testing"
)

func TestObjectName(t *testing.T) {
	tests := []struct {
		userID  string
		name    string
		want    string
		wantErr bool
	}{
		{"uid-1", "backup_Ada_2025-10-19.json", "backups/uid-1/backup_Ada_2025-10-19.json", false},
		{"uid-1", "../uid-2/backup.json", "", true},
		{"uid-1", "nested/backup.json", "", true},
		{"uid-1", "..", "", true},
		{"uid-1", "", "", true},
		{"", "backup.json", "", true},
	}
	for _, tt := range tests {
		got, err := ObjectName(tt.userID, tt.name)
		if got != tt.want || (err != nil) != tt.wantErr {
			t.Errorf("ObjectName(%q, %q) = %q, %v", tt.userID, tt.name, got, err)
		}
		if err != nil && !errors.Is(err, ErrInvalidName) {
			t.Errorf("ObjectName(%q, %q) error = %v", tt.userID, tt.name, err)
		}
	}
}
