package transfer

import (
	"fmt"
	"strings"
	"time"

	"acadport/services/record"
	"acadport/utils"
)

const (
	CSVContentType  = "text/csv"
	JSONContentType = "application/json"

	BackupVersion = "1.0"

	csvExportName      = "academic-achievements.csv"
	jsonExportName     = "academic-achievements.json"
	filteredExportName = "filtered-achievements.json"
)

// Columns is the fixed CSV column order for import and export.
var Columns = []string{"type", "title", "description", "date", "grade", "institution", "category"}

// File is a generated download.
type File struct {
	Name        string
	ContentType string
	Content     []byte
}

// Owner identifies the principal a backup belongs to.
type Owner struct {
	UserID      string
	DisplayName string
	Email       string
}

// Backup is the envelope written by NewBackup.
type Backup struct {
	Version      string          `json:"version"`
	Timestamp    time.Time       `json:"timestamp"`
	User         string          `json:"user"`
	UserID       string          `json:"userId"`
	TotalEntries int             `json:"totalEntries"`
	Data         []record.Record `json:"data"`
}

// ExportCSV writes records with every field quoted and inner quotes doubled.
func ExportCSV(records []record.Record) (File, error) {
	if len(records) == 0 {
		return File{}, ErrNothingToExport
	}
	lines := make([]string, 0, len(records)+1)
	lines = append(lines, strings.Join(Columns, ","))
	for _, r := range records {
		values := []string{
			string(r.Type), r.Title, r.Description, r.Date, r.Grade, r.Institution, r.Category,
		}
		for i, v := range values {
			values[i] = `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
		}
		lines = append(lines, strings.Join(values, ","))
	}
	return File{
		Name:        csvExportName,
		ContentType: CSVContentType,
		Content:     []byte(strings.Join(lines, "\n")),
	}, nil
}

// ExportJSON writes the full mirror verbatim, ids and timestamps included.
func ExportJSON(records []record.Record) (File, error) {
	return exportJSON(records, jsonExportName)
}

// ExportFiltered writes the last computed projection.
func ExportFiltered(records []record.Record) (File, error) {
	return exportJSON(records, filteredExportName)
}

func exportJSON(records []record.Record, name string) (File, error) {
	if len(records) == 0 {
		return File{}, ErrNothingToExport
	}
	content, err := utils.PrettyJSON(records)
	if err != nil {
		return File{}, fmt.Errorf("failed to encode records: %w", err)
	}
	return File{Name: name, ContentType: JSONContentType, Content: content}, nil
}

// NewBackup wraps the mirror in a versioned envelope named after the owner and date.
func NewBackup(owner Owner, records []record.Record, now time.Time) (File, error) {
	if len(records) == 0 {
		return File{}, ErrNothingToExport
	}
	user := owner.DisplayName
	if user == "" {
		user = owner.Email
	}
	b := Backup{
		Version:      BackupVersion,
		Timestamp:    now.UTC(),
		User:         user,
		UserID:       owner.UserID,
		TotalEntries: len(records),
		Data:         records,
	}
	content, err := utils.PrettyJSON(b)
	if err != nil {
		return File{}, fmt.Errorf("failed to encode backup: %w", err)
	}
	return File{
		Name:        BackupName(owner, now),
		ContentType: JSONContentType,
		Content:     content,
	}, nil
}

func BackupName(owner Owner, now time.Time) string {
	name := owner.DisplayName
	if name == "" {
		name = "user"
	}
	return fmt.Sprintf("backup_%s_%s.json", name, now.UTC().Format(time.DateOnly))
}
