package transfer

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"acadport/services/record"

	"golang.org/x/sync/errgroup"
)

const (
	defaultTitle      = "Untitled"
	importConcurrency = 8
)

// Creator is the write side used by imports; *gateway.Gateway satisfies it.
type Creator interface {
	Create(ctx context.Context, f record.Fields) error
}

// Today formats now as the default date of imported rows.
func Today(now time.Time) string {
	return now.UTC().Format(time.DateOnly)
}

// Defaults fills the fields an import row may leave blank.
func Defaults(f record.Fields, today string) record.Fields {
	if f.Type == "" {
		f.Type = record.TypeAchievement
	}
	if f.Title == "" {
		f.Title = defaultTitle
	}
	if f.Date == "" {
		f.Date = today
	}
	return f
}

// ParseCSV turns every non-blank line after the first into one row in Columns
// order. The first line is a header and is dropped without being checked. A line
// is read as a single CSV record so quoted commas and doubled quotes survive; a
// line that is not valid CSV is split on commas with surrounding quotes stripped.
// A quote never joins lines.
func ParseCSV(text string, today string) []record.Fields {
	lines := strings.Split(text, "\n")
	rows := make([]record.Fields, 0, len(lines))
	for _, line := range lines[1:] {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		values := splitCSVLine(line)
		if strings.Join(values, "") == "" {
			continue
		}
		rows = append(rows, Defaults(fieldsFromValues(values), today))
	}
	return rows
}

func splitCSVLine(line string) []string {
	r := csv.NewReader(strings.NewReader(line))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	values, err := r.Read()
	if err != nil {
		slog.Debug("csv line is not well formed, splitting on commas", "error", err.Error())
		values = strings.Split(line, ",")
		for i, v := range values {
			v = strings.TrimSpace(v)
			v = strings.TrimPrefix(v, `"`)
			values[i] = strings.TrimSuffix(v, `"`)
		}
	}
	for i := range values {
		values[i] = strings.TrimSpace(values[i])
	}
	return values
}

func fieldsFromValues(values []string) record.Fields {
	at := func(i int) string {
		if i < len(values) {
			return values[i]
		}
		return ""
	}
	return record.Fields{
		Type:        record.Type(at(0)),
		Title:       at(1),
		Description: at(2),
		Date:        at(3),
		Grade:       at(4),
		Institution: at(5),
		Category:    at(6),
	}
}

// ParseJSON reads an array of record objects. Anything else is rejected with
// ErrFormat before a single row is produced.
func ParseJSON(text string, today string) ([]record.Fields, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}
	var top any
	if err := json.Unmarshal([]byte(text), &top); err != nil {
		return nil, &ParseError{Format: "JSON", Err: err}
	}
	entries, ok := top.([]any)
	if !ok {
		return nil, ErrFormat
	}

	rows := make([]record.Fields, 0, len(entries))
	for i, e := range entries {
		obj, ok := e.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: element %d is not an object", ErrFormat, i)
		}
		f, err := fieldsFromObject(obj)
		if err != nil {
			return nil, &ParseError{Format: "JSON", Err: fmt.Errorf("element %d: %w", i, err)}
		}
		rows = append(rows, Defaults(f, today))
	}
	return rows, nil
}

func fieldsFromObject(obj map[string]any) (record.Fields, error) {
	var f record.Fields
	for _, c := range []struct {
		key  string
		dest *string
	}{
		{"title", &f.Title},
		{"description", &f.Description},
		{"date", &f.Date},
		{"grade", &f.Grade},
		{"institution", &f.Institution},
		{"category", &f.Category},
	} {
		v, err := scalar(obj[c.key])
		if err != nil {
			return f, fmt.Errorf("field %q: %w", c.key, err)
		}
		*c.dest = v
	}
	t, err := scalar(obj["type"])
	if err != nil {
		return f, fmt.Errorf("field %q: %w", "type", err)
	}
	f.Type = record.Type(t)
	return f, nil
}

// scalar renders a JSON scalar as text. Falsy values become "" so that defaults apply.
func scalar(v any) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	case bool:
		if !t {
			return "", nil
		}
		return "true", nil
	case float64:
		if t == 0 {
			return "", nil
		}
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	default:
		return "", errors.New("expected a string")
	}
}

// ParseBackup reads a backup envelope and returns its records as import rows.
func ParseBackup(text string, today string) (Backup, []record.Fields, error) {
	if strings.TrimSpace(text) == "" {
		return Backup{}, nil, ErrEmptyInput
	}
	var env struct {
		Backup
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal([]byte(text), &env); err != nil {
		return Backup{}, nil, &ParseError{Format: "backup", Err: err}
	}
	if env.Version == "" || len(env.Data) == 0 {
		return Backup{}, nil, fmt.Errorf("%w: not a backup file", ErrFormat)
	}
	rows, err := ParseJSON(string(env.Data), today)
	if err != nil {
		return Backup{}, nil, err
	}
	return env.Backup, rows, nil
}

// Import creates every row concurrently and waits for all of them. It returns the
// number of rows written; if any write failed the error is an *AggregateImportError
// and the rows that succeeded are not rolled back.
func Import(ctx context.Context, c Creator, rows []record.Fields) (int, error) {
	var (
		mu   sync.Mutex
		errs []error
	)
	g := new(errgroup.Group)
	g.SetLimit(importConcurrency)
	for _, row := range rows {
		g.Go(func() error {
			if err := c.Create(ctx, row); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	if len(errs) > 0 {
		slog.Warn("bulk import finished with failures", "total", len(rows), "failed", len(errs))
		return len(rows) - len(errs), &AggregateImportError{Total: len(rows), Failed: len(errs), Errs: errs}
	}
	slog.Info("bulk import finished", "total", len(rows))
	return len(rows), nil
}
