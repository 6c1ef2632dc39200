package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"acadport/services/record"
)

// WriteError is a failed create, update or delete. Its message is the remote
// store's message, unchanged.
type WriteError struct {
	Op  record.Op
	Err error
}

func (e *WriteError) Error() string {
	return e.Err.Error()
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// ValidationError rejects a payload before it is sent to the store.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Gateway issues writes against one user's collection. It never touches the mirror:
// the result of a write arrives through the subscription.
type Gateway struct {
	store  record.Store
	userID string
}

func New(store record.Store, userID string) *Gateway {
	return &Gateway{
		store:  store,
		userID: userID,
	}
}

// Validate applies the form-level checks shared by create and update.
func Validate(f record.Fields) error {
	if strings.TrimSpace(f.Title) == "" {
		return &ValidationError{Field: "title", Message: "title is required"}
	}
	if !f.Type.Known() {
		return &ValidationError{Field: "type", Message: fmt.Sprintf("unknown type %q", f.Type)}
	}
	return nil
}

func (g *Gateway) Create(ctx context.Context, f record.Fields) error {
	if err := Validate(f); err != nil {
		return err
	}
	if err := g.store.Create(ctx, g.userID, f); err != nil {
		slog.With("error", err.Error()).Error("failed to create record")
		return &WriteError{Op: record.OpCreate, Err: err}
	}
	return nil
}

// Update overwrites every editable field of id. A vanished record yields an error
// matching record.ErrNotFound.
func (g *Gateway) Update(ctx context.Context, id string, f record.Fields) error {
	if id == "" {
		return &ValidationError{Field: "id", Message: "id is required"}
	}
	if err := Validate(f); err != nil {
		return err
	}
	if err := g.store.Update(ctx, g.userID, id, f); err != nil {
		if !errors.Is(err, record.ErrNotFound) {
			slog.With("error", err.Error()).Error("failed to update record", "id", id)
		}
		return &WriteError{Op: record.OpUpdate, Err: err}
	}
	return nil
}

func (g *Gateway) Delete(ctx context.Context, id string) error {
	if id == "" {
		return &ValidationError{Field: "id", Message: "id is required"}
	}
	if err := g.store.Delete(ctx, g.userID, id); err != nil {
		if !errors.Is(err, record.ErrNotFound) {
			slog.With("error", err.Error()).Error("failed to delete record", "id", id)
		}
		return &WriteError{Op: record.OpDelete, Err: err}
	}
	return nil
}
