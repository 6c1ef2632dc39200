package record

import "time"

// Type is the bucket a record belongs to. Values outside the known set are kept
// as-is; they simply never match a type filter.
type Type string

const (
	TypeAchievement Type = "achievement"
	TypeResult      Type = "result"
	TypeRecord      Type = "record"
)

// Types lists the known record types in display order.
var Types = []Type{TypeAchievement, TypeResult, TypeRecord}

func (t Type) Known() bool {
	switch t {
	case TypeAchievement, TypeResult, TypeRecord:
		return true
	}
	return false
}

// Record is a single entry of a user's collection as delivered by a snapshot.
// ID is the document ID and is never stored inside the document.
type Record struct {
	ID          string     `json:"id" firestore:"-"`
	Type        Type       `json:"type" firestore:"type"`
	Title       string     `json:"title" firestore:"title"`
	Description string     `json:"description" firestore:"description"`
	Date        string     `json:"date" firestore:"date"`
	Grade       string     `json:"grade" firestore:"grade"`
	Institution string     `json:"institution" firestore:"institution"`
	Category    string     `json:"category" firestore:"category"`
	CreatedAt   *time.Time `json:"createdAt,omitempty" firestore:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty" firestore:"updatedAt"`
}

// Fields is the client-editable part of a record.
type Fields struct {
	Type        Type   `json:"type" structs:"type"`
	Title       string `json:"title" structs:"title"`
	Description string `json:"description" structs:"description"`
	Date        string `json:"date" structs:"date"`
	Grade       string `json:"grade" structs:"grade"`
	Institution string `json:"institution" structs:"institution"`
	Category    string `json:"category" structs:"category"`
}

func (r Record) Fields() Fields {
	return Fields{
		Type:        r.Type,
		Title:       r.Title,
		Description: r.Description,
		Date:        r.Date,
		Grade:       r.Grade,
		Institution: r.Institution,
		Category:    r.Category,
	}
}
