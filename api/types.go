package api

import (
	"time"

	"github.com/google/uuid"
)

type RecordType string
type Filter string
type Sort string
type Layout string
type Theme string

type Pong struct {
	Ping string `json:"ping"`
}

type Error struct {
	Error string `json:"error"`
}

type Message struct {
	Message string `json:"message"`
}

type LoginRequest struct {
	UserId   string `json:"userId" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Name            string `json:"name"`
	UserId          string `json:"userId" binding:"required"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type AuthResponse struct {
	Uid          string `json:"uid"`
	Email        string `json:"email,omitempty"`
	DisplayName  string `json:"displayName,omitempty"`
	IdToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int    `json:"expiresIn"`
	Message      string `json:"message"`
}

type Profile struct {
	Uid         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Theme       Theme  `json:"theme"`
	Welcome     string `json:"welcome"`
}

type RecordInput struct {
	Type        RecordType `json:"type" binding:"required"`
	Title       string     `json:"title" binding:"required"`
	Description *string    `json:"description,omitempty"`
	Date        *string    `json:"date,omitempty"`
	Grade       *string    `json:"grade,omitempty"`
	Institution *string    `json:"institution,omitempty"`
	Category    *string    `json:"category,omitempty"`
}

type Record struct {
	Id          string     `json:"id"`
	Type        string     `json:"type"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Date        string     `json:"date"`
	Grade       string     `json:"grade"`
	Institution string     `json:"institution"`
	Category    string     `json:"category"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

type Criteria struct {
	Filter Filter `json:"filter"`
	Sort   Sort   `json:"sort"`
	Search string `json:"search"`
}

type Counts struct {
	Total       int `json:"total"`
	Achievement int `json:"achievement"`
	Result      int `json:"result"`
	Record      int `json:"record"`
}

type Bucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type Stats struct {
	Counts       Counts   `json:"counts"`
	Categories   []Bucket `json:"categories"`
	Institutions []Bucket `json:"institutions"`
}

type Dashboard struct {
	Criteria      Criteria `json:"criteria"`
	Layout        Layout   `json:"layout"`
	Counts        Counts   `json:"counts"`
	Records       []Record `json:"records"`
	Empty         bool     `json:"empty"`
	Message       *string  `json:"message,omitempty"`
	PendingDelete *string  `json:"pendingDelete,omitempty"`
	Loaded        bool     `json:"loaded"`
}

type PendingConfirmation struct {
	TargetId string `json:"targetId"`
	Message  string `json:"message"`
}

type ImportResult struct {
	Imported int    `json:"imported"`
	Failed   *int   `json:"failed,omitempty"`
	Message  string `json:"message"`
}

type ArchivedBackup struct {
	Name      string    `json:"name"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"createdAt"`
}

type RestoreRequest struct {
	Name string `json:"name" binding:"required"`
}

type Notification struct {
	Id        uuid.UUID `json:"id"`
	Level     string    `json:"level"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type ThemePreference struct {
	Theme Theme `json:"theme" binding:"required"`
}

// GetRecordsParams defines parameters for GetRecords.
type GetRecordsParams struct {
	Filter *Filter `form:"filter,omitempty" json:"filter,omitempty"`
	Sort   *Sort   `form:"sort,omitempty" json:"sort,omitempty"`
	Search *string `form:"search,omitempty" json:"search,omitempty"`
	Layout *Layout `form:"layout,omitempty" json:"layout,omitempty"`
}

// ExportJSONParams defines parameters for ExportJSON.
type ExportJSONParams struct {
	Filtered *bool `form:"filtered,omitempty" json:"filtered,omitempty"`
}
