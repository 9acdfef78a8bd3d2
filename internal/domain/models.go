package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// User represents an authenticated user.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"full_name"`
	Role         UserRole  `db:"role" json:"role"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Project represents a construction project that blueprints belong to.
type Project struct {
	ID         uuid.UUID `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	Address    string    `db:"address" json:"address"`
	ClientName string    `db:"client_name" json:"client_name"`
	CreatedBy  uuid.UUID `db:"created_by" json:"created_by"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// Blueprint stores metadata about an uploaded blueprint file.
type Blueprint struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	ProjectID    uuid.UUID  `db:"project_id" json:"project_id"`
	UploadedBy   uuid.UUID  `db:"uploaded_by" json:"uploaded_by"`
	FileName     string     `db:"file_name" json:"file_name"`
	OriginalName string     `db:"original_name" json:"original_name"`
	SheetNumber  string     `db:"sheet_number" json:"sheet_number"`
	FileType     FileType   `db:"file_type" json:"file_type"`
	FileSize     int64      `db:"file_size" json:"file_size"`
	S3Bucket     string     `db:"s3_bucket" json:"s3_bucket"`
	S3Key        string     `db:"s3_key" json:"s3_key"`
	ContentType  string     `db:"content_type" json:"content_type"`
	Status       FileStatus `db:"status" json:"status"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// Analysis represents one takeoff analysis of a blueprint for a trade.
type Analysis struct {
	ID              uuid.UUID       `db:"id" json:"id"`
	ProjectID       uuid.UUID       `db:"project_id" json:"project_id"`
	BlueprintID     uuid.UUID       `db:"blueprint_id" json:"blueprint_id"`
	Trade           Trade           `db:"trade" json:"trade"`
	AnalysisType    AnalysisType    `db:"analysis_type" json:"analysis_type"`
	Status          AnalysisStatus  `db:"status" json:"status"`
	ModelUsed       string          `db:"model_used" json:"model_used"`
	PromptUsed      string          `db:"prompt_used" json:"-"`
	Result          json.RawMessage `db:"result" json:"result"`
	Options         json.RawMessage `db:"options" json:"options,omitempty"`
	ErrorMessage    string          `db:"error_message" json:"error_message"`
	AnalyzeAttempts int             `db:"analyze_attempts" json:"analyze_attempts"`
	RequestedBy     uuid.UUID       `db:"requested_by" json:"requested_by"`
	CompletedAt     *time.Time      `db:"completed_at" json:"completed_at"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at" json:"updated_at"`
}

// AnalysisOptions carries the per-request pipeline overrides persisted with
// a queued analysis so the worker applies the same knobs the caller asked
// for. Zero values defer to configured defaults.
type AnalysisOptions struct {
	WasteFactorPct    float64 `json:"waste_factor_pct,omitempty"`
	StudSpacingIn     float64 `json:"stud_spacing_in,omitempty"`
	IncludeGridSystem bool    `json:"include_grid_system,omitempty"`
	ContingencyRate   float64 `json:"contingency_rate,omitempty"`
}

// CatalogPrice is a user-editable price-book row that overrides the
// built-in material catalog at analysis time.
type CatalogPrice struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Trade       Trade     `db:"trade" json:"trade"`
	Code        string    `db:"code" json:"code"`
	Material    string    `db:"material" json:"material"`
	Size        string    `db:"size" json:"size"`
	Description string    `db:"description" json:"description"`
	UnitCost    float64   `db:"unit_cost" json:"unit_cost"`
	LaborRate   float64   `db:"labor_rate" json:"labor_rate"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
