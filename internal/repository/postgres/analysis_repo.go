package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"takeoffs/internal/domain"
	"takeoffs/internal/port"
)

type analysisRepo struct {
	db *sqlx.DB
}

// NewAnalysisRepo creates a new PostgreSQL-backed AnalysisRepository.
func NewAnalysisRepo(db *sqlx.DB) port.AnalysisRepository {
	return &analysisRepo{db: db}
}

func (r *analysisRepo) Create(ctx context.Context, a *domain.Analysis) error {
	a.ID = uuid.New()
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	if a.Status == "" {
		a.Status = domain.AnalysisStatusQueued
	}

	query := `INSERT INTO analyses (id, project_id, blueprint_id, trade, analysis_type, status,
		model_used, prompt_used, result, options, error_message, analyze_attempts, requested_by,
		completed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.ProjectID, a.BlueprintID, a.Trade, a.AnalysisType, a.Status,
		a.ModelUsed, a.PromptUsed, a.Result, a.Options, a.ErrorMessage, a.AnalyzeAttempts,
		a.RequestedBy, a.CompletedAt, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("analysisRepo.Create: %w", err)
	}
	return nil
}

func (r *analysisRepo) GetByID(ctx context.Context, analysisID uuid.UUID) (*domain.Analysis, error) {
	var a domain.Analysis
	err := r.db.GetContext(ctx, &a, "SELECT * FROM analyses WHERE id = $1", analysisID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAnalysisNotFound
		}
		return nil, fmt.Errorf("analysisRepo.GetByID: %w", err)
	}
	return &a, nil
}

func (r *analysisRepo) ListByProject(ctx context.Context, projectID uuid.UUID, offset, limit int) ([]domain.Analysis, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM analyses WHERE project_id = $1", projectID)
	if err != nil {
		return nil, 0, fmt.Errorf("analysisRepo.ListByProject count: %w", err)
	}

	var list []domain.Analysis
	err = r.db.SelectContext(ctx, &list,
		"SELECT * FROM analyses WHERE project_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3",
		projectID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("analysisRepo.ListByProject: %w", err)
	}
	return list, total, nil
}

func (r *analysisRepo) ListByBlueprint(ctx context.Context, blueprintID uuid.UUID) ([]domain.Analysis, error) {
	var list []domain.Analysis
	err := r.db.SelectContext(ctx, &list,
		"SELECT * FROM analyses WHERE blueprint_id = $1 ORDER BY created_at DESC", blueprintID)
	if err != nil {
		return nil, fmt.Errorf("analysisRepo.ListByBlueprint: %w", err)
	}
	return list, nil
}

// ClaimQueued atomically flips up to limit queued rows to processing and
// returns them. SKIP LOCKED keeps concurrent workers from claiming the same
// row.
func (r *analysisRepo) ClaimQueued(ctx context.Context, limit, maxAttempts int) ([]domain.Analysis, error) {
	query := `UPDATE analyses SET status = $1, analyze_attempts = analyze_attempts + 1, updated_at = $2
		WHERE id IN (
			SELECT id FROM analyses
			WHERE status = $3 AND analyze_attempts < $4
			ORDER BY created_at
			LIMIT $5
			FOR UPDATE SKIP LOCKED
		)
		RETURNING *`

	var list []domain.Analysis
	err := r.db.SelectContext(ctx, &list, query,
		domain.AnalysisStatusProcessing, time.Now().UTC(),
		domain.AnalysisStatusQueued, maxAttempts, limit)
	if err != nil {
		return nil, fmt.Errorf("analysisRepo.ClaimQueued: %w", err)
	}
	return list, nil
}

func (r *analysisRepo) MarkCompleted(ctx context.Context, a *domain.Analysis) error {
	now := time.Now().UTC()
	a.UpdatedAt = now
	a.CompletedAt = &now
	a.Status = domain.AnalysisStatusCompleted

	query := `UPDATE analyses SET status = $1, model_used = $2, prompt_used = $3, result = $4,
		error_message = '', completed_at = $5, updated_at = $6
		WHERE id = $7`
	result, err := r.db.ExecContext(ctx, query,
		a.Status, a.ModelUsed, a.PromptUsed, a.Result, a.CompletedAt, a.UpdatedAt, a.ID)
	if err != nil {
		return fmt.Errorf("analysisRepo.MarkCompleted: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrAnalysisNotFound
	}
	return nil
}

func (r *analysisRepo) MarkFailed(ctx context.Context, analysisID uuid.UUID, errMsg string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE analyses SET status = $1, error_message = $2, updated_at = $3 WHERE id = $4",
		domain.AnalysisStatusFailed, errMsg, time.Now().UTC(), analysisID)
	if err != nil {
		return fmt.Errorf("analysisRepo.MarkFailed: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrAnalysisNotFound
	}
	return nil
}

func (r *analysisRepo) Requeue(ctx context.Context, analysisID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE analyses SET status = $1, updated_at = $2 WHERE id = $3",
		domain.AnalysisStatusQueued, time.Now().UTC(), analysisID)
	if err != nil {
		return fmt.Errorf("analysisRepo.Requeue: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrAnalysisNotFound
	}
	return nil
}

func (r *analysisRepo) Delete(ctx context.Context, analysisID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM analyses WHERE id = $1", analysisID)
	if err != nil {
		return fmt.Errorf("analysisRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrAnalysisNotFound
	}
	return nil
}
