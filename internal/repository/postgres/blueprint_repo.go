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

type blueprintRepo struct {
	db *sqlx.DB
}

// NewBlueprintRepo creates a new PostgreSQL-backed BlueprintRepository.
func NewBlueprintRepo(db *sqlx.DB) port.BlueprintRepository {
	return &blueprintRepo{db: db}
}

func (r *blueprintRepo) Create(ctx context.Context, bp *domain.Blueprint) error {
	bp.ID = uuid.New()
	now := time.Now().UTC()
	bp.CreatedAt = now
	bp.UpdatedAt = now

	query := `INSERT INTO blueprints (id, project_id, uploaded_by, file_name, original_name,
		sheet_number, file_type, file_size, s3_bucket, s3_key, content_type, status,
		created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.db.ExecContext(ctx, query,
		bp.ID, bp.ProjectID, bp.UploadedBy, bp.FileName, bp.OriginalName,
		bp.SheetNumber, bp.FileType, bp.FileSize, bp.S3Bucket, bp.S3Key,
		bp.ContentType, bp.Status, bp.CreatedAt, bp.UpdatedAt)
	if err != nil {
		return fmt.Errorf("blueprintRepo.Create: %w", err)
	}
	return nil
}

func (r *blueprintRepo) GetByID(ctx context.Context, blueprintID uuid.UUID) (*domain.Blueprint, error) {
	var bp domain.Blueprint
	err := r.db.GetContext(ctx, &bp, "SELECT * FROM blueprints WHERE id = $1", blueprintID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBlueprintNotFound
		}
		return nil, fmt.Errorf("blueprintRepo.GetByID: %w", err)
	}
	return &bp, nil
}

func (r *blueprintRepo) ListByProject(ctx context.Context, projectID uuid.UUID, offset, limit int) ([]domain.Blueprint, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM blueprints WHERE project_id = $1", projectID)
	if err != nil {
		return nil, 0, fmt.Errorf("blueprintRepo.ListByProject count: %w", err)
	}

	var bps []domain.Blueprint
	err = r.db.SelectContext(ctx, &bps,
		"SELECT * FROM blueprints WHERE project_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3",
		projectID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("blueprintRepo.ListByProject: %w", err)
	}
	return bps, total, nil
}

func (r *blueprintRepo) UpdateStatus(ctx context.Context, blueprintID uuid.UUID, status domain.FileStatus) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE blueprints SET status = $1, updated_at = $2 WHERE id = $3",
		status, time.Now().UTC(), blueprintID)
	if err != nil {
		return fmt.Errorf("blueprintRepo.UpdateStatus: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrBlueprintNotFound
	}
	return nil
}

func (r *blueprintRepo) Delete(ctx context.Context, blueprintID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM blueprints WHERE id = $1", blueprintID)
	if err != nil {
		return fmt.Errorf("blueprintRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrBlueprintNotFound
	}
	return nil
}
