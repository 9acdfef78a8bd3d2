package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"takeoffs/internal/domain"
	"takeoffs/internal/port"
)

type catalogRepo struct {
	db *sqlx.DB
}

// NewCatalogRepo creates a new PostgreSQL-backed CatalogRepository.
func NewCatalogRepo(db *sqlx.DB) port.CatalogRepository {
	return &catalogRepo{db: db}
}

// Upsert inserts or updates a price-book row keyed by (trade, code, material,
// size).
func (r *catalogRepo) Upsert(ctx context.Context, row *domain.CatalogPrice) error {
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	row.UpdatedAt = time.Now().UTC()

	query := `INSERT INTO catalog_prices (id, trade, code, material, size, description, unit_cost, labor_rate, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (trade, code, material, size)
		DO UPDATE SET description = EXCLUDED.description,
			unit_cost = EXCLUDED.unit_cost,
			labor_rate = EXCLUDED.labor_rate,
			updated_at = EXCLUDED.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		row.ID, row.Trade, row.Code, row.Material, row.Size,
		row.Description, row.UnitCost, row.LaborRate, row.UpdatedAt)
	if err != nil {
		return fmt.Errorf("catalogRepo.Upsert: %w", err)
	}
	return nil
}

func (r *catalogRepo) ListByTrade(ctx context.Context, trade domain.Trade) ([]domain.CatalogPrice, error) {
	var rows []domain.CatalogPrice
	err := r.db.SelectContext(ctx, &rows,
		"SELECT * FROM catalog_prices WHERE trade = $1 ORDER BY code, material, size", trade)
	if err != nil {
		return nil, fmt.Errorf("catalogRepo.ListByTrade: %w", err)
	}
	return rows, nil
}

func (r *catalogRepo) ListAll(ctx context.Context) ([]domain.CatalogPrice, error) {
	var rows []domain.CatalogPrice
	err := r.db.SelectContext(ctx, &rows,
		"SELECT * FROM catalog_prices ORDER BY trade, code, material, size")
	if err != nil {
		return nil, fmt.Errorf("catalogRepo.ListAll: %w", err)
	}
	return rows, nil
}

func (r *catalogRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM catalog_prices WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("catalogRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
