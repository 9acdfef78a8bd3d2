package port

import (
	"context"

	"github.com/google/uuid"

	"takeoffs/internal/domain"
)

// UserRepository defines the contract for user persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, offset, limit int) ([]domain.User, int, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

// ProjectRepository defines the contract for project persistence.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	GetByID(ctx context.Context, projectID uuid.UUID) (*domain.Project, error)
	List(ctx context.Context, offset, limit int) ([]domain.Project, int, error)
	ListByCreator(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Project, int, error)
	Update(ctx context.Context, project *domain.Project) error
	Delete(ctx context.Context, projectID uuid.UUID) error
}

// BlueprintRepository defines the contract for blueprint metadata persistence.
type BlueprintRepository interface {
	Create(ctx context.Context, bp *domain.Blueprint) error
	GetByID(ctx context.Context, blueprintID uuid.UUID) (*domain.Blueprint, error)
	ListByProject(ctx context.Context, projectID uuid.UUID, offset, limit int) ([]domain.Blueprint, int, error)
	UpdateStatus(ctx context.Context, blueprintID uuid.UUID, status domain.FileStatus) error
	Delete(ctx context.Context, blueprintID uuid.UUID) error
}

// AnalysisRepository defines the contract for analysis persistence, including
// the queue operations the background worker uses.
type AnalysisRepository interface {
	Create(ctx context.Context, a *domain.Analysis) error
	GetByID(ctx context.Context, analysisID uuid.UUID) (*domain.Analysis, error)
	ListByProject(ctx context.Context, projectID uuid.UUID, offset, limit int) ([]domain.Analysis, int, error)
	ListByBlueprint(ctx context.Context, blueprintID uuid.UUID) ([]domain.Analysis, error)
	// ClaimQueued atomically moves up to limit queued analyses to processing
	// and returns them, so concurrent workers never claim the same row.
	ClaimQueued(ctx context.Context, limit, maxAttempts int) ([]domain.Analysis, error)
	MarkCompleted(ctx context.Context, a *domain.Analysis) error
	MarkFailed(ctx context.Context, analysisID uuid.UUID, errMsg string) error
	Requeue(ctx context.Context, analysisID uuid.UUID) error
	Delete(ctx context.Context, analysisID uuid.UUID) error
}

// CatalogRepository defines the contract for price-book persistence.
type CatalogRepository interface {
	Upsert(ctx context.Context, row *domain.CatalogPrice) error
	ListByTrade(ctx context.Context, trade domain.Trade) ([]domain.CatalogPrice, error)
	ListAll(ctx context.Context) ([]domain.CatalogPrice, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
