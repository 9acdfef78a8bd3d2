package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"takeoffs/internal/analyzer"
	"takeoffs/internal/config"
	"takeoffs/internal/domain"
	"takeoffs/internal/port"
	"takeoffs/internal/takeoff"
)

// AnalysisRequestInput is the DTO for requesting a blueprint analysis.
type AnalysisRequestInput struct {
	BlueprintID  uuid.UUID           `json:"blueprint_id" binding:"required"`
	Trade        domain.Trade        `json:"trade" binding:"required"`
	AnalysisType domain.AnalysisType `json:"analysis_type"`
	RequestedBy  uuid.UUID           `json:"-"`

	// Optional overrides; zero values defer to configured defaults.
	WasteFactorPct    float64 `json:"waste_factor_pct"`
	StudSpacingIn     float64 `json:"stud_spacing_in"`
	IncludeGridSystem bool    `json:"include_grid_system"`
	ContingencyRate   float64 `json:"contingency_rate"`
}

func (in AnalysisRequestInput) overrides() domain.AnalysisOptions {
	return domain.AnalysisOptions{
		WasteFactorPct:    in.WasteFactorPct,
		StudSpacingIn:     in.StudSpacingIn,
		IncludeGridSystem: in.IncludeGridSystem,
		ContingencyRate:   in.ContingencyRate,
	}
}

// AnalysisService defines the takeoff analysis contract.
type AnalysisService interface {
	Request(ctx context.Context, input AnalysisRequestInput) (*domain.Analysis, error)
	GetByID(ctx context.Context, analysisID uuid.UUID) (*domain.Analysis, error)
	GetResult(ctx context.Context, analysisID uuid.UUID) (*takeoff.AnalysisResult, error)
	ListByProject(ctx context.Context, projectID uuid.UUID, offset, limit int) ([]domain.Analysis, int, error)
	ListByBlueprint(ctx context.Context, blueprintID uuid.UUID) ([]domain.Analysis, error)
	// AnalyzeText runs the estimation pipeline over caller-provided analysis
	// text without touching storage or the LLM.
	AnalyzeText(ctx context.Context, rawText string, input AnalysisRequestInput) (*takeoff.AnalysisResult, error)
	// RunAnalysis executes one claimed analysis end to end. Called by the
	// queue worker.
	RunAnalysis(ctx context.Context, a *domain.Analysis, maxAttempts int)
}

type analysisService struct {
	analysisRepo  port.AnalysisRepository
	blueprintRepo port.BlueprintRepository
	projectRepo   port.ProjectRepository
	userRepo      port.UserRepository
	catalogRepo   port.CatalogRepository
	storage       port.ObjectStorage
	blueprints    port.BlueprintAnalyzer
	emailer       port.EmailSender
	cfg           config.TakeoffConfig
}

// NewAnalysisService creates a new AnalysisService implementation.
func NewAnalysisService(
	analysisRepo port.AnalysisRepository,
	blueprintRepo port.BlueprintRepository,
	projectRepo port.ProjectRepository,
	userRepo port.UserRepository,
	catalogRepo port.CatalogRepository,
	storage port.ObjectStorage,
	blueprints port.BlueprintAnalyzer,
	emailer port.EmailSender,
	cfg config.TakeoffConfig,
) AnalysisService {
	return &analysisService{
		analysisRepo:  analysisRepo,
		blueprintRepo: blueprintRepo,
		projectRepo:   projectRepo,
		userRepo:      userRepo,
		catalogRepo:   catalogRepo,
		storage:       storage,
		blueprints:    blueprints,
		emailer:       emailer,
		cfg:           cfg,
	}
}

func (s *analysisService) Request(ctx context.Context, input AnalysisRequestInput) (*domain.Analysis, error) {
	if domain.ParseTrade(string(input.Trade)) == domain.TradeUnknown {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownTrade, string(input.Trade))
	}

	bp, err := s.blueprintRepo.GetByID(ctx, input.BlueprintID)
	if err != nil {
		return nil, err
	}

	analysisType := input.AnalysisType
	if analysisType == "" {
		analysisType = domain.AnalysisTypeFull
	}

	a := &domain.Analysis{
		ProjectID:    bp.ProjectID,
		BlueprintID:  bp.ID,
		Trade:        input.Trade,
		AnalysisType: analysisType,
		Status:       domain.AnalysisStatusQueued,
		RequestedBy:  input.RequestedBy,
	}
	// the worker picks the row up later, so any per-request overrides
	// have to travel with it
	if overrides := input.overrides(); overrides != (domain.AnalysisOptions{}) {
		raw, err := json.Marshal(overrides)
		if err != nil {
			return nil, fmt.Errorf("analysisService.Request: encoding options: %w", err)
		}
		a.Options = raw
	}
	if err := s.analysisRepo.Create(ctx, a); err != nil {
		return nil, err
	}
	log.Printf("analysisService.Request: queued analysis %s (%s, %s) for blueprint %s",
		a.ID, a.Trade, a.AnalysisType, bp.ID)
	return a, nil
}

func (s *analysisService) GetByID(ctx context.Context, analysisID uuid.UUID) (*domain.Analysis, error) {
	return s.analysisRepo.GetByID(ctx, analysisID)
}

func (s *analysisService) GetResult(ctx context.Context, analysisID uuid.UUID) (*takeoff.AnalysisResult, error) {
	a, err := s.analysisRepo.GetByID(ctx, analysisID)
	if err != nil {
		return nil, err
	}
	if a.Status != domain.AnalysisStatusCompleted {
		return nil, domain.ErrAnalysisNotCompleted
	}

	var result takeoff.AnalysisResult
	if err := json.Unmarshal(a.Result, &result); err != nil {
		return nil, fmt.Errorf("analysisService.GetResult: decoding result: %w", err)
	}
	return &result, nil
}

func (s *analysisService) ListByProject(ctx context.Context, projectID uuid.UUID, offset, limit int) ([]domain.Analysis, int, error) {
	return s.analysisRepo.ListByProject(ctx, projectID, offset, limit)
}

func (s *analysisService) ListByBlueprint(ctx context.Context, blueprintID uuid.UUID) ([]domain.Analysis, error) {
	return s.analysisRepo.ListByBlueprint(ctx, blueprintID)
}

func (s *analysisService) AnalyzeText(ctx context.Context, rawText string, input AnalysisRequestInput) (*takeoff.AnalysisResult, error) {
	cat, err := s.loadCatalog(ctx, input.Trade)
	if err != nil {
		return nil, err
	}
	engine := takeoff.NewEngine(cat)
	return engine.Analyze(rawText, s.buildOptions(input))
}

func (s *analysisService) RunAnalysis(ctx context.Context, a *domain.Analysis, maxAttempts int) {
	bp, err := s.blueprintRepo.GetByID(ctx, a.BlueprintID)
	if err != nil {
		s.fail(ctx, a, fmt.Sprintf("loading blueprint: %v", err))
		return
	}

	fileBytes, err := s.storage.Download(ctx, bp.S3Bucket, bp.S3Key)
	if err != nil {
		s.fail(ctx, a, fmt.Sprintf("downloading blueprint: %v", err))
		return
	}

	output, err := s.blueprints.Analyze(ctx, port.AnalyzeInput{
		FileBytes:    fileBytes,
		ContentType:  bp.ContentType,
		Trade:        a.Trade,
		AnalysisType: a.AnalysisType,
	})
	if err != nil {
		s.handleAnalyzeError(ctx, a, err, maxAttempts)
		return
	}

	cat, err := s.loadCatalog(ctx, a.Trade)
	if err != nil {
		s.fail(ctx, a, fmt.Sprintf("loading catalog: %v", err))
		return
	}

	input := AnalysisRequestInput{Trade: a.Trade, AnalysisType: a.AnalysisType}
	if len(a.Options) > 0 {
		var o domain.AnalysisOptions
		if err := json.Unmarshal(a.Options, &o); err != nil {
			s.fail(ctx, a, fmt.Sprintf("decoding analysis options: %v", err))
			return
		}
		input.WasteFactorPct = o.WasteFactorPct
		input.StudSpacingIn = o.StudSpacingIn
		input.IncludeGridSystem = o.IncludeGridSystem
		input.ContingencyRate = o.ContingencyRate
	}

	engine := takeoff.NewEngine(cat)
	result, err := engine.Analyze(output.RawText, s.buildOptions(input))
	if err != nil {
		s.fail(ctx, a, fmt.Sprintf("running takeoff pipeline: %v", err))
		return
	}

	resultJSON, err := json.Marshal(result)
	if err != nil {
		s.fail(ctx, a, fmt.Sprintf("encoding result: %v", err))
		return
	}

	a.ModelUsed = output.ModelUsed
	a.PromptUsed = output.PromptUsed
	a.Result = resultJSON
	if err := s.analysisRepo.MarkCompleted(ctx, a); err != nil {
		log.Printf("analysisService.RunAnalysis: failed to save results for %s: %v", a.ID, err)
		return
	}

	log.Printf("analysisService.RunAnalysis: analysis %s completed (%d categories, total %.2f)",
		a.ID, len(result.Categories), result.Totals.Total)

	s.notifyCompleted(ctx, a)
}

// handleAnalyzeError requeues rate-limited analyses under the attempt
// threshold and permanently fails everything else.
func (s *analysisService) handleAnalyzeError(ctx context.Context, a *domain.Analysis, analyzeErr error, maxAttempts int) {
	var rlErr *analyzer.RateLimitError
	if errors.As(analyzeErr, &rlErr) && a.AnalyzeAttempts < maxAttempts {
		log.Printf("analysisService.RunAnalysis: analysis %s rate limited by %s, requeueing (attempt %d/%d)",
			a.ID, rlErr.Provider, a.AnalyzeAttempts, maxAttempts)
		if err := s.analysisRepo.Requeue(ctx, a.ID); err != nil {
			log.Printf("analysisService.handleAnalyzeError: failed to requeue %s: %v", a.ID, err)
		}
		return
	}
	s.fail(ctx, a, fmt.Sprintf("analyzing blueprint: %v", analyzeErr))
}

func (s *analysisService) fail(ctx context.Context, a *domain.Analysis, msg string) {
	log.Printf("analysisService.RunAnalysis: analysis %s failed: %s", a.ID, msg)
	if err := s.analysisRepo.MarkFailed(ctx, a.ID, msg); err != nil {
		log.Printf("analysisService.fail: failed to mark %s failed: %v", a.ID, err)
	}
	s.notifyFailed(ctx, a, msg)
}

// loadCatalog overlays the persisted price book onto the built-in catalog.
// A missing price book is not an error; the built-in catalog stands alone.
func (s *analysisService) loadCatalog(ctx context.Context, trade domain.Trade) (*takeoff.Catalog, error) {
	cat := takeoff.DefaultCatalog()
	if s.catalogRepo == nil {
		return cat, nil
	}
	rows, err := s.catalogRepo.ListByTrade(ctx, trade)
	if err != nil {
		log.Printf("analysisService.loadCatalog: price book unavailable, using built-in catalog: %v", err)
		return cat, nil
	}
	return cat.WithOverrides(rows), nil
}

func (s *analysisService) buildOptions(input AnalysisRequestInput) takeoff.Options {
	opts := takeoff.DefaultOptions(input.Trade)
	opts.AnalysisType = input.AnalysisType

	if w := s.cfg.WasteFactors[string(input.Trade)]; w > 0 {
		opts.WasteFactorPct = w
	}
	if s.cfg.StudSpacingIn > 0 {
		opts.StudSpacingIn = s.cfg.StudSpacingIn
	}
	if s.cfg.LaborRatePerHour > 0 {
		opts.LaborRatePerHour = s.cfg.LaborRatePerHour
	}
	if s.cfg.ContingencyRate > 0 {
		opts.ContingencyRate = s.cfg.ContingencyRate
	}
	opts.GeneralConditionsRate = s.cfg.GeneralConditionsRate
	opts.OverheadProfitRate = s.cfg.OverheadProfitRate

	// per-request overrides win over configured defaults
	if input.WasteFactorPct > 0 {
		opts.WasteFactorPct = input.WasteFactorPct
	}
	if input.StudSpacingIn > 0 {
		opts.StudSpacingIn = input.StudSpacingIn
	}
	if input.ContingencyRate > 0 {
		opts.ContingencyRate = input.ContingencyRate
	}
	opts.IncludeGridSystem = input.IncludeGridSystem
	return opts
}

func (s *analysisService) notifyCompleted(ctx context.Context, a *domain.Analysis) {
	if s.emailer == nil {
		return
	}
	user, err := s.userRepo.GetByID(ctx, a.RequestedBy)
	if err != nil {
		return
	}
	project, err := s.projectRepo.GetByID(ctx, a.ProjectID)
	if err != nil {
		return
	}
	if err := s.emailer.SendAnalysisCompleteEmail(ctx, user.Email, user.FullName, project.Name, a.ID.String()); err != nil {
		log.Printf("analysisService.notifyCompleted: email failed: %v", err)
	}
}

func (s *analysisService) notifyFailed(ctx context.Context, a *domain.Analysis, reason string) {
	if s.emailer == nil {
		return
	}
	user, err := s.userRepo.GetByID(ctx, a.RequestedBy)
	if err != nil {
		return
	}
	project, err := s.projectRepo.GetByID(ctx, a.ProjectID)
	if err != nil {
		return
	}
	if err := s.emailer.SendAnalysisFailedEmail(ctx, user.Email, user.FullName, project.Name, reason); err != nil {
		log.Printf("analysisService.notifyFailed: email failed: %v", err)
	}
}
