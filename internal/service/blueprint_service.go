package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"takeoffs/internal/config"
	"takeoffs/internal/domain"
	"takeoffs/internal/port"
)

// BlueprintUploadInput is the DTO for blueprint upload requests.
type BlueprintUploadInput struct {
	ProjectID   uuid.UUID
	UploadedBy  uuid.UUID
	SheetNumber string
	File        multipart.File
	Header      *multipart.FileHeader
}

// BlueprintService defines the blueprint file management contract.
type BlueprintService interface {
	Upload(ctx context.Context, input BlueprintUploadInput) (*domain.Blueprint, error)
	GetByID(ctx context.Context, blueprintID uuid.UUID) (*domain.Blueprint, error)
	ListByProject(ctx context.Context, projectID uuid.UUID, offset, limit int) ([]domain.Blueprint, int, error)
	GetDownloadURL(ctx context.Context, blueprintID uuid.UUID) (string, error)
	Delete(ctx context.Context, blueprintID uuid.UUID) error
}

type blueprintService struct {
	blueprintRepo port.BlueprintRepository
	projectRepo   port.ProjectRepository
	storage       port.ObjectStorage
	cfg           *config.S3Config
}

// NewBlueprintService creates a new BlueprintService implementation.
func NewBlueprintService(
	blueprintRepo port.BlueprintRepository,
	projectRepo port.ProjectRepository,
	storage port.ObjectStorage,
	cfg *config.S3Config,
) BlueprintService {
	return &blueprintService{
		blueprintRepo: blueprintRepo,
		projectRepo:   projectRepo,
		storage:       storage,
		cfg:           cfg,
	}
}

func (s *blueprintService) Upload(ctx context.Context, input BlueprintUploadInput) (*domain.Blueprint, error) {
	if _, err := s.projectRepo.GetByID(ctx, input.ProjectID); err != nil {
		return nil, err
	}

	// Validate file extension
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.Header.Filename), "."))
	fileType, ok := domain.AllowedExtensions[ext]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	// Validate file size
	maxBytes := s.cfg.MaxFileSizeMB * 1024 * 1024
	if input.Header.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	// Read first 512 bytes for magic-byte content type detection
	buf := make([]byte, 512)
	n, err := input.File.Read(buf)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading file header: %w", err)
	}
	detectedType := http.DetectContentType(buf[:n])

	if _, validContent := domain.AllowedContentTypes[detectedType]; !validContent {
		return nil, domain.ErrUnsupportedFileType
	}

	// Seek back to beginning for upload
	if _, err := input.File.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking file: %w", err)
	}

	blueprintID := uuid.New()
	s3Key := fmt.Sprintf("projects/%s/blueprints/%s/%s", input.ProjectID, blueprintID, input.Header.Filename)
	contentType := domain.AllowedFileTypes[fileType]

	bp := &domain.Blueprint{
		ID:           blueprintID,
		ProjectID:    input.ProjectID,
		UploadedBy:   input.UploadedBy,
		FileName:     blueprintID.String() + "." + ext,
		OriginalName: input.Header.Filename,
		SheetNumber:  input.SheetNumber,
		FileType:     fileType,
		FileSize:     input.Header.Size,
		S3Bucket:     s.cfg.Bucket,
		S3Key:        s3Key,
		ContentType:  contentType,
		Status:       domain.FileStatusPending,
	}

	log.Printf("blueprintService.Upload: uploading %s (%s, %d bytes) to project %s by user %s",
		input.Header.Filename, contentType, input.Header.Size, input.ProjectID, input.UploadedBy)

	if err := s.blueprintRepo.Create(ctx, bp); err != nil {
		log.Printf("blueprintService.Upload: failed to create blueprint metadata: %v", err)
		return nil, fmt.Errorf("creating blueprint metadata: %w", err)
	}

	_, err = s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.Bucket,
		Key:         s3Key,
		Body:        input.File,
		ContentType: contentType,
		Size:        input.Header.Size,
	})
	if err != nil {
		log.Printf("blueprintService.Upload: S3 upload failed for blueprint %s: %v", bp.ID, err)
		_ = s.blueprintRepo.UpdateStatus(ctx, bp.ID, domain.FileStatusFailed)
		return nil, domain.ErrUploadFailed
	}

	if err := s.blueprintRepo.UpdateStatus(ctx, bp.ID, domain.FileStatusUploaded); err != nil {
		return nil, fmt.Errorf("updating blueprint status: %w", err)
	}
	bp.Status = domain.FileStatusUploaded

	return bp, nil
}

func (s *blueprintService) GetByID(ctx context.Context, blueprintID uuid.UUID) (*domain.Blueprint, error) {
	return s.blueprintRepo.GetByID(ctx, blueprintID)
}

func (s *blueprintService) ListByProject(ctx context.Context, projectID uuid.UUID, offset, limit int) ([]domain.Blueprint, int, error) {
	return s.blueprintRepo.ListByProject(ctx, projectID, offset, limit)
}

func (s *blueprintService) GetDownloadURL(ctx context.Context, blueprintID uuid.UUID) (string, error) {
	bp, err := s.blueprintRepo.GetByID(ctx, blueprintID)
	if err != nil {
		return "", err
	}
	return s.storage.GetPresignedURL(ctx, bp.S3Bucket, bp.S3Key, s.cfg.PresignExpiry)
}

func (s *blueprintService) Delete(ctx context.Context, blueprintID uuid.UUID) error {
	log.Printf("blueprintService.Delete: deleting blueprint %s", blueprintID)

	bp, err := s.blueprintRepo.GetByID(ctx, blueprintID)
	if err != nil {
		return err
	}

	if err := s.storage.Delete(ctx, bp.S3Bucket, bp.S3Key); err != nil {
		log.Printf("blueprintService.Delete: failed to delete from S3: %v", err)
		return fmt.Errorf("deleting from storage: %w", err)
	}

	return s.blueprintRepo.Delete(ctx, blueprintID)
}
