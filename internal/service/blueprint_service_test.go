package service_test

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"takeoffs/internal/config"
	"takeoffs/internal/domain"
	"takeoffs/internal/port"
	"takeoffs/internal/service"
	"takeoffs/mocks"
)

// memFile adapts a bytes.Reader to multipart.File.
type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

func uploadInput(filename string, data []byte) service.BlueprintUploadInput {
	return service.BlueprintUploadInput{
		ProjectID:   uuid.New(),
		UploadedBy:  uuid.New(),
		SheetNumber: "P-101",
		File:        memFile{bytes.NewReader(data)},
		Header: &multipart.FileHeader{
			Filename: filename,
			Size:     int64(len(data)),
		},
	}
}

func setupBlueprintService() (service.BlueprintService, *mocks.MockBlueprintRepo, *mocks.MockProjectRepo, *mocks.MockObjectStorage) {
	blueprintRepo := new(mocks.MockBlueprintRepo)
	projectRepo := new(mocks.MockProjectRepo)
	storage := new(mocks.MockObjectStorage)
	svc := service.NewBlueprintService(blueprintRepo, projectRepo, storage, &config.S3Config{
		Bucket:        "takeoffs-blueprints",
		MaxFileSizeMB: 1,
		PresignExpiry: 3600,
	})
	return svc, blueprintRepo, projectRepo, storage
}

func TestBlueprintService_Upload_Success(t *testing.T) {
	svc, blueprintRepo, projectRepo, storage := setupBlueprintService()

	input := uploadInput("sheet.pdf", []byte("%PDF-1.4 fake blueprint content"))

	projectRepo.On("GetByID", mock.Anything, input.ProjectID).
		Return(&domain.Project{ID: input.ProjectID}, nil).Once()
	blueprintRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Blueprint")).Return(nil).Once()
	storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).
		Return(&port.UploadOutput{Location: "s3://takeoffs-blueprints/key"}, nil).Once()
	blueprintRepo.On("UpdateStatus", mock.Anything, mock.AnythingOfType("uuid.UUID"), domain.FileStatusUploaded).
		Return(nil).Once()

	bp, err := svc.Upload(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, domain.FileTypePDF, bp.FileType)
	assert.Equal(t, "application/pdf", bp.ContentType)
	assert.Equal(t, domain.FileStatusUploaded, bp.Status)
	assert.Equal(t, "sheet.pdf", bp.OriginalName)
	assert.Equal(t, "P-101", bp.SheetNumber)
	assert.True(t, strings.HasPrefix(bp.S3Key, "projects/"+input.ProjectID.String()+"/blueprints/"))
	blueprintRepo.AssertExpectations(t)
	storage.AssertExpectations(t)
}

func TestBlueprintService_Upload_UnsupportedExtension(t *testing.T) {
	svc, blueprintRepo, projectRepo, _ := setupBlueprintService()

	input := uploadInput("notes.txt", []byte("plain text"))
	projectRepo.On("GetByID", mock.Anything, input.ProjectID).
		Return(&domain.Project{ID: input.ProjectID}, nil).Once()

	_, err := svc.Upload(context.Background(), input)

	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
	blueprintRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBlueprintService_Upload_ContentMismatch(t *testing.T) {
	svc, blueprintRepo, projectRepo, _ := setupBlueprintService()

	// pdf extension but plain-text magic bytes
	input := uploadInput("sheet.pdf", []byte("this is not a pdf at all"))
	projectRepo.On("GetByID", mock.Anything, input.ProjectID).
		Return(&domain.Project{ID: input.ProjectID}, nil).Once()

	_, err := svc.Upload(context.Background(), input)

	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
	blueprintRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBlueprintService_Upload_FileTooLarge(t *testing.T) {
	svc, blueprintRepo, projectRepo, _ := setupBlueprintService()

	input := uploadInput("sheet.pdf", []byte("%PDF-1.4 small body"))
	input.Header.Size = 2 * 1024 * 1024 // over the 1 MB test limit

	projectRepo.On("GetByID", mock.Anything, input.ProjectID).
		Return(&domain.Project{ID: input.ProjectID}, nil).Once()

	_, err := svc.Upload(context.Background(), input)

	assert.ErrorIs(t, err, domain.ErrFileTooLarge)
	blueprintRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBlueprintService_Upload_ProjectNotFound(t *testing.T) {
	svc, blueprintRepo, projectRepo, _ := setupBlueprintService()

	input := uploadInput("sheet.pdf", []byte("%PDF-1.4 fake"))
	projectRepo.On("GetByID", mock.Anything, input.ProjectID).Return(nil, domain.ErrNotFound).Once()

	_, err := svc.Upload(context.Background(), input)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	blueprintRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBlueprintService_Upload_StorageFailureMarksFailed(t *testing.T) {
	svc, blueprintRepo, projectRepo, storage := setupBlueprintService()

	input := uploadInput("sheet.pdf", []byte("%PDF-1.4 fake blueprint content"))

	projectRepo.On("GetByID", mock.Anything, input.ProjectID).
		Return(&domain.Project{ID: input.ProjectID}, nil).Once()
	blueprintRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Blueprint")).Return(nil).Once()
	storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).
		Return(nil, errors.New("connection reset")).Once()
	blueprintRepo.On("UpdateStatus", mock.Anything, mock.AnythingOfType("uuid.UUID"), domain.FileStatusFailed).
		Return(nil).Once()

	_, err := svc.Upload(context.Background(), input)

	assert.ErrorIs(t, err, domain.ErrUploadFailed)
	blueprintRepo.AssertExpectations(t)
}

func TestBlueprintService_GetDownloadURL(t *testing.T) {
	svc, blueprintRepo, _, storage := setupBlueprintService()

	bp := &domain.Blueprint{
		ID:       uuid.New(),
		S3Bucket: "takeoffs-blueprints",
		S3Key:    "projects/p/blueprints/b/sheet.pdf",
	}
	blueprintRepo.On("GetByID", mock.Anything, bp.ID).Return(bp, nil).Once()
	storage.On("GetPresignedURL", mock.Anything, bp.S3Bucket, bp.S3Key, int64(3600)).
		Return("https://signed.example.com/sheet.pdf", nil).Once()

	url, err := svc.GetDownloadURL(context.Background(), bp.ID)

	require.NoError(t, err)
	assert.Equal(t, "https://signed.example.com/sheet.pdf", url)
	storage.AssertExpectations(t)
}

func TestBlueprintService_Delete(t *testing.T) {
	svc, blueprintRepo, _, storage := setupBlueprintService()

	bp := &domain.Blueprint{
		ID:       uuid.New(),
		S3Bucket: "takeoffs-blueprints",
		S3Key:    "projects/p/blueprints/b/sheet.pdf",
	}
	blueprintRepo.On("GetByID", mock.Anything, bp.ID).Return(bp, nil).Once()
	storage.On("Delete", mock.Anything, bp.S3Bucket, bp.S3Key).Return(nil).Once()
	blueprintRepo.On("Delete", mock.Anything, bp.ID).Return(nil).Once()

	require.NoError(t, svc.Delete(context.Background(), bp.ID))
	blueprintRepo.AssertExpectations(t)
	storage.AssertExpectations(t)
}

func TestBlueprintService_Delete_StorageErrorKeepsRecord(t *testing.T) {
	svc, blueprintRepo, _, storage := setupBlueprintService()

	bp := &domain.Blueprint{ID: uuid.New(), S3Bucket: "b", S3Key: "k"}
	blueprintRepo.On("GetByID", mock.Anything, bp.ID).Return(bp, nil).Once()
	storage.On("Delete", mock.Anything, bp.S3Bucket, bp.S3Key).Return(errors.New("access denied")).Once()

	err := svc.Delete(context.Background(), bp.ID)

	assert.Error(t, err)
	blueprintRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
