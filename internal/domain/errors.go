package domain

import "errors"

var (
	ErrNotFound             = errors.New("resource not found")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrForbidden            = errors.New("forbidden")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrUserInactive         = errors.New("user is inactive")
	ErrUnsupportedFileType  = errors.New("unsupported file type")
	ErrFileTooLarge         = errors.New("file exceeds maximum allowed size")
	ErrDuplicateEmail       = errors.New("email already exists")
	ErrUploadFailed         = errors.New("file upload to storage failed")
	ErrProjectNotFound      = errors.New("project not found")
	ErrBlueprintNotFound    = errors.New("blueprint not found")
	ErrAnalysisNotFound     = errors.New("analysis not found")
	ErrAnalysisNotCompleted = errors.New("analysis has not completed yet")
	ErrUnknownTrade         = errors.New("unknown trade")
	ErrNegativeQuantity     = errors.New("negative length, area, or count")
	ErrInsufficientRole     = errors.New("insufficient role for this action")
)
