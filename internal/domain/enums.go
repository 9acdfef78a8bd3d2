package domain

// FileType represents the allowed blueprint file types for upload.
type FileType string

const (
	FileTypePDF FileType = "pdf"
	FileTypeJPG FileType = "jpg"
	FileTypePNG FileType = "png"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypePDF: "application/pdf",
	FileTypeJPG: "image/jpeg",
	FileTypePNG: "image/png",
}

// AllowedContentTypes maps MIME content types back to FileType.
var AllowedContentTypes = map[string]FileType{
	"application/pdf": FileTypePDF,
	"image/jpeg":      FileTypeJPG,
	"image/png":       FileTypePNG,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf":  FileTypePDF,
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPG,
	"png":  FileTypePNG,
}

// UserRole defines the role hierarchy.
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleMember UserRole = "member"
)

// ValidUserRoles is the set of assignable roles.
var ValidUserRoles = map[UserRole]bool{
	RoleAdmin:  true,
	RoleMember: true,
}

// FileStatus represents the lifecycle of an uploaded blueprint file.
type FileStatus string

const (
	FileStatusPending  FileStatus = "pending"
	FileStatusUploaded FileStatus = "uploaded"
	FileStatusFailed   FileStatus = "failed"
	FileStatusDeleted  FileStatus = "deleted"
)

// Trade identifies the construction trade an analysis is scoped to.
type Trade string

const (
	TradePlumbing   Trade = "plumbing"
	TradeSheathing  Trade = "sheathing"
	TradeAcoustical Trade = "acoustical"
	TradeFraming    Trade = "framing"
	TradeMechanical Trade = "mechanical"
	TradeCarpentry  Trade = "carpentry"
	TradeUnknown    Trade = "unknown"
)

// ParseTrade converts a string to a Trade, returning TradeUnknown for
// unrecognized values.
func ParseTrade(s string) Trade {
	switch Trade(s) {
	case TradePlumbing, TradeSheathing, TradeAcoustical, TradeFraming, TradeMechanical, TradeCarpentry:
		return Trade(s)
	}
	return TradeUnknown
}

// AllTrades lists every supported trade, in display order.
var AllTrades = []Trade{
	TradePlumbing,
	TradeSheathing,
	TradeAcoustical,
	TradeFraming,
	TradeMechanical,
	TradeCarpentry,
}

// AnalysisType selects how much of the pipeline runs for an analysis.
type AnalysisType string

const (
	AnalysisTypeMaterials AnalysisType = "materials"
	AnalysisTypeCosts     AnalysisType = "costs"
	AnalysisTypeFull      AnalysisType = "full"
)

// ParseAnalysisType converts a string to an AnalysisType, defaulting to full.
func ParseAnalysisType(s string) AnalysisType {
	switch AnalysisType(s) {
	case AnalysisTypeMaterials, AnalysisTypeCosts, AnalysisTypeFull:
		return AnalysisType(s)
	}
	return AnalysisTypeFull
}

// AnalysisStatus represents the lifecycle of a takeoff analysis.
type AnalysisStatus string

const (
	AnalysisStatusQueued     AnalysisStatus = "queued"
	AnalysisStatusProcessing AnalysisStatus = "processing"
	AnalysisStatusCompleted  AnalysisStatus = "completed"
	AnalysisStatusFailed     AnalysisStatus = "failed"
)
