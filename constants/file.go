package constants

import "strings"

// MaxUploadMBDefault is the largest statement we accept when no override is configured.
const MaxUploadMBDefault = 20

// MaxFileNameLength bounds file names accepted for upload and export.
const MaxFileNameLength = 255

// PDFMimeType is the only content type the pipeline accepts.
const PDFMimeType = "application/pdf"

// AllowedExtensions holds the file extensions picked up by directory scans.
var AllowedExtensions = map[string]struct{}{
	"pdf": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}

