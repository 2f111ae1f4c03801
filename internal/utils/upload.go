package utils

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// UploadFilename generates a unique filename for an uploaded file,
// keeping the original extension
func UploadFilename(original string) string {
	ext := filepath.Ext(original)
	return uuid.NewString() + ext
}

// GenerateReferralCode produces a short uppercase code for a new user
func GenerateReferralCode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "BD" + strings.ToUpper(raw[:8])
}
