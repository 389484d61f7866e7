package therapists

import (
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// TherapistFile is a document uploaded with a therapist application
type TherapistFile struct {
	ID          string `validate:"required,uuid4"`
	TherapistID string `validate:"required,uuid4"`
	FileName    string `validate:"required,max=255"`
	Purpose     string `validate:"required,oneof=LICENSE CERTIFICATE DOCUMENT"`
	ContentType string
	Size        int64  `validate:"gte=0"`
	StoragePath string `validate:"required"`
	UploadedAt  time.Time
}

var (
	licensePattern     = regexp.MustCompile(`license`)
	certificatePattern = regexp.MustCompile(`certificate|certification|diploma|degree`)
	documentPattern    = regexp.MustCompile(`resume|cv|transcript`)
)

// PurposeFromFile maps the declared file type, or the file name when no type was declared, to a document purpose
func PurposeFromFile(declaredType, fileName string) string {
	candidate := strings.ToLower(strings.TrimSpace(declaredType))
	if candidate == "" {
		candidate = strings.ToLower(strings.TrimSuffix(filepath.Base(fileName), filepath.Ext(fileName)))
	}

	switch {
	case licensePattern.MatchString(candidate):
		return FilePurposeLicense
	case certificatePattern.MatchString(candidate):
		return FilePurposeCertificate
	case documentPattern.MatchString(candidate):
		return FilePurposeDocument
	default:
		return FilePurposeDocument
	}
}

// HasLicense reports whether files include a license document
func HasLicense(files []*TherapistFile) bool {
	for _, f := range files {
		if f.Purpose == FilePurposeLicense {
			return true
		}
	}
	return false
}
