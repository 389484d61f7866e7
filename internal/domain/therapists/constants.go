package therapists

// Application statuses
const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusSuspended = "suspended"
)

// Statuses lists every application status
var Statuses = []string{StatusPending, StatusApproved, StatusRejected, StatusSuspended}

// Document purposes
const (
	FilePurposeLicense     = "LICENSE"
	FilePurposeCertificate = "CERTIFICATE"
	FilePurposeDocument    = "DOCUMENT"
)

// DefaultTimezone is used when a therapist has not set one
const DefaultTimezone = "Asia/Manila"

// NotAvailable is shown for unanswered optional application fields
const NotAvailable = "N/A"

// TemporaryPasswordLength is the length of the password generated on approval
const TemporaryPasswordLength = 12
