package events

// Account events
const (
	UserRegistered     = "UserRegistered"
	UserLoggedIn       = "UserLoggedIn"
	UserLoginFailed    = "UserLoginFailed"
	UserLoggedOut      = "UserLoggedOut"
	UserProfileUpdated = "UserProfileUpdated"
	UserDeactivated    = "UserDeactivated"
	UserReactivated    = "UserReactivated"
	UserRoleChanged    = "UserRoleChanged"
	PasswordChanged    = "PasswordChanged"
	EmailVerified      = "EmailVerified"
)

// Therapist application events
const (
	TherapistApplicationSubmitted = "TherapistApplicationSubmitted"
	TherapistApplicationReviewed  = "TherapistApplicationReviewed"
	TherapistProfileUpdated       = "TherapistProfileUpdated"
)

// Client therapist relationship events
const (
	ClientTherapistRequested = "ClientTherapistRequested"
	ClientTherapistAccepted  = "ClientTherapistAccepted"
	ClientTherapistDenied    = "ClientTherapistDenied"
	ClientTherapistRemoved   = "ClientTherapistRemoved"
)

// Appointment events
const (
	AppointmentBooked      = "AppointmentBooked"
	AppointmentRescheduled = "AppointmentRescheduled"
	AppointmentCancelled   = "AppointmentCancelled"
	AppointmentCompleted   = "AppointmentCompleted"
)

// Messaging events
const (
	ConversationCreated = "ConversationCreated"
	MessageSent         = "MessageSent"
	MessageRead         = "MessageRead"
)

// Moderation events
const (
	ModerationActionTaken = "ModerationActionTaken"
	ContentFlagged        = "ContentFlagged"
)

// Worksheet events
const (
	WorksheetAssigned  = "WorksheetAssigned"
	WorksheetSubmitted = "WorksheetSubmitted"
	WorksheetReviewed  = "WorksheetReviewed"
)

// Review events
const (
	ReviewSubmitted = "ReviewSubmitted"
	ReviewModerated = "ReviewModerated"
	ReviewDeleted   = "ReviewDeleted"
)
