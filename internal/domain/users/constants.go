package users

// RoleClient is a person seeking therapy
const RoleClient = "client"

// RoleTherapist is an approved mental health professional
const RoleTherapist = "therapist"

// RoleModerator reviews reported content and user behaviour
const RoleModerator = "moderator"

// RoleAdmin manages users, applications and platform health
const RoleAdmin = "admin"

// Roles lists every valid role
var Roles = []string{RoleClient, RoleTherapist, RoleModerator, RoleAdmin}

// TokenPurposeEmailVerification marks one-time tokens sent to confirm an email address
const TokenPurposeEmailVerification = "email_verification"

// TokenPurposePasswordReset marks one-time tokens sent to reset a password
const TokenPurposePasswordReset = "password_reset"

// MinPasswordLength is the minimum accepted password length
const MinPasswordLength = 8

// TokenTypeBearer is the token type returned with access tokens
const TokenTypeBearer = "Bearer"
