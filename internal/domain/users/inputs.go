package users

import (
	"time"

	"github.com/Wetooa/mentara-sub026/internal/pkg/validators"
)

// RegisterInput holds the data needed to create a client account
type RegisterInput struct {
	Email     string `validate:"required,email,max=255"`
	Password  string `validate:"required"`
	FirstName string `validate:"required,notblank,max=100"`
	LastName  string `validate:"required,notblank,max=100"`
}

// Validate for validating RegisterInput struct
func (in *RegisterInput) Validate() error {
	if err := validators.ValidateStruct(in); err != nil {
		return err
	}
	return ValidatePasswordStrength(in.Password)
}

// ProfileUpdate is a partial update of the caller's profile. Nil fields are left untouched.
type ProfileUpdate struct {
	FirstName      *string    `validate:"omitempty,notblank,max=100"`
	LastName       *string    `validate:"omitempty,notblank,max=100"`
	Bio            *string    `validate:"omitempty,max=2000"`
	ProfilePicture *string    `validate:"omitempty,url,max=2048"`
	Birthday       *time.Time `validate:"omitempty"`
}

// Validate for validating ProfileUpdate struct
func (p *ProfileUpdate) Validate() error {
	return validators.ValidateStruct(p)
}

// Apply copies the set fields onto u and returns the previous and new values of changed fields
func (p *ProfileUpdate) Apply(u *User) (oldValues, newValues map[string]interface{}) {
	oldValues = map[string]interface{}{}
	newValues = map[string]interface{}{}

	setString := func(name string, dst *string, src *string) {
		if src == nil || *dst == *src {
			return
		}
		oldValues[name] = *dst
		newValues[name] = *src
		*dst = *src
	}

	setString("firstName", &u.FirstName, p.FirstName)
	setString("lastName", &u.LastName, p.LastName)
	setString("bio", &u.Bio, p.Bio)
	setString("profilePicture", &u.ProfilePicture, p.ProfilePicture)

	if p.Birthday != nil && (u.Birthday == nil || !u.Birthday.Equal(*p.Birthday)) {
		oldValues["birthday"] = u.Birthday
		newValues["birthday"] = *p.Birthday
		birthday := *p.Birthday
		u.Birthday = &birthday
	}
	return oldValues, newValues
}

// UserQuery filters the user listing of administrators
type UserQuery struct {
	Role     string `validate:"omitempty,role"`
	Search   string `validate:"max=100"`
	IsActive *bool
	Limit    int `validate:"gte=0"`
	Offset   int `validate:"gte=0"`
}

// NewUserQuery creates a UserQuery with default values
func NewUserQuery() *UserQuery {
	return &UserQuery{}
}

// Validate for validating UserQuery struct
func (q *UserQuery) Validate() error {
	return validators.ValidateStruct(q)
}

// AuthResult is returned after registration, login and token refresh
type AuthResult struct {
	User   *User
	Tokens *TokenPair
}
