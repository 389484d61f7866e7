package validators

import "github.com/go-playground/validator/v10"

// Roles lists the account roles a user may hold.
var Roles = []string{"client", "therapist", "moderator", "admin"}

// RoleValidation accepts one of Roles.
func RoleValidation(fl validator.FieldLevel) bool {
	return IsRole(fl.Field().String())
}

// IsRole reports whether s is one of Roles.
func IsRole(s string) bool {
	for _, r := range Roles {
		if r == s {
			return true
		}
	}
	return false
}
