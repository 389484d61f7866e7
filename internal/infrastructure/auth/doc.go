// Package auth provides the access token issuer, the password hasher and opaque token helpers.
package auth
