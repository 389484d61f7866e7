// Package clients holds client therapist relationships and pre-assessments.
package clients
