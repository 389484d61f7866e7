// Package therapists holds therapist profiles, their application lifecycle and uploaded documents.
package therapists
