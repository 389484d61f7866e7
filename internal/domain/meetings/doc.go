// Package meetings holds therapy sessions, therapist availability and the slot generation rules for booking.
package meetings
