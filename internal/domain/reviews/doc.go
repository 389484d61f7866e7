// Package reviews holds client ratings of therapists after completed sessions, their moderation and rating statistics.
package reviews
