// Package moderation holds content reports, moderator actions and keyword based content screening.
package moderation
