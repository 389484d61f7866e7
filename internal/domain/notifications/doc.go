// Package notifications holds in-app notifications and the delivery contracts for email and realtime push.
package notifications
