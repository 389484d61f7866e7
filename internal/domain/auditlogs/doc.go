// Package auditlogs holds the audit trail of user actions and operational system events.
package auditlogs
