// Package persistence provides database repository implementations.
// It uses GORM as the ORM layer over PostgreSQL or SQLite and stores
// accounts, therapist applications, meetings, conversations, moderation
// records, audit logs, worksheets and notifications. Repositories join a
// transaction started by the Transactor when they receive its context.
package persistence
