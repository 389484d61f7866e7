// Package models contains the GORM database models of the persistence layer.
// Models are kept apart from domain entities and convert with ToDomain and FromDomain.
package models
