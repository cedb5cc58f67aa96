// Package persistence provides database repository implementations.
// It uses GORM as the ORM layer to store the operation audit trail
// in SQLite, PostgreSQL or MySQL, with validation on write and
// OpenTelemetry spans for every query when tracing is enabled.
package persistence
