// Package models holds the GORM row types of the audit trail and their
// conversion to and from audit.OperationRecord.
package models
