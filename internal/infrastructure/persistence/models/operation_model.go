package models

import (
	"time"

	"github.com/MGTheTrain/crypto-workbench/internal/domain/audit"
)

// OperationModel is the GORM database model for audit records (infrastructure concern)
type OperationModel struct {
	ID              string    `gorm:"primaryKey;type:varchar(36)"`
	SessionID       string    `gorm:"index;type:varchar(36)"`
	Operation       string    `gorm:"not null;index;type:varchar(20)"`
	Algorithm       string    `gorm:"type:varchar(10)"`
	KeySize         uint32    `gorm:"type:integer"`
	Mode            string    `gorm:"type:varchar(10)"`
	Encoding        string    `gorm:"type:varchar(10)"`
	Digest          string    `gorm:"type:varchar(10)"`
	Outcome         string    `gorm:"not null;index;type:varchar(10)"`
	ErrorCategory   string    `gorm:"type:varchar(20)"`
	DateTimeCreated time.Time `gorm:"not null;index"`
}

// TableName specifies the table name for GORM
func (OperationModel) TableName() string {
	return "operation_records"
}

// ToDomain converts GORM model to domain entity
func (m *OperationModel) ToDomain() *audit.OperationRecord {
	return &audit.OperationRecord{
		ID:              m.ID,
		SessionID:       m.SessionID,
		Operation:       audit.Operation(m.Operation),
		Algorithm:       m.Algorithm,
		KeySize:         m.KeySize,
		Mode:            m.Mode,
		Encoding:        m.Encoding,
		Digest:          m.Digest,
		Outcome:         audit.Outcome(m.Outcome),
		ErrorCategory:   m.ErrorCategory,
		DateTimeCreated: m.DateTimeCreated,
	}
}

// FromDomain converts domain entity to GORM model
func (m *OperationModel) FromDomain(r *audit.OperationRecord) {
	m.ID = r.ID
	m.SessionID = r.SessionID
	m.Operation = string(r.Operation)
	m.Algorithm = r.Algorithm
	m.KeySize = r.KeySize
	m.Mode = r.Mode
	m.Encoding = r.Encoding
	m.Digest = r.Digest
	m.Outcome = string(r.Outcome)
	m.ErrorCategory = r.ErrorCategory
	m.DateTimeCreated = r.DateTimeCreated
}
