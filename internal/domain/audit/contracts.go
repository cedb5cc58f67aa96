package audit

import "context"

// OperationRepository persists the audit trail
type OperationRepository interface {
	Create(ctx context.Context, record *OperationRecord) error
	List(ctx context.Context, query *OperationQuery) ([]*OperationRecord, error)
	GetByID(ctx context.Context, recordID string) (*OperationRecord, error)
}

// Recorder is the write side used by the workbench services.
type Recorder interface {
	Record(ctx context.Context, record *OperationRecord)
}

// OperationMetadataService reads the audit trail
type OperationMetadataService interface {
	List(ctx context.Context, query *OperationQuery) ([]*OperationRecord, error)
	GetByID(ctx context.Context, recordID string) (*OperationRecord, error)
}
