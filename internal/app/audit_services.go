package app

import (
	"context"
	"fmt"
	"time"

	"github.com/MGTheTrain/crypto-workbench/internal/domain/audit"
	"github.com/MGTheTrain/crypto-workbench/internal/domain/workbench"
	"github.com/MGTheTrain/crypto-workbench/internal/pkg/logger"

	"github.com/google/uuid"
)

// operationRecorder implements audit.Recorder on top of an OperationRepository
type operationRecorder struct {
	repo   audit.OperationRepository
	logger logger.Logger
}

// NewOperationRecorder creates a recorder that persists records and only logs write failures
func NewOperationRecorder(repo audit.OperationRepository, logger logger.Logger) (audit.Recorder, error) {
	if repo == nil {
		return nil, fmt.Errorf("operation repository cannot be nil")
	}
	return &operationRecorder{
		repo:   repo,
		logger: logger,
	}, nil
}

// Record fills in ID and timestamp when missing and stores the record
func (r *operationRecorder) Record(ctx context.Context, record *audit.OperationRecord) {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.DateTimeCreated.IsZero() {
		record.DateTimeCreated = time.Now().UTC()
	}

	if err := r.repo.Create(ctx, record); err != nil {
		r.logger.ErrorContext(ctx, "failed to record operation", "operation", string(record.Operation), "error", err.Error())
	}
}

type noopRecorder struct{}

// NewNoopRecorder returns a recorder that drops every record, used when auditing is disabled
func NewNoopRecorder() audit.Recorder {
	return noopRecorder{}
}

func (noopRecorder) Record(context.Context, *audit.OperationRecord) {}

// operationMetadataService implements audit.OperationMetadataService
type operationMetadataService struct {
	repo   audit.OperationRepository
	logger logger.Logger
}

// NewOperationMetadataService creates a new operationMetadataService instance
func NewOperationMetadataService(repo audit.OperationRepository, logger logger.Logger) (audit.OperationMetadataService, error) {
	if repo == nil {
		return nil, fmt.Errorf("operation repository cannot be nil")
	}
	return &operationMetadataService{
		repo:   repo,
		logger: logger,
	}, nil
}

// List retrieves audit records considering a query filter when set
func (s *operationMetadataService) List(ctx context.Context, query *audit.OperationQuery) ([]*audit.OperationRecord, error) {
	records, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list operation records: %w", err)
	}
	return records, nil
}

// GetByID retrieves one audit record
func (s *operationMetadataService) GetByID(ctx context.Context, recordID string) (*audit.OperationRecord, error) {
	record, err := s.repo.GetByID(ctx, recordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get operation record: %w", err)
	}
	return record, nil
}

// finishRecord sets outcome and category from err unless the caller already chose an outcome.
// Parameters taken from rejected input are blanked so the record still validates.
func finishRecord(record *audit.OperationRecord, err error) *audit.OperationRecord {
	sanitizeRecord(record)
	if err != nil {
		record.Outcome = audit.OutcomeFailure
		record.ErrorCategory = string(workbench.Classify(err))
		return record
	}
	if record.Outcome == "" {
		record.Outcome = audit.OutcomeSuccess
	}
	return record
}

// sessionOrEmpty drops session IDs the audit record would reject
func sessionOrEmpty(sessionID string) string {
	if _, err := uuid.Parse(sessionID); err != nil {
		return ""
	}
	return sessionID
}

func sanitizeRecord(record *audit.OperationRecord) {
	switch record.Mode {
	case "", "CBC", "ECB":
	default:
		record.Mode = ""
	}
	switch record.Encoding {
	case "", "UTF8", "HEX", "BASE64":
	default:
		record.Encoding = ""
	}
	switch record.Digest {
	case "", "SHA-256", "SHA-384", "SHA-512":
	default:
		record.Digest = ""
	}

	validSize := false
	switch record.Algorithm {
	case "AES":
		validSize = record.KeySize == 128 || record.KeySize == 192 || record.KeySize == 256
	case "RSA":
		validSize = record.KeySize == 1024 || record.KeySize == 2048 || record.KeySize == 3072 || record.KeySize == 4096
	}
	if !validSize {
		record.KeySize = 0
	}
}
