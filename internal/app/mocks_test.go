//go:build unit
// +build unit

package app

import (
	"context"
	"sync"
	"time"

	"github.com/MGTheTrain/crypto-workbench/internal/domain/audit"
	"github.com/MGTheTrain/crypto-workbench/internal/domain/cryptoalg"
	"github.com/MGTheTrain/crypto-workbench/internal/domain/workbench"

	"github.com/stretchr/testify/mock"
)

// MockOperationRepository is a mock for audit.OperationRepository
type MockOperationRepository struct {
	mock.Mock
}

func (m *MockOperationRepository) Create(ctx context.Context, record *audit.OperationRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockOperationRepository) List(ctx context.Context, query *audit.OperationQuery) ([]*audit.OperationRecord, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*audit.OperationRecord), args.Error(1)
}

func (m *MockOperationRepository) GetByID(ctx context.Context, recordID string) (*audit.OperationRecord, error) {
	args := m.Called(ctx, recordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*audit.OperationRecord), args.Error(1)
}

// MockRSAKeyGenerator is a mock for cryptoalg.RSAKeyGenerator
type MockRSAKeyGenerator struct {
	mock.Mock
}

func (m *MockRSAKeyGenerator) GenerateKeyPair(keySize int) (*cryptoalg.RSAKeyPair, error) {
	args := m.Called(keySize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cryptoalg.RSAKeyPair), args.Error(1)
}

// capturingRecorder keeps every record it receives
type capturingRecorder struct {
	mu      sync.Mutex
	records []*audit.OperationRecord
}

func (r *capturingRecorder) Record(_ context.Context, record *audit.OperationRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, record)
}

func (r *capturingRecorder) last() *audit.OperationRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.records) == 0 {
		return nil
	}
	return r.records[len(r.records)-1]
}

// staticCapabilities serves a fixed report
type staticCapabilities struct {
	report *workbench.CapabilityReport
}

func (s *staticCapabilities) Probe(context.Context) *workbench.CapabilityReport { return s.report }
func (s *staticCapabilities) Report() *workbench.CapabilityReport              { return s.report }

func availableReport() *workbench.CapabilityReport {
	return &workbench.CapabilityReport{
		RandomSource: workbench.Capability{Name: workbench.CapabilityRandomSource, Available: true},
		AES:          workbench.Capability{Name: workbench.CapabilityAES, Available: true},
		RSAPrimary:   workbench.Capability{Name: workbench.CapabilityRSAPrimary, Available: true},
		RSAFallback:  workbench.Capability{Name: workbench.CapabilityRSAFallback, Detail: "disabled"},
		SHA2:         workbench.Capability{Name: workbench.CapabilitySHA2, Available: true},
	}
}

const workbenchIdle = 30 * time.Minute

func nowUTC() time.Time { return time.Now().UTC() }
