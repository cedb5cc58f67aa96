//go:build unit
// +build unit

package v1

import (
	"context"

	"github.com/MGTheTrain/crypto-workbench/internal/domain/audit"
	"github.com/MGTheTrain/crypto-workbench/internal/domain/workbench"

	"github.com/stretchr/testify/mock"
)

// MockAESService is a mock implementation of AESService
type MockAESService struct {
	mock.Mock
}

func (m *MockAESService) Encrypt(ctx context.Context, req *workbench.AESEncryptRequest) (*workbench.AESEncryptResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workbench.AESEncryptResult), args.Error(1)
}

func (m *MockAESService) Decrypt(ctx context.Context, req *workbench.AESDecryptRequest) (*workbench.AESDecryptResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workbench.AESDecryptResult), args.Error(1)
}

// MockRSAKeyService is a mock implementation of RSAKeyService
type MockRSAKeyService struct {
	mock.Mock
}

func (m *MockRSAKeyService) Generate(ctx context.Context, req *workbench.RSAKeyRequest) (*workbench.RSAKeyResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workbench.RSAKeyResult), args.Error(1)
}

// MockSignatureService is a mock implementation of SignatureService
type MockSignatureService struct {
	mock.Mock
}

func (m *MockSignatureService) Sign(ctx context.Context, req *workbench.SignRequest) (*workbench.SignResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workbench.SignResult), args.Error(1)
}

func (m *MockSignatureService) Verify(ctx context.Context, req *workbench.VerifyRequest) (*workbench.VerifyResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workbench.VerifyResult), args.Error(1)
}

// MockCapabilityService is a mock implementation of CapabilityService
type MockCapabilityService struct {
	mock.Mock
}

func (m *MockCapabilityService) Probe(ctx context.Context) *workbench.CapabilityReport {
	args := m.Called(ctx)
	return args.Get(0).(*workbench.CapabilityReport)
}

func (m *MockCapabilityService) Report() *workbench.CapabilityReport {
	args := m.Called()
	return args.Get(0).(*workbench.CapabilityReport)
}

// MockSessionStore is a mock implementation of SessionStore
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) NewSession() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockSessionStore) Update(sessionID string, fn func(*workbench.ResultContext)) {
	m.Called(sessionID, fn)
}

func (m *MockSessionStore) Read(sessionID string, artifact workbench.Artifact) (string, string, error) {
	args := m.Called(sessionID, artifact)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockSessionStore) Snapshot(sessionID string) (workbench.ResultContext, bool) {
	args := m.Called(sessionID)
	return args.Get(0).(workbench.ResultContext), args.Bool(1)
}

func (m *MockSessionStore) Close() {
	m.Called()
}

// MockOperationMetadataService is a mock implementation of OperationMetadataService
type MockOperationMetadataService struct {
	mock.Mock
}

func (m *MockOperationMetadataService) List(ctx context.Context, query *audit.OperationQuery) ([]*audit.OperationRecord, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*audit.OperationRecord), args.Error(1)
}

func (m *MockOperationMetadataService) GetByID(ctx context.Context, recordID string) (*audit.OperationRecord, error) {
	args := m.Called(ctx, recordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*audit.OperationRecord), args.Error(1)
}
