//go:build integration
// +build integration

package app

import (
	"context"
	"crypto/rand"
	"testing"
	"time"

	"github.com/MGTheTrain/crypto-workbench/internal/domain/audit"
	"github.com/MGTheTrain/crypto-workbench/internal/domain/workbench"
	"github.com/MGTheTrain/crypto-workbench/internal/infrastructure/cryptography"
	"github.com/MGTheTrain/crypto-workbench/internal/infrastructure/persistence"
	"github.com/MGTheTrain/crypto-workbench/internal/pkg/config"
	"github.com/MGTheTrain/crypto-workbench/internal/pkg/testutil"

	"github.com/stretchr/testify/require"
)

// TestServices holds all application services and dependencies for testing
type TestServices struct {
	AESService        workbench.AESService
	RSAKeyService     workbench.RSAKeyService
	SignatureService  workbench.SignatureService
	CapabilityService workbench.CapabilityService
	Sessions          workbench.SessionStore
	OperationService  audit.OperationMetadataService

	// Infrastructure
	DBContext *persistence.TestContext
}

// SetupTestServices initializes all application services for integration tests
func SetupTestServices(t *testing.T, dbType string) *TestServices {
	t.Helper()

	logger := testutil.SetupTestLogger(t)

	// Setup database
	dbContext := persistence.SetupTestDB(t, dbType)

	// Setup cryptographic processors
	aesProcessor, err := cryptography.NewAESProcessor(logger)
	require.NoError(t, err, "Failed to create AES processor")

	rsaProcessor, err := cryptography.NewRSAProcessor(logger)
	require.NoError(t, err, "Failed to create RSA processor")

	capabilityService, err := NewCapabilityService(rand.Reader, aesProcessor, rsaProcessor, nil, logger)
	require.NoError(t, err, "Failed to create CapabilityService")
	require.NoError(t, capabilityService.Probe(context.Background()).Err(), "Capability probe failed")

	sessions, err := NewMemorySessionStore(config.SessionSettings{
		IdleTimeout:   time.Hour,
		SweepInterval: time.Minute,
		CookieName:    "cwb_session",
	}, logger)
	require.NoError(t, err, "Failed to create session store")
	t.Cleanup(sessions.Close)

	recorder, err := NewOperationRecorder(dbContext.OperationRepo, logger)
	require.NoError(t, err, "Failed to create OperationRecorder")

	aesService, err := NewAESService(aesProcessor, capabilityService, sessions, recorder, logger)
	require.NoError(t, err, "Failed to create AESService")

	cryptoSettings := config.DefaultCryptoSettings()
	cryptoSettings.NativeFallback = false
	rsaKeyService, err := NewRSAKeyService(rsaProcessor, nil, capabilityService, sessions, recorder, cryptoSettings, logger)
	require.NoError(t, err, "Failed to create RSAKeyService")

	signatureService, err := NewSignatureService(rsaProcessor, capabilityService, sessions, recorder, logger)
	require.NoError(t, err, "Failed to create SignatureService")

	operationService, err := NewOperationMetadataService(dbContext.OperationRepo, logger)
	require.NoError(t, err, "Failed to create OperationMetadataService")

	return &TestServices{
		AESService:        aesService,
		RSAKeyService:     rsaKeyService,
		SignatureService:  signatureService,
		CapabilityService: capabilityService,
		Sessions:          sessions,
		OperationService:  operationService,
		DBContext:         dbContext,
	}
}
