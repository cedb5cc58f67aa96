//go:build integration
// +build integration

package persistence

import (
	"strings"
	"testing"
	"time"

	"github.com/MGTheTrain/crypto-workbench/internal/domain/audit"
	"github.com/MGTheTrain/crypto-workbench/internal/pkg/config"
	"github.com/MGTheTrain/crypto-workbench/internal/pkg/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// TestContext holds test database and repositories
type TestContext struct {
	DB            *gorm.DB
	OperationRepo audit.OperationRepository
}

// SetupTestDB initializes test database with automatic cleanup
func SetupTestDB(t *testing.T, dbType string) *TestContext {
	t.Helper()

	var settings config.DatabaseSettings
	cleanupFunc := func() {}

	switch dbType {
	case config.SqliteDbType:
		settings = config.DatabaseSettings{
			Type: config.SqliteDbType,
			DSN:  ":memory:",
		}

	case config.PostgresDbType:
		uniqueDBName := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
		settings = config.DatabaseSettings{
			Type: config.PostgresDbType,
			DSN:  "user=postgres password=postgres host=localhost port=5432 sslmode=disable",
			Name: uniqueDBName,
		}
		cleanupFunc = func() {
			adminDSN := "user=postgres password=postgres host=localhost port=5432 dbname=postgres sslmode=disable"
			_ = DropDatabase(adminDSN, uniqueDBName)
		}

	default:
		t.Fatalf("Unsupported database type: %s", dbType)
	}

	db, err := NewDBConnection(settings)
	require.NoError(t, err, "Failed to create database connection")

	t.Cleanup(func() {
		_ = CloseDB(db)
		cleanupFunc()
	})

	require.NoError(t, EnableTracing(db), "Failed to enable tracing")
	require.NoError(t, Migrate(db), "Failed to migrate schema")

	logger := testutil.SetupTestLogger(t)

	operationRepo, err := NewGormOperationRepository(db, logger)
	require.NoError(t, err, "Failed to create operation repository")

	return &TestContext{
		DB:            db,
		OperationRepo: operationRepo,
	}
}

// CreateTestRecord creates a successful AES encryption record
func CreateTestRecord(t *testing.T, sessionID string) *audit.OperationRecord {
	t.Helper()

	return &audit.OperationRecord{
		ID:              uuid.NewString(),
		SessionID:       sessionID,
		Operation:       audit.OperationAESEncrypt,
		Algorithm:       "AES",
		KeySize:         256,
		Mode:            "CBC",
		Encoding:        "HEX",
		Outcome:         audit.OutcomeSuccess,
		DateTimeCreated: time.Now(),
	}
}

// CreateTestRecordWithOptions creates a record for the given operation and outcome
func CreateTestRecordWithOptions(t *testing.T, sessionID string, operation audit.Operation, outcome audit.Outcome) *audit.OperationRecord {
	t.Helper()

	record := CreateTestRecord(t, sessionID)
	record.Operation = operation
	record.Outcome = outcome
	if operation != audit.OperationAESEncrypt && operation != audit.OperationAESDecrypt {
		record.Algorithm = "RSA"
		record.KeySize = 2048
		record.Mode = ""
	}
	if outcome == audit.OutcomeFailure {
		record.ErrorCategory = "crypto"
	}
	return record
}
