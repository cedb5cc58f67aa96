//go:build unit
// +build unit

package v1

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/MGTheTrain/crypto-workbench/internal/domain/audit"
	"github.com/MGTheTrain/crypto-workbench/internal/domain/workbench"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newSystemHandler() (SystemHandler, *MockSessionStore, *MockCapabilityService, *MockOperationMetadataService) {
	sessions := new(MockSessionStore)
	capabilities := new(MockCapabilityService)
	operations := new(MockOperationMetadataService)
	return NewSystemHandler(sessions, capabilities, operations), sessions, capabilities, operations
}

func TestSystemHandler_DownloadArtifact(t *testing.T) {
	handler, sessions, _, _ := newSystemHandler()
	sessions.On("Read", testSessionID, workbench.ArtifactSignature).Return("abcdef", "signature.txt", nil)
	sessions.On("Read", testSessionID, workbench.ArtifactAESIV).Return("", "", workbench.ErrNoArtifact)

	c, w := newJSONContext(t, "GET", "/sessions/x/artifacts/signature", "")
	c.Params = gin.Params{{Key: "id", Value: testSessionID}, {Key: "artifact", Value: "signature"}}
	handler.DownloadArtifact(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "abcdef", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Disposition"), `filename="signature.txt"`)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")

	c, w = newJSONContext(t, "GET", "/sessions/x/artifacts/aes-iv", "")
	c.Params = gin.Params{{Key: "id", Value: testSessionID}, {Key: "artifact", Value: "aes-iv"}}
	handler.DownloadArtifact(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "no content available for download")

	c, w = newJSONContext(t, "GET", "/sessions/x/artifacts/passwords", "")
	c.Params = gin.Params{{Key: "id", Value: testSessionID}, {Key: "artifact", Value: "passwords"}}
	handler.DownloadArtifact(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSystemHandler_Capabilities(t *testing.T) {
	handler, _, capabilities, _ := newSystemHandler()

	report := &workbench.CapabilityReport{
		RandomSource: workbench.Capability{Name: workbench.CapabilityRandomSource, Available: true},
		AES:          workbench.Capability{Name: workbench.CapabilityAES, Available: true},
		RSAPrimary:   workbench.Capability{Name: workbench.CapabilityRSAPrimary, Available: false, Detail: "broken"},
		RSAFallback:  workbench.Capability{Name: workbench.CapabilityRSAFallback, Detail: "disabled"},
		SHA2:         workbench.Capability{Name: workbench.CapabilitySHA2, Available: true},
	}
	capabilities.On("Report").Return(report)

	c, w := newJSONContext(t, "GET", "/capabilities", "")
	handler.Capabilities(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"ok":false`)
	assert.Contains(t, w.Body.String(), "rsa-keygen (broken)")
}

func TestSystemHandler_ListOperations(t *testing.T) {
	handler, _, _, operations := newSystemHandler()

	record := &audit.OperationRecord{
		ID:              "5e0f4f1c-8f3a-4b0e-9a57-0c8d2f1e6b3a",
		Operation:       audit.OperationRSASign,
		Algorithm:       "RSA",
		KeySize:         2048,
		Digest:          "SHA-256",
		Outcome:         audit.OutcomeSuccess,
		DateTimeCreated: time.Now(),
	}
	operations.
		On("List", mock.Anything, mock.MatchedBy(func(query *audit.OperationQuery) bool {
			return query.Operation == audit.OperationRSASign && query.Limit == 10 && query.SortOrder == "asc"
		})).
		Return([]*audit.OperationRecord{record}, nil)

	c, w := newJSONContext(t, "GET", "/operations?operation=rsa-sign&limit=10&sortOrder=asc", "")
	handler.ListOperations(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), record.ID)
	operations.AssertExpectations(t)

	c, w = newJSONContext(t, "GET", "/operations?limit=abc", "")
	handler.ListOperations(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	c, w = newJSONContext(t, "GET", "/operations?sortBy=key", "")
	handler.ListOperations(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSystemHandler_GetOperationByID(t *testing.T) {
	handler, _, _, operations := newSystemHandler()
	operations.On("GetByID", mock.Anything, "missing").Return(nil, errors.New("record not found"))

	c, w := newJSONContext(t, "GET", "/operations/missing", "")
	c.Params = gin.Params{{Key: "id", Value: "missing"}}
	handler.GetOperationByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
