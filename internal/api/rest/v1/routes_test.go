//go:build unit
// +build unit

package v1

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MGTheTrain/crypto-workbench/internal/domain/workbench"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// TestSetupRoutes_RoutesRegistered verifies that routes are properly registered
func TestSetupRoutes_RoutesRegistered(t *testing.T) {
	mockAESService := new(MockAESService)
	mockRSAKeyService := new(MockRSAKeyService)
	mockSignatureService := new(MockSignatureService)
	mockCapabilityService := new(MockCapabilityService)
	mockSessions := new(MockSessionStore)
	mockOperationService := new(MockOperationMetadataService)

	gin.SetMode(gin.TestMode)
	r := gin.New()

	mockSessions.On("NewSession").Return(testSessionID)
	mockSessions.On("Read", mock.Anything, mock.Anything).Return("", "", workbench.ErrNoArtifact)
	mockCapabilityService.On("Report").Return(&workbench.CapabilityReport{})
	mockOperationService.On("List", mock.Anything, mock.Anything).Return(nil, nil)
	mockOperationService.On("GetByID", mock.Anything, mock.Anything).Return(nil, nil)

	SetupRoutes(r, mockAESService, mockRSAKeyService, mockSignatureService, mockCapabilityService, mockSessions, mockOperationService)

	// Invalid bodies still prove the route exists.
	tests := []struct {
		method string
		url    string
	}{
		{"POST", "/api/v1/cwb/aes/encrypt"},
		{"POST", "/api/v1/cwb/aes/decrypt"},
		{"POST", "/api/v1/cwb/rsa/keys"},
		{"POST", "/api/v1/cwb/rsa/sign"},
		{"POST", "/api/v1/cwb/rsa/verify"},
		{"GET", "/api/v1/cwb/capabilities"},
		{"GET", "/api/v1/cwb/operations"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.url, func(t *testing.T) {
			req, _ := http.NewRequest(tt.method, tt.url, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.NotEqual(t, http.StatusNotFound, w.Code, "Route should be registered")
		})
	}

	req, _ := http.NewRequest("GET", "/api/v1/cwb/sessions/"+testSessionID+"/artifacts/aes-key", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "no content available")
}

func TestSetupRoutes_AuditDisabled(t *testing.T) {
	mockCapabilityService := new(MockCapabilityService)
	mockCapabilityService.On("Report").Return(&workbench.CapabilityReport{})

	gin.SetMode(gin.TestMode)
	r := gin.New()
	SetupRoutes(r, new(MockAESService), new(MockRSAKeyService), new(MockSignatureService), mockCapabilityService, new(MockSessionStore), nil)

	req, _ := http.NewRequest("GET", "/api/v1/cwb/operations", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	req, _ = http.NewRequest("GET", "/api/v1/cwb/capabilities", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.NotEqual(t, http.StatusNotFound, w.Code)
}
