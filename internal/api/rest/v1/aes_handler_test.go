//go:build unit
// +build unit

package v1

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MGTheTrain/crypto-workbench/internal/domain/codec"
	"github.com/MGTheTrain/crypto-workbench/internal/domain/cryptoalg"
	"github.com/MGTheTrain/crypto-workbench/internal/domain/workbench"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const testSessionID = "0b8c7a4e-3b1e-4c36-9f0e-6a2f5d7c9e11"

func newJSONContext(t *testing.T, method, url, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, url, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	return c, w
}

func TestAESHandler_Encrypt_Success(t *testing.T) {
	mockAESService := new(MockAESService)
	mockSessions := new(MockSessionStore)
	handler := NewAESHandler(mockAESService, mockSessions)

	mockSessions.On("NewSession").Return(testSessionID)
	mockAESService.
		On("Encrypt", mock.Anything, mock.MatchedBy(func(req *workbench.AESEncryptRequest) bool {
			return req.SessionID == testSessionID &&
				req.KeySize == cryptoalg.KeySize128 &&
				req.Mode == cryptoalg.ModeCBC &&
				req.KeyEncoding == codec.EncodingHex &&
				req.OutputEncoding == codec.EncodingBase64 &&
				string(req.Plaintext.Data) == "hello world"
		})).
		Return(&workbench.AESEncryptResult{
			Key:            "00112233445566778899AABBCCDDEEFF",
			IV:             "AAAAAAAAAAAAAAAAAAAAAA==",
			Ciphertext:     "q83vEjRWeJA=",
			KeyGenerated:   true,
			IVGenerated:    true,
			KeySize:        cryptoalg.KeySize128,
			Mode:           cryptoalg.ModeCBC,
			OutputEncoding: codec.EncodingBase64,
		}, nil)

	body := `{"plaintext":{"text":"hello world"},"key_size":128,"mode":"cbc","key_encoding":"hex","output_encoding":"base64"}`
	c, w := newJSONContext(t, "POST", "/aes/encrypt", body)

	handler.Encrypt(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, testSessionID, w.Header().Get(SessionHeader))
	assert.Contains(t, w.Body.String(), `"ciphertext":"q83vEjRWeJA="`)
	assert.Contains(t, w.Body.String(), `"key_generated":true`)
	mockAESService.AssertExpectations(t)
}

func TestAESHandler_Encrypt_ValidationFailure(t *testing.T) {
	mockAESService := new(MockAESService)
	mockSessions := new(MockSessionStore)
	handler := NewAESHandler(mockAESService, mockSessions)

	tests := []struct {
		name string
		body string
	}{
		{"malformed JSON", `{"key_size":`},
		{"unsupported key size", `{"plaintext":{"text":"x"},"key_size":100,"mode":"CBC","key_encoding":"HEX","output_encoding":"HEX"}`},
		{"unsupported mode", `{"plaintext":{"text":"x"},"key_size":128,"mode":"GCM","key_encoding":"HEX","output_encoding":"HEX"}`},
		{"unknown encoding", `{"plaintext":{"text":"x"},"key_size":128,"mode":"ECB","key_encoding":"ROT13","output_encoding":"HEX"}`},
		{"text and base64 content", `{"plaintext":{"text":"x","base64":"eA=="},"key_size":128,"mode":"ECB","key_encoding":"HEX","output_encoding":"HEX"}`},
	}

	mockSessions.On("NewSession").Return(testSessionID)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newJSONContext(t, "POST", "/aes/encrypt", tt.body)
			handler.Encrypt(c)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), `"category":"validation"`)
		})
	}
	mockAESService.AssertNotCalled(t, "Encrypt", mock.Anything, mock.Anything)
}

func TestAESHandler_Decrypt_ErrorMapping(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{"malformed base64", &codec.ValidationError{Field: "ciphertext", Reason: codec.ErrMalformedBase64, Detail: "ciphertext is not valid base64. Check that it was copied correctly."}, http.StatusBadRequest},
		{"padding failure", workbench.ErrDecryptionFailed, http.StatusUnprocessableEntity},
		{"capability unavailable", workbench.ErrCapabilityUnavailable, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockAESService := new(MockAESService)
			mockSessions := new(MockSessionStore)
			handler := NewAESHandler(mockAESService, mockSessions)

			mockAESService.On("Decrypt", mock.Anything, mock.Anything).Return(nil, tt.err)

			body := `{"ciphertext":"AAAA","key_size":128,"mode":"ECB","key":"0123456789abcdef","key_encoding":"UTF8","ciphertext_encoding":"BASE64"}`
			c, w := newJSONContext(t, "POST", "/aes/decrypt", body)
			c.Request.Header.Set(SessionHeader, testSessionID)

			handler.Decrypt(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.err.Error())
			assert.Equal(t, testSessionID, w.Header().Get(SessionHeader))
			mockSessions.AssertNotCalled(t, "NewSession")
		})
	}
}

func TestAESHandler_Decrypt_BinaryPlaintext(t *testing.T) {
	mockAESService := new(MockAESService)
	mockSessions := new(MockSessionStore)
	handler := NewAESHandler(mockAESService, mockSessions)

	mockAESService.On("Decrypt", mock.Anything, mock.Anything).Return(&workbench.AESDecryptResult{
		Plaintext: "�",
		Raw:       []byte{0xff},
		ValidUTF8: false,
	}, nil)

	body := `{"ciphertext":"AAAA","key_size":128,"mode":"ECB","key":"0123456789abcdef","key_encoding":"UTF8","ciphertext_encoding":"BASE64"}`
	c, w := newJSONContext(t, "POST", "/aes/decrypt", body)
	c.Request.Header.Set(SessionHeader, testSessionID)

	handler.Decrypt(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"plaintext_base64":"/w=="`)
	assert.Contains(t, w.Body.String(), `"valid_utf8":false`)
}
