package v1

import (
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/MGTheTrain/crypto-workbench/internal/domain/workbench"

	"github.com/gin-gonic/gin"
)

// AESHandler defines the interface for handling AES operations
type AESHandler interface {
	Encrypt(ctx *gin.Context)
	Decrypt(ctx *gin.Context)
}

// aesHandler struct holds the services
type aesHandler struct {
	aesService workbench.AESService
	sessions   workbench.SessionStore
}

// NewAESHandler creates a new AESHandler
func NewAESHandler(aesService workbench.AESService, sessions workbench.SessionStore) AESHandler {
	return &aesHandler{
		aesService: aesService,
		sessions:   sessions,
	}
}

// Encrypt handles the POST request to encrypt content with AES
// @Summary Encrypt content with AES
// @Description Encrypt text or base64 file content with AES in CBC or ECB mode. Key and IV are generated when omitted.
// @Tags AES
// @Accept json
// @Produce json
// @Param requestBody body EncryptRequest true "Encryption parameters"
// @Success 200 {object} EncryptResponse
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /aes/encrypt [post]
func (handler *aesHandler) Encrypt(ctx *gin.Context) {
	var request EncryptRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, fmt.Sprintf("invalid encryption request: %v", err.Error()))
		return
	}

	if err := request.Validate(); err != nil {
		respondBadRequest(ctx, err.Error())
		return
	}

	sessionID := resolveSession(ctx, handler.sessions)
	domainRequest, err := request.toDomain(sessionID)
	if err != nil {
		respondBadRequest(ctx, err.Error())
		return
	}

	result, err := handler.aesService.Encrypt(ctx.Request.Context(), domainRequest)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, EncryptResponse{
		Key:          result.Key,
		IV:           result.IV,
		Ciphertext:   result.Ciphertext,
		KeyGenerated: result.KeyGenerated,
		IVGenerated:  result.IVGenerated,
		KeySize:      int(result.KeySize),
		Mode:         string(result.Mode),
		Encoding:     string(result.OutputEncoding),
	})
}

// Decrypt handles the POST request to decrypt AES ciphertext
// @Summary Decrypt AES ciphertext
// @Description Decrypt hex or base64 ciphertext with AES in CBC or ECB mode and strip the PKCS#7 padding.
// @Tags AES
// @Accept json
// @Produce json
// @Param requestBody body DecryptRequest true "Decryption parameters"
// @Success 200 {object} DecryptResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /aes/decrypt [post]
func (handler *aesHandler) Decrypt(ctx *gin.Context) {
	var request DecryptRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, fmt.Sprintf("invalid decryption request: %v", err.Error()))
		return
	}

	if err := request.Validate(); err != nil {
		respondBadRequest(ctx, err.Error())
		return
	}

	sessionID := resolveSession(ctx, handler.sessions)
	domainRequest, err := request.toDomain(sessionID)
	if err != nil {
		respondBadRequest(ctx, err.Error())
		return
	}

	result, err := handler.aesService.Decrypt(ctx.Request.Context(), domainRequest)
	if err != nil {
		respondError(ctx, err)
		return
	}

	response := DecryptResponse{
		Plaintext: result.Plaintext,
		ValidUTF8: result.ValidUTF8,
		Warning:   result.Warning,
	}
	if !result.ValidUTF8 {
		response.PlaintextBase64 = base64.StdEncoding.EncodeToString(result.Raw)
	}
	ctx.JSON(http.StatusOK, response)
}
