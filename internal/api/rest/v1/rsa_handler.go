package v1

import (
	"fmt"
	"net/http"

	"github.com/MGTheTrain/crypto-workbench/internal/domain/workbench"

	"github.com/gin-gonic/gin"
)

// RSAHandler defines the interface for handling RSA operations
type RSAHandler interface {
	GenerateKeys(ctx *gin.Context)
	Sign(ctx *gin.Context)
	Verify(ctx *gin.Context)
}

// rsaHandler struct holds the services
type rsaHandler struct {
	rsaKeyService    workbench.RSAKeyService
	signatureService workbench.SignatureService
	sessions         workbench.SessionStore
}

// NewRSAHandler creates a new RSAHandler
func NewRSAHandler(rsaKeyService workbench.RSAKeyService, signatureService workbench.SignatureService, sessions workbench.SessionStore) RSAHandler {
	return &rsaHandler{
		rsaKeyService:    rsaKeyService,
		signatureService: signatureService,
		sessions:         sessions,
	}
}

// GenerateKeys handles the POST request to generate an RSA key pair
// @Summary Generate an RSA key pair
// @Description Generate an RSA key pair and return both keys in PEM format.
// @Tags RSA
// @Accept json
// @Produce json
// @Param requestBody body GenerateKeysRequest true "Key size"
// @Success 201 {object} KeyPairResponse
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /rsa/keys [post]
func (handler *rsaHandler) GenerateKeys(ctx *gin.Context) {
	var request GenerateKeysRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, fmt.Sprintf("invalid key generation request: %v", err.Error()))
		return
	}

	if err := request.Validate(); err != nil {
		respondBadRequest(ctx, err.Error())
		return
	}

	sessionID := resolveSession(ctx, handler.sessions)
	result, err := handler.rsaKeyService.Generate(ctx.Request.Context(), &workbench.RSAKeyRequest{
		SessionID: sessionID,
		KeySize:   request.KeySize,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, KeyPairResponse{
		PublicKey:  result.PublicKeyPEM,
		PrivateKey: result.PrivateKeyPEM,
		KeySize:    result.KeySize,
		Generator:  result.Generator,
	})
}

// Sign handles the POST request to sign content
// @Summary Sign content with an RSA private key
// @Description Hash the content with SHA-256, SHA-384 or SHA-512 and sign it with RSA PKCS#1 v1.5.
// @Tags RSA
// @Accept json
// @Produce json
// @Param requestBody body SignRequest true "Signing parameters"
// @Success 200 {object} SignResponse
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /rsa/sign [post]
func (handler *rsaHandler) Sign(ctx *gin.Context) {
	var request SignRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, fmt.Sprintf("invalid signing request: %v", err.Error()))
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

	result, err := handler.signatureService.Sign(ctx.Request.Context(), domainRequest)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, SignResponse{
		Signature: result.Signature,
		Digest:    string(result.Digest),
		Encoding:  string(result.Encoding),
	})
}

// Verify handles the POST request to verify a signature
// @Summary Verify an RSA signature
// @Description Verify a hex or base64 signature over the content. A mismatch is reported as valid=false.
// @Tags RSA
// @Accept json
// @Produce json
// @Param requestBody body VerifyRequest true "Verification parameters"
// @Success 200 {object} VerifyResponse
// @Failure 400 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /rsa/verify [post]
func (handler *rsaHandler) Verify(ctx *gin.Context) {
	var request VerifyRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, fmt.Sprintf("invalid verification request: %v", err.Error()))
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

	result, err := handler.signatureService.Verify(ctx.Request.Context(), domainRequest)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, VerifyResponse{
		Valid:  result.Valid,
		Digest: string(result.Digest),
	})
}
