package v1

import (
	"github.com/MGTheTrain/crypto-workbench/internal/domain/audit"
	"github.com/MGTheTrain/crypto-workbench/internal/domain/workbench"

	"github.com/gin-gonic/gin"
)

// SetupRoutes sets up all the API routes for version 1.
func SetupRoutes(r *gin.Engine,
	aesService workbench.AESService,
	rsaKeyService workbench.RSAKeyService,
	signatureService workbench.SignatureService,
	capabilityService workbench.CapabilityService,
	sessions workbench.SessionStore,
	operationService audit.OperationMetadataService) {

	v1 := r.Group(BasePath) // lookup in version file

	// AES Routes
	aesHandler := NewAESHandler(aesService, sessions)
	v1.POST("/aes/encrypt", aesHandler.Encrypt)
	v1.POST("/aes/decrypt", aesHandler.Decrypt)

	// RSA Routes
	rsaHandler := NewRSAHandler(rsaKeyService, signatureService, sessions)
	v1.POST("/rsa/keys", rsaHandler.GenerateKeys)
	v1.POST("/rsa/sign", rsaHandler.Sign)
	v1.POST("/rsa/verify", rsaHandler.Verify)

	// Session, capability and audit Routes
	systemHandler := NewSystemHandler(sessions, capabilityService, operationService)
	v1.GET("/sessions/:id/artifacts/:artifact", systemHandler.DownloadArtifact)
	v1.GET("/capabilities", systemHandler.Capabilities)

	// Audit routes exist only when the audit trail is enabled
	if operationService != nil {
		v1.GET("/operations", systemHandler.ListOperations)
		v1.GET("/operations/:id", systemHandler.GetOperationByID)
	}
}
