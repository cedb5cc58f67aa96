package v1

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/MGTheTrain/crypto-workbench/internal/domain/audit"
	"github.com/MGTheTrain/crypto-workbench/internal/domain/workbench"
	"github.com/MGTheTrain/crypto-workbench/internal/pkg/httputil"

	"github.com/gin-gonic/gin"
)

// SystemHandler defines the interface for artifacts, capabilities and the audit trail
type SystemHandler interface {
	DownloadArtifact(ctx *gin.Context)
	Capabilities(ctx *gin.Context)
	ListOperations(ctx *gin.Context)
	GetOperationByID(ctx *gin.Context)
}

// systemHandler struct holds the services
type systemHandler struct {
	sessions          workbench.SessionStore
	capabilityService workbench.CapabilityService
	operationService  audit.OperationMetadataService
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(sessions workbench.SessionStore, capabilityService workbench.CapabilityService, operationService audit.OperationMetadataService) SystemHandler {
	return &systemHandler{
		sessions:          sessions,
		capabilityService: capabilityService,
		operationService:  operationService,
	}
}

// DownloadArtifact handles the GET request to download the last result of a session
// @Summary Download a session artifact
// @Description Download the last key, IV, ciphertext, decrypted text, key pair half or signature of a session as a text file.
// @Tags Session
// @Produce plain
// @Param id path string true "Session ID"
// @Param artifact path string true "Artifact name"
// @Success 200 {file} file "Artifact content"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{id}/artifacts/{artifact} [get]
func (handler *systemHandler) DownloadArtifact(ctx *gin.Context) {
	sessionID := ctx.Param("id")

	artifact, err := workbench.ParseArtifact(ctx.Param("artifact"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	content, fileName, err := handler.sessions.Read(sessionID, artifact)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", httputil.AttachmentDisposition(fileName))
	ctx.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(content))
}

// Capabilities handles the GET request for the startup self-test report
// @Summary Report cryptographic capabilities
// @Description Return the result of the startup self-test. The status is 503 when an operation is unusable.
// @Tags System
// @Produce json
// @Success 200 {object} CapabilitiesResponse
// @Failure 503 {object} CapabilitiesResponse
// @Router /capabilities [get]
func (handler *systemHandler) Capabilities(ctx *gin.Context) {
	report := handler.capabilityService.Report()

	response := CapabilitiesResponse{OK: report.OK(), Report: report}
	status := http.StatusOK
	if err := report.Err(); err != nil {
		response.Error = err.Error()
		status = http.StatusServiceUnavailable
	}
	ctx.JSON(status, response)
}

// ListOperations handles the GET request to list audit records with optional query parameters
// @Summary List audit records
// @Description Fetch audit records filtered by operation, outcome and session, with pagination and sorting options.
// @Tags System
// @Produce json
// @Param operation query string false "Operation"
// @Param outcome query string false "Outcome"
// @Param sessionId query string false "Session ID"
// @Param limit query int false "Limit the number of results"
// @Param offset query int false "Offset the results"
// @Param sortBy query string false "Sort by a specific field"
// @Param sortOrder query string false "Sort order (asc/desc)"
// @Success 200 {array} OperationResponse
// @Failure 400 {object} ErrorResponse
// @Router /operations [get]
func (handler *systemHandler) ListOperations(ctx *gin.Context) {
	query := audit.NewOperationQuery()

	if operation := ctx.Query("operation"); len(operation) > 0 {
		query.Operation = audit.Operation(operation)
	}

	if outcome := ctx.Query("outcome"); len(outcome) > 0 {
		query.Outcome = audit.Outcome(outcome)
	}

	if sessionID := ctx.Query("sessionId"); len(sessionID) > 0 {
		query.SessionID = sessionID
	}

	if limit := ctx.Query("limit"); len(limit) > 0 {
		value, err := strconv.Atoi(limit)
		if err != nil {
			respondBadRequest(ctx, fmt.Sprintf("invalid limit %q", limit))
			return
		}
		query.Limit = value
	}

	if offset := ctx.Query("offset"); len(offset) > 0 {
		value, err := strconv.Atoi(offset)
		if err != nil {
			respondBadRequest(ctx, fmt.Sprintf("invalid offset %q", offset))
			return
		}
		query.Offset = value
	}

	if sortBy := ctx.Query("sortBy"); len(sortBy) > 0 {
		query.SortBy = sortBy
	}

	if sortOrder := ctx.Query("sortOrder"); len(sortOrder) > 0 {
		query.SortOrder = sortOrder
	}

	if err := query.Validate(); err != nil {
		respondBadRequest(ctx, err.Error())
		return
	}

	records, err := handler.operationService.List(ctx.Request.Context(), query)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{Message: fmt.Sprintf("list query failed: %v", err.Error())})
		return
	}

	listResponse := []OperationResponse{}
	for _, record := range records {
		listResponse = append(listResponse, newOperationResponse(record))
	}
	ctx.JSON(http.StatusOK, listResponse)
}

// GetOperationByID handles the GET request to retrieve one audit record
// @Summary Retrieve an audit record by ID
// @Tags System
// @Produce json
// @Param id path string true "Record ID"
// @Success 200 {object} OperationResponse
// @Failure 404 {object} ErrorResponse
// @Router /operations/{id} [get]
func (handler *systemHandler) GetOperationByID(ctx *gin.Context) {
	recordID := ctx.Param("id")

	record, err := handler.operationService.GetByID(ctx.Request.Context(), recordID)
	if err != nil {
		ctx.JSON(http.StatusNotFound, ErrorResponse{Message: fmt.Sprintf("operation record with id %s not found", recordID)})
		return
	}

	ctx.JSON(http.StatusOK, newOperationResponse(record))
}
