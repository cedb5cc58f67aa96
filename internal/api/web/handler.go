// Package web serves the single-page HTML workbench.
package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/MGTheTrain/crypto-workbench/internal/domain/ui"
	"github.com/MGTheTrain/crypto-workbench/internal/domain/workbench"
	"github.com/MGTheTrain/crypto-workbench/internal/pkg/config"
	"github.com/MGTheTrain/crypto-workbench/internal/pkg/httputil"
	"github.com/MGTheTrain/crypto-workbench/internal/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const pageTemplate = "index.html"

// Handler defines the interface for the HTML workbench
type Handler interface {
	Index(ctx *gin.Context)
	Submit(ctx *gin.Context)
	Download(ctx *gin.Context)
}

// Services bundles what the page calls into
type Services struct {
	AES          workbench.AESService
	RSAKeys      workbench.RSAKeyService
	Signatures   workbench.SignatureService
	Capabilities workbench.CapabilityService
	Sessions     workbench.SessionStore
}

type handler struct {
	services    Services
	settings    config.SessionSettings
	rsaKeySizes []int
	logger      logger.Logger
}

// NewHandler creates a new Handler
func NewHandler(services Services, settings config.SessionSettings, rsaKeySizes []int, logger logger.Logger) Handler {
	return &handler{
		services:    services,
		settings:    settings,
		rsaKeySizes: rsaKeySizes,
		logger:      logger,
	}
}

// Index renders the page for the section in the query string
func (h *handler) Index(ctx *gin.Context) {
	section, _ := ui.ParseSection(ctx.Query("section"))
	state, _ := ui.NewState().Transition(ui.Event{Kind: ui.SelectSection, Section: section})

	h.session(ctx)
	ctx.HTML(http.StatusOK, pageTemplate, h.newPage(state, map[string]string{}))
}

// Submit runs the operation of the posted section and renders its result
func (h *handler) Submit(ctx *gin.Context) {
	section, ok := ui.ParseSection(ctx.Param("section"))
	if !ok {
		ctx.Redirect(http.StatusSeeOther, "/")
		return
	}

	sub, err := parseSubmission(ctx)
	if err != nil {
		page := h.newPage(ui.NewState(), map[string]string{})
		page.Error = "the form could not be read."
		ctx.HTML(http.StatusBadRequest, pageTemplate, page)
		return
	}

	state, err := sub.state(section)
	page := h.newPage(state, sub.echo())
	if err != nil {
		h.renderError(ctx, page, err)
		return
	}

	sessionID := h.session(ctx)
	result, err := h.run(ctx.Request.Context(), sessionID, state, sub)
	if err != nil {
		h.renderError(ctx, page, err)
		return
	}

	page.Result = result
	ctx.HTML(http.StatusOK, pageTemplate, page)
}

// Download serves one artifact of the caller's session as a text attachment
func (h *handler) Download(ctx *gin.Context) {
	artifact, err := workbench.ParseArtifact(ctx.Param("artifact"))
	if err != nil {
		ctx.String(http.StatusBadRequest, err.Error())
		return
	}

	sessionID, err := ctx.Cookie(h.settings.CookieName)
	if err != nil {
		ctx.String(http.StatusNotFound, workbench.ErrNoArtifact.Error())
		return
	}

	content, fileName, err := h.services.Sessions.Read(sessionID, artifact)
	if err != nil {
		ctx.String(statusFor(err), err.Error())
		return
	}

	ctx.Header("Content-Disposition", httputil.AttachmentDisposition(fileName))
	ctx.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(content))
}

func (h *handler) run(ctx context.Context, sessionID string, state ui.State, sub *submission) (*resultView, error) {
	switch state.Section {
	case ui.SectionAESEncrypt:
		req, err := sub.aesEncryptRequest(sessionID, state)
		if err != nil {
			return nil, err
		}
		result, err := h.services.AES.Encrypt(ctx, req)
		if err != nil {
			return nil, err
		}
		return encryptView(result), nil

	case ui.SectionAESDecrypt:
		req, err := sub.aesDecryptRequest(sessionID, state)
		if err != nil {
			return nil, err
		}
		result, err := h.services.AES.Decrypt(ctx, req)
		if err != nil {
			return nil, err
		}
		return decryptView(result), nil

	case ui.SectionRSASign:
		req, err := sub.signRequest(sessionID, state)
		if err != nil {
			return nil, err
		}
		result, err := h.services.Signatures.Sign(ctx, req)
		if err != nil {
			return nil, err
		}
		return signView(result), nil

	case ui.SectionRSAVerify:
		req, err := sub.verifyRequest(sessionID, state)
		if err != nil {
			return nil, err
		}
		result, err := h.services.Signatures.Verify(ctx, req)
		if err != nil {
			return nil, err
		}
		return verifyView(result), nil

	default:
		req, err := sub.rsaKeyRequest(sessionID)
		if err != nil {
			return nil, err
		}
		result, err := h.services.RSAKeys.Generate(ctx, req)
		if err != nil {
			return nil, err
		}
		return keyPairView(result), nil
	}
}

func (h *handler) renderError(ctx *gin.Context, page *pageView, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError || workbench.Classify(err) == workbench.CategoryCrypto {
		h.logger.ErrorContext(ctx.Request.Context(), "workbench operation failed", "section", string(page.State.Section), "error", err.Error())
	}
	page.Error = err.Error()
	ctx.HTML(status, pageTemplate, page)
}

// session returns the session ID from the cookie, issuing a new session when it is missing
func (h *handler) session(ctx *gin.Context) string {
	sessionID, err := ctx.Cookie(h.settings.CookieName)
	if err == nil {
		if _, parseErr := uuid.Parse(sessionID); parseErr == nil {
			return sessionID
		}
	}

	sessionID = h.services.Sessions.NewSession()
	ctx.SetSameSite(http.SameSiteStrictMode)
	ctx.SetCookie(h.settings.CookieName, sessionID, int(h.settings.IdleTimeout/time.Second), "/", "", false, true)
	return sessionID
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, workbench.ErrNoArtifact):
		return http.StatusNotFound
	case errors.Is(err, httputil.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	}
	switch workbench.Classify(err) {
	case workbench.CategoryValidation:
		return http.StatusBadRequest
	case workbench.CategoryEnvironment:
		return http.StatusServiceUnavailable
	default:
		return http.StatusUnprocessableEntity
	}
}
