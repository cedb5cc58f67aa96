package web

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/MGTheTrain/crypto-workbench/internal/domain/codec"
	"github.com/MGTheTrain/crypto-workbench/internal/domain/cryptoalg"
	"github.com/MGTheTrain/crypto-workbench/internal/domain/ui"
	"github.com/MGTheTrain/crypto-workbench/internal/domain/workbench"
	"github.com/MGTheTrain/crypto-workbench/internal/pkg/httputil"

	"github.com/gin-gonic/gin"
)

// Form field names shared with the template.
const (
	fieldContentTab         = "contentTab"
	fieldContent            = "content"
	fieldContentFile        = "contentFile"
	fieldKeyTab             = "keyTab"
	fieldPEM                = "pem"
	fieldPEMFile            = "pemFile"
	fieldKeySize            = "keySize"
	fieldMode               = "mode"
	fieldKey                = "key"
	fieldIV                 = "iv"
	fieldKeyEncoding        = "keyEncoding"
	fieldDataEncoding       = "dataEncoding"
	fieldDigest             = "digest"
	fieldSignature          = "signature"
	fieldSignatureEncoding  = "signatureEncoding"
	maxMultipartMemoryBytes = 32 << 20
)

// echoedFields are written back into the form after a post. File inputs and PEM keys are not echoed.
var echoedFields = []string{
	fieldContent, fieldKeySize, fieldMode, fieldKey, fieldIV, fieldKeyEncoding,
	fieldDataEncoding, fieldDigest, fieldSignature, fieldSignatureEncoding,
}

// submission is a parsed form post
type submission struct {
	values map[string]string
	files  map[string]*multipart.FileHeader
}

// parseSubmission reads a multipart post, or a url-encoded one when no file inputs were sent
func parseSubmission(ctx *gin.Context) (*submission, error) {
	if err := ctx.Request.ParseMultipartForm(maxMultipartMemoryBytes); err != nil {
		if !errors.Is(err, http.ErrNotMultipart) {
			return nil, err
		}
		if err := ctx.Request.ParseForm(); err != nil {
			return nil, err
		}
		return newSubmission(ctx.Request.PostForm, nil), nil
	}
	return newSubmission(ctx.Request.MultipartForm.Value, ctx.Request.MultipartForm.File), nil
}

func newSubmission(values map[string][]string, files map[string][]*multipart.FileHeader) *submission {
	s := &submission{
		values: map[string]string{},
		files:  map[string]*multipart.FileHeader{},
	}
	for name, v := range values {
		if len(v) > 0 {
			s.values[name] = v[0]
		}
	}
	for name, headers := range files {
		if len(headers) > 0 {
			s.files[name] = headers[0]
		}
	}
	return s
}

func (s *submission) value(name string) string {
	return s.values[name]
}

// echo returns the fields redisplayed in the form
func (s *submission) echo() map[string]string {
	echoed := make(map[string]string, len(echoedFields))
	for _, name := range echoedFields {
		if v, ok := s.values[name]; ok {
			echoed[name] = v
		}
	}
	return echoed
}

// state replays the posted tab and mode selections onto the section's initial state
func (s *submission) state(section ui.Section) (ui.State, error) {
	state, err := ui.NewState().Transition(ui.Event{Kind: ui.SelectSection, Section: section})
	if err != nil {
		return state, err
	}

	if section.HasContentTabs() {
		if state, err = state.Transition(ui.Event{Kind: ui.SelectContentTab, Tab: ui.ParseInputTab(s.value(fieldContentTab))}); err != nil {
			return state, err
		}
	}
	if section.HasKeyTabs() {
		if state, err = state.Transition(ui.Event{Kind: ui.SelectKeyTab, Tab: ui.ParseInputTab(s.value(fieldKeyTab))}); err != nil {
			return state, err
		}
	}
	if section.IsAES() {
		mode, err := cryptoalg.ParseMode(s.value(fieldMode))
		if err != nil {
			return state, err
		}
		if state, err = state.Transition(ui.Event{Kind: ui.SelectMode, Mode: mode}); err != nil {
			return state, err
		}
	}
	return state, nil
}

// content reads the active content tab: the text field or the uploaded file
func (s *submission) content(tab ui.InputTab) (workbench.Content, error) {
	if tab == ui.TabFile {
		data, err := s.file(fieldContentFile, "content")
		if err != nil {
			return workbench.Content{}, err
		}
		return workbench.FileContent(data), nil
	}
	return workbench.TextContent(s.value(fieldContent)), nil
}

// pem reads the active key tab: the pasted PEM or the uploaded key file
func (s *submission) pem(tab ui.InputTab) (string, error) {
	if tab == ui.TabFile {
		data, err := s.file(fieldPEMFile, "key")
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	return s.value(fieldPEM), nil
}

func (s *submission) file(field, label string) ([]byte, error) {
	header, ok := s.files[field]
	if !ok {
		return nil, &codec.ValidationError{Field: label, Reason: codec.ErrEmptyInput, Detail: fmt.Sprintf("please select a %s file.", label)}
	}
	return httputil.ReadFileHeader(header)
}

func (s *submission) intValue(field string) (int, error) {
	raw := strings.TrimSpace(s.value(field))
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &codec.ValidationError{Field: field, Reason: codec.ErrInvalidLength, Detail: fmt.Sprintf("invalid key size %q.", raw)}
	}
	return value, nil
}

func (s *submission) encoding(field string) (codec.Encoding, error) {
	return codec.ParseEncoding(s.value(field))
}

func (s *submission) aesEncryptRequest(sessionID string, state ui.State) (*workbench.AESEncryptRequest, error) {
	keySize, err := s.intValue(fieldKeySize)
	if err != nil {
		return nil, err
	}
	keyEncoding, err := s.encoding(fieldKeyEncoding)
	if err != nil {
		return nil, err
	}
	outputEncoding, err := s.encoding(fieldDataEncoding)
	if err != nil {
		return nil, err
	}
	plaintext, err := s.content(state.ContentTab)
	if err != nil {
		return nil, err
	}

	req := &workbench.AESEncryptRequest{
		SessionID:      sessionID,
		Plaintext:      plaintext,
		KeySize:        cryptoalg.KeySize(keySize),
		Mode:           state.Mode,
		Key:            s.value(fieldKey),
		KeyEncoding:    keyEncoding,
		OutputEncoding: outputEncoding,
	}
	if state.ShowIV() {
		req.IV = s.value(fieldIV)
	}
	return req, nil
}

func (s *submission) aesDecryptRequest(sessionID string, state ui.State) (*workbench.AESDecryptRequest, error) {
	keySize, err := s.intValue(fieldKeySize)
	if err != nil {
		return nil, err
	}
	keyEncoding, err := s.encoding(fieldKeyEncoding)
	if err != nil {
		return nil, err
	}
	ciphertextEncoding, err := s.encoding(fieldDataEncoding)
	if err != nil {
		return nil, err
	}
	ciphertext, err := s.content(state.ContentTab)
	if err != nil {
		return nil, err
	}

	req := &workbench.AESDecryptRequest{
		SessionID:          sessionID,
		Ciphertext:         string(ciphertext.Data),
		KeySize:            cryptoalg.KeySize(keySize),
		Mode:               state.Mode,
		Key:                s.value(fieldKey),
		KeyEncoding:        keyEncoding,
		CiphertextEncoding: ciphertextEncoding,
	}
	if state.ShowIV() {
		req.IV = s.value(fieldIV)
	}
	return req, nil
}

func (s *submission) rsaKeyRequest(sessionID string) (*workbench.RSAKeyRequest, error) {
	keySize, err := s.intValue(fieldKeySize)
	if err != nil {
		return nil, err
	}
	return &workbench.RSAKeyRequest{SessionID: sessionID, KeySize: keySize}, nil
}

func (s *submission) signRequest(sessionID string, state ui.State) (*workbench.SignRequest, error) {
	privateKey, err := s.pem(state.KeyTab)
	if err != nil {
		return nil, err
	}
	content, err := s.content(state.ContentTab)
	if err != nil {
		return nil, err
	}
	digest, err := cryptoalg.ParseDigestAlgorithm(s.value(fieldDigest))
	if err != nil {
		return nil, err
	}
	encoding, err := s.encoding(fieldSignatureEncoding)
	if err != nil {
		return nil, err
	}
	return &workbench.SignRequest{
		SessionID:      sessionID,
		PrivateKeyPEM:  privateKey,
		Content:        content,
		Digest:         digest,
		OutputEncoding: encoding,
	}, nil
}

func (s *submission) verifyRequest(sessionID string, state ui.State) (*workbench.VerifyRequest, error) {
	publicKey, err := s.pem(state.KeyTab)
	if err != nil {
		return nil, err
	}
	content, err := s.content(state.ContentTab)
	if err != nil {
		return nil, err
	}
	digest, err := cryptoalg.ParseDigestAlgorithm(s.value(fieldDigest))
	if err != nil {
		return nil, err
	}
	encoding, err := s.encoding(fieldSignatureEncoding)
	if err != nil {
		return nil, err
	}
	return &workbench.VerifyRequest{
		SessionID:         sessionID,
		PublicKeyPEM:      publicKey,
		Content:           content,
		Digest:            digest,
		Signature:         s.value(fieldSignature),
		SignatureEncoding: encoding,
	}, nil
}
