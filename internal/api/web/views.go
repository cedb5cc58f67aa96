package web

import (
	"github.com/MGTheTrain/crypto-workbench/internal/domain/ui"
	"github.com/MGTheTrain/crypto-workbench/internal/domain/workbench"
)

// nonUTF8Warning is shown when decrypted bytes had to be rendered with replacement characters.
const nonUTF8Warning = "decrypted bytes are not valid UTF-8; invalid sequences are shown as �"

type sectionLink struct {
	Section ui.Section
	Title   string
	Active  bool
}

type resultField struct {
	Label    string
	Value    string
	Artifact workbench.Artifact
}

// resultView is the outcome panel below the form
type resultView struct {
	Fields   []resultField
	Verified bool
	Valid    bool
	Note     string
	Warning  string
}

// pageView is the data the page template renders
type pageView struct {
	State       ui.State
	Title       string
	Sections    []sectionLink
	Banner      string
	Error       string
	Result      *resultView
	Form        map[string]string
	RSAKeySizes []int
	AESKeySizes []int

	KeyEncodings    []string
	BinaryEncodings []string
	Digests         []string
}

func (h *handler) newPage(state ui.State, form map[string]string) *pageView {
	page := &pageView{
		State:       state,
		Title:       state.Section.Title(),
		Form:        form,
		RSAKeySizes: h.rsaKeySizes,
		AESKeySizes: []int{128, 192, 256},

		KeyEncodings:    []string{"UTF8", "HEX", "BASE64"},
		BinaryEncodings: []string{"HEX", "BASE64"},
		Digests:         []string{"256", "384", "512"},
	}
	for _, section := range ui.Sections {
		page.Sections = append(page.Sections, sectionLink{
			Section: section,
			Title:   section.Title(),
			Active:  section == state.Section,
		})
	}
	if h.services.Capabilities != nil {
		if err := h.services.Capabilities.Report().Err(); err != nil {
			page.Banner = err.Error()
		}
	}
	return page
}

func encryptView(result *workbench.AESEncryptResult) *resultView {
	view := &resultView{
		Fields: []resultField{
			{Label: "Key", Value: result.Key, Artifact: workbench.ArtifactAESKey},
			{Label: "Ciphertext", Value: result.Ciphertext, Artifact: workbench.ArtifactAESCiphertext},
		},
	}
	if result.IV != "" {
		view.Fields = append(view.Fields, resultField{Label: "IV", Value: result.IV, Artifact: workbench.ArtifactAESIV})
	}
	switch {
	case result.KeyGenerated && result.IVGenerated:
		view.Note = "A random key and IV were generated. Save both to decrypt later."
	case result.KeyGenerated:
		view.Note = "A random key was generated. Save it to decrypt later."
	case result.IVGenerated:
		view.Note = "A random IV was generated. Save it to decrypt later."
	}
	return view
}

func decryptView(result *workbench.AESDecryptResult) *resultView {
	view := &resultView{
		Fields: []resultField{
			{Label: "Plaintext", Value: result.Plaintext, Artifact: workbench.ArtifactAESDecrypted},
		},
		Warning: result.Warning,
	}
	if !result.ValidUTF8 {
		view.Warning = nonUTF8Warning
	}
	return view
}

func keyPairView(result *workbench.RSAKeyResult) *resultView {
	return &resultView{
		Fields: []resultField{
			{Label: "Public key", Value: result.PublicKeyPEM, Artifact: workbench.ArtifactPublicKey},
			{Label: "Private key", Value: result.PrivateKeyPEM, Artifact: workbench.ArtifactPrivateKey},
		},
		Note: "Generated by the " + result.Generator + " key generator.",
	}
}

func signView(result *workbench.SignResult) *resultView {
	return &resultView{
		Fields: []resultField{
			{Label: "Signature (" + string(result.Digest) + ")", Value: result.Signature, Artifact: workbench.ArtifactSignature},
		},
	}
}

func verifyView(result *workbench.VerifyResult) *resultView {
	return &resultView{Verified: true, Valid: result.Valid}
}
