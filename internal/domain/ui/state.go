package ui

import (
	"errors"
	"fmt"

	"github.com/MGTheTrain/crypto-workbench/internal/domain/cryptoalg"
)

// ErrInvalidTransition is returned when an event is not allowed in the current state.
var ErrInvalidTransition = errors.New("invalid UI transition")

// Section is one of the workbench pages.
type Section string

// Sections in display order.
const (
	SectionRSAKeys    Section = "rsa-keys"
	SectionRSASign    Section = "rsa-sign"
	SectionRSAVerify  Section = "rsa-verify"
	SectionAESEncrypt Section = "aes-encrypt"
	SectionAESDecrypt Section = "aes-decrypt"
)

// Sections lists every section in display order.
var Sections = []Section{SectionRSAKeys, SectionRSASign, SectionRSAVerify, SectionAESEncrypt, SectionAESDecrypt}

// ParseSection returns the section named s, or SectionRSAKeys and false when s is unknown.
func ParseSection(s string) (Section, bool) {
	for _, section := range Sections {
		if string(section) == s {
			return section, true
		}
	}
	return SectionRSAKeys, false
}

// Title is the heading shown for the section.
func (s Section) Title() string {
	switch s {
	case SectionRSAKeys:
		return "RSA Key Generation"
	case SectionRSASign:
		return "RSA Sign"
	case SectionRSAVerify:
		return "RSA Verify"
	case SectionAESEncrypt:
		return "AES Encrypt"
	case SectionAESDecrypt:
		return "AES Decrypt"
	default:
		return string(s)
	}
}

// IsAES reports whether s is an AES section.
func (s Section) IsAES() bool {
	return s == SectionAESEncrypt || s == SectionAESDecrypt
}

// HasContentTabs reports whether s takes text-or-file content input.
func (s Section) HasContentTabs() bool {
	return s != SectionRSAKeys
}

// HasKeyTabs reports whether s takes a PEM key as text or file.
func (s Section) HasKeyTabs() bool {
	return s == SectionRSASign || s == SectionRSAVerify
}

// InputTab selects between pasted text and an uploaded file.
type InputTab string

// Input tabs.
const (
	TabText InputTab = "text"
	TabFile InputTab = "file"
)

// ParseInputTab defaults to TabText for anything but "file".
func ParseInputTab(s string) InputTab {
	if s == string(TabFile) {
		return TabFile
	}
	return TabText
}

// EventKind enumerates the user interactions that change the page state.
type EventKind int

// Event kinds.
const (
	SelectSection EventKind = iota
	SelectContentTab
	SelectKeyTab
	SelectMode
)

func (k EventKind) String() string {
	switch k {
	case SelectSection:
		return "select-section"
	case SelectContentTab:
		return "select-content-tab"
	case SelectKeyTab:
		return "select-key-tab"
	case SelectMode:
		return "select-mode"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

// Event is a user interaction. Only the field matching Kind is read.
type Event struct {
	Kind    EventKind
	Section Section
	Tab     InputTab
	Mode    cryptoalg.Mode
}

// State is the page state. The zero value is not valid; use NewState.
type State struct {
	Section    Section
	ContentTab InputTab
	KeyTab     InputTab
	Mode       cryptoalg.Mode
}

// NewState returns the initial state: RSA key generation, text tabs, CBC.
func NewState() State {
	return State{
		Section:    SectionRSAKeys,
		ContentTab: TabText,
		KeyTab:     TabText,
		Mode:       cryptoalg.ModeCBC,
	}
}

// guard decides whether an event is allowed in a state.
type guard func(State, Event) bool

var transitions = map[EventKind]guard{
	SelectSection: func(_ State, e Event) bool {
		_, ok := ParseSection(string(e.Section))
		return ok
	},
	SelectContentTab: func(s State, e Event) bool {
		return s.Section.HasContentTabs() && validTab(e.Tab)
	},
	SelectKeyTab: func(s State, e Event) bool {
		return s.Section.HasKeyTabs() && validTab(e.Tab)
	},
	SelectMode: func(s State, e Event) bool {
		return s.Section.IsAES() && (e.Mode == cryptoalg.ModeCBC || e.Mode == cryptoalg.ModeECB)
	},
}

func validTab(tab InputTab) bool {
	return tab == TabText || tab == TabFile
}

// Transition applies e and returns the new state. Selecting a section resets
// both tabs to text and keeps the chosen mode.
func (s State) Transition(e Event) (State, error) {
	allowed, ok := transitions[e.Kind]
	if !ok || !allowed(s, e) {
		return s, fmt.Errorf("%s in section %s: %w", e.Kind, s.Section, ErrInvalidTransition)
	}

	next := s
	switch e.Kind {
	case SelectSection:
		next.Section = e.Section
		next.ContentTab = TabText
		next.KeyTab = TabText
	case SelectContentTab:
		next.ContentTab = e.Tab
	case SelectKeyTab:
		next.KeyTab = e.Tab
	case SelectMode:
		next.Mode = e.Mode
	}
	return next, nil
}

// ShowIV reports whether the IV field is visible: only for CBC on AES sections.
func (s State) ShowIV() bool {
	return s.Section.IsAES() && s.Mode == cryptoalg.ModeCBC
}
