// Package ui models the page state of the workbench: which section is shown, which input
// tabs are active and which cipher mode is selected. It has no dependency on the crypto code.
package ui
