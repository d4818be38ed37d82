// Package printing hands finished documents to the OS print spooler.
package printing

import "errors"

// ErrPrintDispatch indicates the document could not be handed to the
// spooler. Best effort: persisted data is never affected.
var ErrPrintDispatch = errors.New("print dispatch failed")

// Submit sends the document at path to the default printer.
func Submit(path string) error {
	return submit(path)
}
