// Package receipt assigns receipt numbers and line-item numbers.
package receipt

import (
	"strconv"
	"time"

	"github.com/vetsone/clinic-billing/models"
)

// now is swapped out in tests.
var now = time.Now

// NextNumber returns a receipt number derived from the wall clock at second
// resolution, e.g. R-20240115-093041. Two calls within the same second can
// collide; the store rejects the duplicate and the caller regenerates.
func NextNumber() string {
	return "R-" + now().Format("20060102-150405")
}

// RenumberItems assigns item numbers as a dense 1..N sequence over the rows
// that carry a non-empty description, in display order. Rows without a
// description are left unnumbered. Must be re-run after every edit that
// changes which rows have content; running it on its own output is a no-op.
func RenumberItems(items []models.DraftItemInput) []models.DraftItemInput {
	out := make([]models.DraftItemInput, len(items))
	n := 0
	for i, it := range items {
		if it.Description != "" {
			n++
			it.ItemNumber = strconv.Itoa(n)
		} else {
			it.ItemNumber = ""
		}
		out[i] = it
	}
	return out
}
