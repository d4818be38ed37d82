package receipt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vetsone/clinic-billing/models"
)

func TestNextNumberFormat(t *testing.T) {
	restore := now
	defer func() { now = restore }()
	now = func() time.Time { return time.Date(2024, 1, 15, 9, 30, 41, 0, time.UTC) }

	require.Equal(t, "R-20240115-093041", NextNumber())
}

func TestRenumberItemsDense(t *testing.T) {
	items := []models.DraftItemInput{
		{Description: "Consultation"},
		{},
		{Description: "Rabies vaccine"},
		{Description: ""},
		{Description: "Deworming tablets"},
	}

	got := RenumberItems(items)
	require.Equal(t, "1", got[0].ItemNumber)
	require.Equal(t, "", got[1].ItemNumber)
	require.Equal(t, "2", got[2].ItemNumber)
	require.Equal(t, "", got[3].ItemNumber)
	require.Equal(t, "3", got[4].ItemNumber)
}

func TestRenumberItemsIdempotent(t *testing.T) {
	items := []models.DraftItemInput{
		{Description: "Consultation", ItemNumber: "9"},
		{ItemNumber: "4"},
		{Description: "X-ray"},
	}

	once := RenumberItems(items)
	twice := RenumberItems(once)
	require.Equal(t, once, twice)
	require.Equal(t, "1", once[0].ItemNumber)
	require.Equal(t, "", once[1].ItemNumber, "blank rows lose any stale number")
	require.Equal(t, "2", once[2].ItemNumber)
}

func TestRenumberItemsShiftsAfterEdit(t *testing.T) {
	items := []models.DraftItemInput{
		{Description: "Consultation"},
		{Description: "X-ray"},
		{Description: "Bandage"},
	}
	numbered := RenumberItems(items)
	require.Equal(t, "2", numbered[1].ItemNumber)

	// Clearing a description shifts everything after it
	numbered[1].Description = ""
	renumbered := RenumberItems(numbered)
	require.Equal(t, "1", renumbered[0].ItemNumber)
	require.Equal(t, "", renumbered[1].ItemNumber)
	require.Equal(t, "2", renumbered[2].ItemNumber)
}

func TestRenumberItemsEmpty(t *testing.T) {
	require.Empty(t, RenumberItems(nil))
}
