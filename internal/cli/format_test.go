package cli

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mmynk/contactbook/internal/models"
)

func TestFormatPhones(t *testing.T) {
	got := formatPhones([]models.PhoneNumber{
		{Number: "555-123-4567", Label: models.PhoneCell},
		{Number: "555-222-3333", Label: models.PhoneHome},
		{Number: "555-444-5555", Label: models.PhoneOther},
	})
	require.Equal(t, "(C) 555-123-4567\n(H) 555-222-3333\n(O) 555-444-5555", got)
	require.Equal(t, "", formatPhones(nil))
}

func TestFormatAddress(t *testing.T) {
	a := models.Address{Line1: "1 Main St", City: "Halifax", Prov: "NS", Country: "Canada", Postcode: "B3H 1A1"}
	require.Equal(t, "1 Main St\nHalifax, NS, Canada\nB3H 1A1", formatAddress(a))

	a.Line2 = "Unit 4"
	require.Equal(t, "1 Main St\nUnit 4\nHalifax, NS, Canada\nB3H 1A1", formatAddress(a))
}

func TestLabelTitle(t *testing.T) {
	require.Equal(t, "Cell", labelTitle(models.PhoneCell))
	require.Equal(t, "Other", labelTitle(models.PhoneOther))
}
