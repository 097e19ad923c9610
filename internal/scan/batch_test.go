package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/theater-staff/internal/model"
)

func TestParseBatchSkipsMalformedEntries(t *testing.T) {
	raw := []byte(`[
		{"type": "qr", "data": "T-1"},
		{"type": "qr"},
		{"data": "T-2"},
		{"type": 7, "data": "T-3"},
		{"type": "qr", "data": ["T-4"]},
		null,
		"qr",
		42,
		{"type": "qr", "data": " T-5 ", "bounds": {"x": 1}}
	]`)
	got := ParseBatch(raw)
	assert.Equal(t, []model.Observation{
		{Type: "qr", Data: "T-1"},
		{Type: "qr", Data: " T-5 "},
	}, got)
}

func TestParseBatchNotAnArray(t *testing.T) {
	assert.Empty(t, ParseBatch([]byte(`{"type":"qr"}`)))
	assert.Empty(t, ParseBatch([]byte(`garbage`)))
	assert.Empty(t, ParseBatch(nil))
}
