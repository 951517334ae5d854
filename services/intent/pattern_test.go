package intent

import (
	"context"
	"testing"

	"freightbook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatternExtractorBooking(t *testing.T) {
	p := NewPatternExtractor()
	got, err := p.Extract(context.Background(),
		"book a truck from Mumbai to Delhi 2026-09-01 to 2026-09-03 for 2 people under $500")
	require.NoError(t, err)

	assert.Equal(t, models.IntentBookTrip, got.IntentKind)
	assert.Equal(t, "Mumbai", got.Origin)
	assert.Equal(t, "Delhi", got.Destination)
	assert.Equal(t, "2026-09-01", got.StartDate)
	assert.Equal(t, "2026-09-03", got.EndDate)
	assert.Equal(t, 2, got.PartyCount)
	assert.Equal(t, 500.0, got.Budget)
}

func TestPatternExtractorSingleDate(t *testing.T) {
	p := NewPatternExtractor()
	got, err := p.Extract(context.Background(), "need a truck from Pune to Nagpur on 2026-10-12")
	require.NoError(t, err)
	assert.Equal(t, "Pune", got.Origin)
	assert.Equal(t, "Nagpur", got.Destination)
	assert.Equal(t, "2026-10-12", got.StartDate)
	assert.Equal(t, "2026-10-12", got.EndDate)
}

func TestPatternExtractorOtherIntents(t *testing.T) {
	p := NewPatternExtractor()

	got, err := p.Extract(context.Background(), "cancel my booking BK-1001")
	require.NoError(t, err)
	assert.Equal(t, models.IntentCancelTrip, got.IntentKind)

	got, err = p.Extract(context.Background(), "what is the status of my shipment?")
	require.NoError(t, err)
	assert.Equal(t, models.IntentQueryStatus, got.IntentKind)
}

func TestParseIntentJSONToleratesFences(t *testing.T) {
	raw := "```json\n{\"intent_kind\":\"book_trip\",\"origin\":\"Mumbai\",\"destination\":\"Delhi\",\"start_date\":\"2026-09-01\",\"end_date\":\"2026-09-03\"}\n```"
	got, err := parseIntentJSON(raw)
	require.NoError(t, err)
	assert.Equal(t, "Mumbai", got.Origin)

	_, err = parseIntentJSON("sorry, I could not help with that")
	assert.Error(t, err)
}
