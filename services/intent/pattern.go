package intent

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"freightbook/models"
)

// PatternExtractor is the deterministic fallback parser. It covers the common
// phrasings ("book a truck from Mumbai to Delhi 2026-09-01 to 2026-09-03 for
// 2 people under $500") without any external call.
type PatternExtractor struct{}

func NewPatternExtractor() *PatternExtractor {
	return &PatternExtractor{}
}

var (
	datePattern   = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
	routePattern  = regexp.MustCompile(`(?i)\bfrom\s+([A-Za-z][A-Za-z .'-]*?)\s+to\s+([A-Za-z][A-Za-z .'-]*?)(?:\s+(?:on|between|from|for|under|by|with)\b|\s*\d{4}-|\s*[,.]|$)`)
	partyPattern  = regexp.MustCompile(`(?i)(\d+)\s*(?:people|persons|travellers|travelers|passengers)`)
	budgetPattern = regexp.MustCompile(`(?i)(?:under|below|budget(?:\s+of)?|max(?:imum)?)?\s*[$₹]\s*(\d+(?:\.\d+)?)`)
	cancelHint    = regexp.MustCompile(`(?i)\bcancel\b`)
	statusHint    = regexp.MustCompile(`(?i)\b(status|where is|track)\b`)
)

func (p *PatternExtractor) Extract(_ context.Context, message string) (*models.TripIntent, error) {
	intent := &models.TripIntent{IntentKind: models.IntentBookTrip}
	switch {
	case cancelHint.MatchString(message):
		intent.IntentKind = models.IntentCancelTrip
	case statusHint.MatchString(message):
		intent.IntentKind = models.IntentQueryStatus
	}

	if m := routePattern.FindStringSubmatch(message); m != nil {
		intent.Origin = strings.TrimSpace(m[1])
		intent.Destination = strings.TrimSpace(m[2])
	}

	dates := datePattern.FindAllString(message, 2)
	if len(dates) > 0 {
		intent.StartDate = dates[0]
		intent.EndDate = dates[0]
	}
	if len(dates) > 1 {
		intent.EndDate = dates[1]
	}

	if m := partyPattern.FindStringSubmatch(message); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			intent.PartyCount = n
		}
	}
	if m := budgetPattern.FindStringSubmatch(message); m != nil {
		if b, err := strconv.ParseFloat(m[1], 64); err == nil {
			intent.Budget = b
		}
	}
	return intent, nil
}
