package booking

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"freightbook/models"
)

// DetailOutcome reports the result of one submit-details turn: which fields
// were merged, which were refused and why, and what is still missing.
type DetailOutcome struct {
	Accepted    []string            `json:"accepted"`
	Invalid     map[string]string   `json:"invalid,omitempty"`
	Outstanding []string            `json:"outstanding,omitempty"`
	Complete    bool                `json:"complete"`
	State       models.RequestState `json:"state"`
}

var (
	weightPattern = regexp.MustCompile(`^\s*(-?\d+(?:\.\d+)?)\s*(kg|kgs|t|ton|tons)?\s*$`)
	sizePattern   = regexp.MustCompile(`^\s*\d+(?:\.\d+)?\s*[a-z]*\s*x\s*\d+(?:\.\d+)?\s*[a-z]*\s*x\s*\d+(?:\.\d+)?\s*[a-z]*\s*$`)
)

// mergeField validates one submitted value and, if it passes, writes it into
// the details. Gate screening (dangerous patterns, length) happens before
// this is called; here we enforce per-field format rules.
func mergeField(details *models.TripDetails, field, value string) error {
	switch field {
	case models.FieldConsigner, models.FieldConsignee:
		if len(strings.TrimSpace(value)) < 2 {
			return fmt.Errorf("name must be at least 2 characters")
		}
		if field == models.FieldConsigner {
			details.ConsignerName = strings.TrimSpace(value)
		} else {
			details.ConsigneeName = strings.TrimSpace(value)
		}
	case models.FieldPickupAddress, models.FieldDeliveryAddress:
		if len(strings.TrimSpace(value)) < 5 {
			return fmt.Errorf("address is too short")
		}
		if field == models.FieldPickupAddress {
			details.PickupAddress = strings.TrimSpace(value)
		} else {
			details.DeliveryAddress = strings.TrimSpace(value)
		}
	case models.FieldParcelSize:
		if !sizePattern.MatchString(strings.ToLower(value)) {
			return fmt.Errorf("size must look like '2m x 1m x 1m'")
		}
		details.ParcelSize = strings.TrimSpace(value)
	case models.FieldParcelWeight:
		kg, err := parseWeightKg(value)
		if err != nil {
			return err
		}
		details.ParcelWeightKg = kg
	case models.FieldParcelValue:
		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil || v <= 0 {
			return fmt.Errorf("declared value must be a positive number")
		}
		details.DeclaredValue = v
	case models.FieldInstructions:
		details.SpecialInstructions = strings.TrimSpace(value)
	default:
		return fmt.Errorf("unknown field %q", field)
	}
	return nil
}

// parseWeightKg accepts "500kg", "0.5t", or a bare number of kilograms and
// rejects anything non-positive.
func parseWeightKg(value string) (float64, error) {
	m := weightPattern.FindStringSubmatch(strings.ToLower(value))
	if m == nil {
		return 0, fmt.Errorf("weight must be a number with an optional kg/t suffix")
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, fmt.Errorf("weight must be numeric")
	}
	switch m[2] {
	case "t", "ton", "tons":
		n *= 1000
	}
	if n <= 0 {
		return 0, fmt.Errorf("weight must be a positive magnitude")
	}
	return n, nil
}
