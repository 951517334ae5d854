package models

import "time"

// Trip detail field names as submitted by the detail collector.
const (
	FieldConsigner       = "consigner_name"
	FieldConsignee       = "consignee_name"
	FieldPickupAddress   = "pickup_address"
	FieldDeliveryAddress = "delivery_address"
	FieldParcelSize      = "parcel_size"
	FieldParcelWeight    = "parcel_weight"
	FieldParcelValue     = "parcel_value"
	FieldInstructions    = "special_instructions"
)

// RequiredDetailFields is the set a request must complete before it may leave
// detail collection. Declared value and instructions are optional.
var RequiredDetailFields = []string{
	FieldConsigner,
	FieldConsignee,
	FieldPickupAddress,
	FieldDeliveryAddress,
	FieldParcelSize,
	FieldParcelWeight,
}

// TripDetails accumulates across user turns; a failed validation never
// discards fields that already passed.
type TripDetails struct {
	ConsignerName       string    `json:"consignerName,omitempty" bson:"consignerName,omitempty"`
	ConsigneeName       string    `json:"consigneeName,omitempty" bson:"consigneeName,omitempty"`
	PickupAddress       string    `json:"pickupAddress,omitempty" bson:"pickupAddress,omitempty"`
	DeliveryAddress     string    `json:"deliveryAddress,omitempty" bson:"deliveryAddress,omitempty"`
	ParcelSize          string    `json:"parcelSize,omitempty" bson:"parcelSize,omitempty"`
	ParcelWeightKg      float64   `json:"parcelWeightKg,omitempty" bson:"parcelWeightKg,omitempty"`
	DeclaredValue       float64   `json:"declaredValue,omitempty" bson:"declaredValue,omitempty"`
	SpecialInstructions string    `json:"specialInstructions,omitempty" bson:"specialInstructions,omitempty"`
	UpdatedAt           time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Has reports whether the named field already holds an accepted value.
func (d *TripDetails) Has(field string) bool {
	if d == nil {
		return false
	}
	switch field {
	case FieldConsigner:
		return d.ConsignerName != ""
	case FieldConsignee:
		return d.ConsigneeName != ""
	case FieldPickupAddress:
		return d.PickupAddress != ""
	case FieldDeliveryAddress:
		return d.DeliveryAddress != ""
	case FieldParcelSize:
		return d.ParcelSize != ""
	case FieldParcelWeight:
		return d.ParcelWeightKg > 0
	case FieldParcelValue:
		return d.DeclaredValue > 0
	case FieldInstructions:
		return d.SpecialInstructions != ""
	}
	return false
}

// Outstanding lists the required fields still absent.
func (d *TripDetails) Outstanding() []string {
	var missing []string
	for _, f := range RequiredDetailFields {
		if !d.Has(f) {
			missing = append(missing, f)
		}
	}
	return missing
}

// Complete reports whether every required field has been accepted.
func (d *TripDetails) Complete() bool {
	return len(d.Outstanding()) == 0
}
