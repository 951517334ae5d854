package models

// Candidate is one truck offer returned by a catalog search. Read-only once
// fetched; requests reference it by ID only.
type Candidate struct {
	ID           string  `json:"id" bson:"id"`
	ProviderName string  `json:"providerName" bson:"providerName"`
	Contact      string  `json:"contact" bson:"contact"`
	TruckType    string  `json:"truckType" bson:"truckType"`
	CapacityTons float64 `json:"capacityTons" bson:"capacityTons"`
	Price        float64 `json:"price" bson:"price"`
	Rating       float64 `json:"rating" bson:"rating"`
	Available    bool    `json:"available" bson:"available"`
}

// CandidateDTO is the user-facing shape; the provider contact is masked.
type CandidateDTO struct {
	ID           string  `json:"id"`
	ProviderName string  `json:"providerName"`
	Contact      string  `json:"contact"`
	TruckType    string  `json:"truckType"`
	CapacityTons float64 `json:"capacityTons"`
	Price        float64 `json:"price"`
	Rating       float64 `json:"rating"`
	Preferred    bool    `json:"preferred"`
}

// SearchCriteria is the request schema for the catalog collaborator.
type SearchCriteria struct {
	Origin      string   `json:"origin"`
	Destination string   `json:"destination"`
	WindowStart string   `json:"windowStart"`
	WindowEnd   string   `json:"windowEnd"`
	Excluded    []string `json:"excluded,omitempty"`
}
