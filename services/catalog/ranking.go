package catalog

import (
	"sort"

	"freightbook/models"
)

// RankedCandidate holds a candidate with its computed composite score.
type RankedCandidate struct {
	Candidate  models.Candidate
	RankPoints float64
	Preferred  bool
}

const (
	maxPricePts  = 50.0
	maxRatingPts = 30.0
	availablePts = 20.0
)

// Rank filters out excluded and unavailable offers and orders the rest by a
// composite score favoring lower price and higher rating. Ties break on the
// offer ID so the ordering is deterministic.
func Rank(candidates []models.Candidate, excluded []string) []RankedCandidate {
	skip := make(map[string]bool, len(excluded))
	for _, id := range excluded {
		skip[id] = true
	}

	var maxPrice float64
	for _, c := range candidates {
		if !skip[c.ID] && c.Price > maxPrice {
			maxPrice = c.Price
		}
	}

	computePriceScore := func(price float64) float64 {
		if maxPrice <= 0 {
			return maxPricePts
		}
		return maxPricePts * (1 - price/maxPrice)
	}
	computeRatingScore := func(rating float64) float64 {
		if rating > 5 {
			rating = 5
		}
		if rating < 0 {
			rating = 0
		}
		return (rating / 5) * maxRatingPts
	}

	var ranked []RankedCandidate
	for _, c := range candidates {
		if skip[c.ID] {
			continue
		}
		score := computePriceScore(c.Price) + computeRatingScore(c.Rating)
		if c.Available {
			score += availablePts
		}
		ranked = append(ranked, RankedCandidate{Candidate: c, RankPoints: score})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].RankPoints != ranked[j].RankPoints {
			return ranked[i].RankPoints > ranked[j].RankPoints
		}
		return ranked[i].Candidate.ID < ranked[j].Candidate.ID
	})

	for i := range ranked {
		ranked[i].Preferred = i == 0
	}
	return ranked
}

// ExtractDTOs converts ranked candidates to their user-facing shape. The
// mask function hides the provider contact before it leaves the server.
func ExtractDTOs(ranked []RankedCandidate, mask func(string) string) []models.CandidateDTO {
	var dtos []models.CandidateDTO
	for _, rc := range ranked {
		dtos = append(dtos, models.CandidateDTO{
			ID:           rc.Candidate.ID,
			ProviderName: rc.Candidate.ProviderName,
			Contact:      mask(rc.Candidate.Contact),
			TruckType:    rc.Candidate.TruckType,
			CapacityTons: rc.Candidate.CapacityTons,
			Price:        rc.Candidate.Price,
			Rating:       rc.Candidate.Rating,
			Preferred:    rc.Preferred,
		})
	}
	return dtos
}
