package nearby

import (
	"math"
	"sort"

	"gym-occupancy-backend/internal/geo"
	"gym-occupancy-backend/internal/model"
)

// Candidate pairs a gym with its current occupancy percentage.
type Candidate struct {
	Gym        model.Gym
	Percentage float64
}

// Gym is one row of the "less crowded nearby" panel. Built fresh per request;
// never persisted.
type Gym struct {
	GymName    string  `json:"gymName"`
	Percentage float64 `json:"percentage"`
	DistanceKm float64 `json:"distanceKm"`
	State      string  `json:"state"`
}

// Rank returns up to maxResults active gyms within radiusKm of ref, least
// crowded first, ties broken by distance. An unresolvable reference yields an
// empty result: without a reference point there is nothing to rank, which is
// an insufficient-data outcome rather than an error. Candidates whose
// coordinates cannot be resolved are skipped, never failed.
func Rank(ref model.Gym, candidates []Candidate, radiusKm float64, maxResults int) []Gym {
	refLat, refLng, ok := geo.Resolve(ref)
	if !ok {
		return []Gym{}
	}

	type scored struct {
		candidate Candidate
		distance  float64 // unrounded, used for comparison
	}

	within := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		if c.Gym.ID == ref.ID || !c.Gym.Active {
			continue
		}
		lat, lng, ok := geo.Resolve(c.Gym)
		if !ok {
			continue
		}
		d := geo.DistanceKm(refLat, refLng, lat, lng)
		if d > radiusKm {
			continue
		}
		within = append(within, scored{candidate: c, distance: d})
	}

	sort.Slice(within, func(i, j int) bool {
		if within[i].candidate.Percentage != within[j].candidate.Percentage {
			return within[i].candidate.Percentage < within[j].candidate.Percentage
		}
		return within[i].distance < within[j].distance
	})

	if len(within) > maxResults {
		within = within[:maxResults]
	}

	result := make([]Gym, 0, len(within))
	for _, s := range within {
		result = append(result, Gym{
			GymName:    s.candidate.Gym.Name,
			Percentage: s.candidate.Percentage,
			DistanceKm: math.Round(s.distance*10) / 10,
			State:      s.candidate.Gym.State,
		})
	}
	return result
}
