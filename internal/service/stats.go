package service

import "esep-backend/internal/domain"

// Stats is the dashboard summary derived from the registration list.
type Stats struct {
	Total        int
	ByCategory   map[string]int
	ByPanchayath []PanchayathCount
}

type PanchayathCount struct {
	Name  string
	Count int
}

// ComputeStats aggregates registrations per category and per panchayath.
// ByPanchayath follows the full panchayath list in its order, including
// zero counts; ByCategory only carries categories that actually occur.
func ComputeStats(registrations []domain.Registration, panchayaths []domain.Panchayath) Stats {
	stats := Stats{
		Total:        len(registrations),
		ByCategory:   make(map[string]int),
		ByPanchayath: make([]PanchayathCount, 0, len(panchayaths)),
	}

	byPanchayath := make(map[string]int)
	for _, r := range registrations {
		stats.ByCategory[r.Category]++
		byPanchayath[r.Panchayath]++
	}
	for _, p := range panchayaths {
		stats.ByPanchayath = append(stats.ByPanchayath, PanchayathCount{
			Name:  p.Name,
			Count: byPanchayath[p.Name],
		})
	}
	return stats
}
