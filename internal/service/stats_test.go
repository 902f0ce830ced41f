package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"esep-backend/internal/domain"
)

func TestComputeStatsEmpty(t *testing.T) {
	stats := ComputeStats(nil, nil)
	assert.Equal(t, 0, stats.Total)
	assert.Empty(t, stats.ByCategory)
	assert.Empty(t, stats.ByPanchayath)
}

func TestComputeStatsCountsCategories(t *testing.T) {
	regs := []domain.Registration{
		{Category: "Farmelife", Panchayath: "Kadakkal"},
		{Category: "Farmelife", Panchayath: "Chithara"},
		{Category: "Foodelif", Panchayath: "Kadakkal"},
	}
	stats := ComputeStats(regs, nil)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, map[string]int{"Farmelife": 2, "Foodelif": 1}, stats.ByCategory)
}

func TestComputeStatsZeroFillsPanchayaths(t *testing.T) {
	panchayaths := []domain.Panchayath{
		{Name: "Kadakkal"},
		{Name: "Chithara"},
		{Name: "Ittiva"},
	}
	regs := []domain.Registration{
		{Category: "Farmelife", Panchayath: "Kadakkal"},
	}

	stats := ComputeStats(regs, panchayaths)

	// every panchayath appears, list order preserved, zero counts kept
	assert.Equal(t, []PanchayathCount{
		{Name: "Kadakkal", Count: 1},
		{Name: "Chithara", Count: 0},
		{Name: "Ittiva", Count: 0},
	}, stats.ByPanchayath)
}

func TestComputeStatsIgnoresUnlistedPanchayaths(t *testing.T) {
	panchayaths := []domain.Panchayath{{Name: "Kadakkal"}}
	regs := []domain.Registration{
		{Category: "Farmelife", Panchayath: "Kadakkal"},
		{Category: "Farmelife", Panchayath: "Removed Panchayath"},
	}

	stats := ComputeStats(regs, panchayaths)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, []PanchayathCount{{Name: "Kadakkal", Count: 1}}, stats.ByPanchayath)
}
