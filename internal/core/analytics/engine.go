// Package analytics derives aggregate statistics from a window of history records.
package analytics

import (
	"sort"

	"weatherhistory.app/internal/core/history"
)

// CityCount is the number of records stored for one city
type CityCount struct {
	City  string `json:"city"`
	Count int    `json:"count"`
}

// Result holds the aggregates of one record window. It is rebuilt from
// scratch on every recompute and never updated incrementally.
type Result struct {
	AverageTemperature float64         `json:"averageTemperature"`
	Hottest            *history.Record `json:"hottest"`
	CityCounts         []CityCount     `json:"cityCounts"`
	// TopCity is the most searched city, nil when there is no history
	TopCity *CityCount `json:"topCity"`
}

// Recompute derives the aggregates of records.
//
// Hottest points into records; on ties the first record in input order wins,
// which for a newest-first window is the most recent one. City counts group by
// exact name and are ordered by count descending, then city ascending.
func Recompute(records []history.Record) Result {
	result := Result{CityCounts: []CityCount{}}
	if len(records) == 0 {
		return result
	}

	var sum float64
	counts := make(map[string]int)
	for i := range records {
		rec := &records[i]
		sum += rec.Temperature
		if result.Hottest == nil || rec.Temperature > result.Hottest.Temperature {
			result.Hottest = rec
		}
		counts[rec.City]++
	}
	result.AverageTemperature = sum / float64(len(records))

	for city, count := range counts {
		result.CityCounts = append(result.CityCounts, CityCount{City: city, Count: count})
	}
	sort.Slice(result.CityCounts, func(i, j int) bool {
		a, b := result.CityCounts[i], result.CityCounts[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.City < b.City
	})
	top := result.CityCounts[0]
	result.TopCity = &top

	return result
}
