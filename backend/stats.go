package main

// Statistics is a from-scratch reduction over an event snapshot. Whole-day
// events carry no duration and are ignored entirely.
type Statistics struct {
	Count          int
	TotalHours     float64
	AverageMinutes float64
	PerDayCount    map[string]int
}

func CalculateStatistics(events []*Event) Statistics {
	stats := Statistics{PerDayCount: make(map[string]int)}

	totalMinutes := 0.0
	for _, e := range events {
		start, okStart := e.StartTime()
		end, okEnd := e.EndTime()
		if !okStart || !okEnd {
			continue
		}
		stats.Count++
		totalMinutes += end.Sub(start).Minutes()
		stats.PerDayCount[start.Format("2006-01-02")]++
	}

	stats.TotalHours = totalMinutes / 60
	if stats.Count > 0 {
		stats.AverageMinutes = totalMinutes / float64(stats.Count)
	}
	return stats
}
