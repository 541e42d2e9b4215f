package service

import (
	"github.com/xolan/focus/internal/stats"
)

// StatsService provides statistics for the current cycle
type StatsService struct {
	e *engine
}

// Weekly returns per-day totals, work durations and progress for the
// current cycle, computed from the published snapshot.
func (s *StatsService) Weekly() WeeklyReport {
	snap := s.e.state.Snapshot()
	week := snap.CurrentWeekRecords

	return WeeklyReport{
		Goal:         snap.Goal,
		Cycle:        snap.Cycle,
		Daily:        stats.DailyStats(week, snap.Cycle),
		DailyWork:    stats.DailyWorkStats(week, snap.Cycle),
		Progress:     snap.Progress(),
		TodayMinutes: stats.TodayMinutes(snap.TodaysRecords),
		TodayWork:    stats.TodayWorkDuration(snap.TodaysRecords, snap.Goal.ID),
		Summary:      stats.Summarize(week, snap.Cycle, snap.Goal),
		Degraded:     snap.Degraded,
	}
}
