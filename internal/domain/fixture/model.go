package fixture

import (
	"strings"
	"time"
)

const (
	StatusScheduled = "SCHEDULED"
	StatusLive      = "LIVE"
	StatusFinished  = "FINISHED"
	StatusCancelled = "CANCELLED"
	StatusPostponed = "POSTPONED"
)

// Fixture is one real-world match scheduled in a round.
type Fixture struct {
	ID         int64
	Round      int
	HomeTeamID int64
	AwayTeamID int64
	KickoffAt  *time.Time
	Status     string
	Finished   bool
}

func NormalizeStatus(value string) string {
	status := strings.ToUpper(strings.TrimSpace(value))
	if status == "" {
		return StatusScheduled
	}
	return status
}

func IsLiveStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusLive, "IN_PLAY", "HT", "1H", "2H", "ET":
		return true
	default:
		return false
	}
}

func IsFinishedStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusFinished, "FT", "AET", "PEN":
		return true
	default:
		return false
	}
}

func IsCancelledLikeStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusCancelled, StatusPostponed, "ABANDONED":
		return true
	default:
		return false
	}
}

// StatusFromFlags derives a status string from the provider's started/finished flags.
// A fixture without a kickoff time is treated as postponed.
func StatusFromFlags(kickoffAt *time.Time, started, finished bool) string {
	switch {
	case finished:
		return StatusFinished
	case kickoffAt == nil:
		return StatusPostponed
	case started:
		return StatusLive
	default:
		return StatusScheduled
	}
}

// AllFinished reports whether every fixture in items has finished.
// An empty round is not considered finished.
func AllFinished(items []Fixture) bool {
	if len(items) == 0 {
		return false
	}
	for _, item := range items {
		if !item.Finished {
			return false
		}
	}
	return true
}
