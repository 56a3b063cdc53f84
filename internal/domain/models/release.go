package models

import "fmt"

// ReleaseStatus gates whether new funds may be created on a release
type ReleaseStatus uint8

const (
	ReleaseStatusPreLaunch ReleaseStatus = iota
	ReleaseStatusLive
)

func (s ReleaseStatus) String() string {
	switch s {
	case ReleaseStatusPreLaunch:
		return "PreLaunch"
	case ReleaseStatusLive:
		return "Live"
	default:
		return fmt.Sprintf("ReleaseStatus(%d)", uint8(s))
	}
}

// CanTransitionTo reports whether moving to next is a forward transition
func (s ReleaseStatus) CanTransitionTo(next ReleaseStatus) bool {
	return s == ReleaseStatusPreLaunch && next == ReleaseStatusLive
}
