package sequencer

import (
	"time"

	"github.com/osa030/showreel/internal/app/media"
	"github.com/osa030/showreel/internal/domain/asset"
)

// EventType represents a sequencer event type.
type EventType int

const (
	EventStateChanged     EventType = iota // Scene changed
	EventPhotoShown                        // Photo source assigned
	EventPhotoSkipped                      // Photo failed to load and was skipped
	EventVideoStarted                      // Video playback started (see Playback)
	EventVideoSkipped                      // Video reported an error and was skipped
	EventPlaybackFailed                    // Both play attempts were rejected
	EventIntensityChanged                  // Fireworks intensity or launch interval changed
	EventReset                             // Restart finished tearing down the previous run
)

// String returns the string representation of the event type.
func (e EventType) String() string {
	switch e {
	case EventStateChanged:
		return "state_changed"
	case EventPhotoShown:
		return "photo_shown"
	case EventPhotoSkipped:
		return "photo_skipped"
	case EventVideoStarted:
		return "video_started"
	case EventVideoSkipped:
		return "video_skipped"
	case EventPlaybackFailed:
		return "playback_failed"
	case EventIntensityChanged:
		return "intensity_changed"
	case EventReset:
		return "reset"
	default:
		return "unknown"
	}
}

// ResetSnapshot captures the teardown half of a restart, before anything is re-armed.
type ResetSnapshot struct {
	OutstandingTimers int
	PendingFrames     int
	MusicPaused       bool
	MusicPosition     time.Duration
	VideoPaused       bool
	VideoPosition     time.Duration
	Particles         int
	Confetti          int
	Intensity         float64
	LaunchInterval    time.Duration
}

// Event represents a sequencer event.
type Event struct {
	Type      EventType
	State     State  // State when the event was emitted
	RunID     string // Run the event belongs to
	Asset     asset.Asset
	Index     int // Cursor index for photo and video events
	Playback  media.PlaybackResult
	Intensity float64
	Interval  time.Duration
	Reset     *ResetSnapshot
	Err       error
}
