package media

import (
	"github.com/cockroachdb/errors"
)

// PlaybackResult is the outcome of a play attempt with the muted fallback.
type PlaybackResult int

const (
	PlaybackNone    PlaybackResult = iota // No attempt made yet
	PlayedWithSound                       // First attempt succeeded
	PlayedMuted                           // Sound was rejected, muted retry succeeded
	PlaybackFailed                        // Both attempts were rejected
)

// String returns the string representation of the result.
func (r PlaybackResult) String() string {
	switch r {
	case PlaybackNone:
		return "none"
	case PlayedWithSound:
		return "played_with_sound"
	case PlayedMuted:
		return "played_muted"
	case PlaybackFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ErrPlaybackRejected marks a channel that refused both play attempts.
var ErrPlaybackRejected = errors.New("playback rejected")

// PlayWithFallback plays ch with sound and retries muted if that is rejected.
// On PlaybackFailed the returned error wraps both rejections.
func PlayWithFallback(ch Channel) (PlaybackResult, error) {
	err := ch.Play()
	if err == nil {
		return PlayedWithSound, nil
	}

	ch.SetMuted(true)
	mutedErr := ch.Play()
	if mutedErr == nil {
		return PlayedMuted, nil
	}

	combined := errors.CombineErrors(err, mutedErr)
	return PlaybackFailed, errors.Mark(errors.Wrapf(combined, "play %s", ch.Source()), ErrPlaybackRejected)
}
