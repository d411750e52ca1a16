// Package sequencer drives the fixed scene order of the show.
package sequencer

// State represents the active scene.
type State int

const (
	StateIdle           State = iota // Waiting for the start trigger
	StateIntro                       // Tap prompt fading out, main content appearing
	StatePhotoSlideshow              // Photos with background music
	StatePopup                       // Message card between photos and videos
	StateVideoPlaylist               // Video clips, music stopped
	StateFinalWish                   // Closing message card
	StateFinalVideo                  // Single closing clip
	StateEnding                      // Ending screen with intensified fireworks
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateIntro:
		return "intro"
	case StatePhotoSlideshow:
		return "photo_slideshow"
	case StatePopup:
		return "popup"
	case StateVideoPlaylist:
		return "video_playlist"
	case StateFinalWish:
		return "final_wish"
	case StateFinalVideo:
		return "final_video"
	case StateEnding:
		return "ending"
	default:
		return "unknown"
	}
}
