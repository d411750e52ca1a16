package sequencer

import (
	"time"

	"github.com/osa030/showreel/internal/app/framing"
	"github.com/osa030/showreel/internal/app/overlay"
	"github.com/osa030/showreel/internal/domain/asset"
)

// PhotoView displays the current photo.
type PhotoView interface {
	overlay.Overlay
	SetSource(ref string)
	SetCounter(position, total int)
}

// FrameView is the box photos and videos are fitted into.
type FrameView interface {
	Viewport() framing.Size
	ApplyFrame(box framing.Box)
}

// ProgressBar shows how much of the current dwell has elapsed.
type ProgressBar interface {
	Start(d time.Duration)
	Reset()
}

// VideoView toggles the video surface.
type VideoView interface {
	SetVisible(visible bool)
}

// Stage groups the visual collaborators.
type Stage struct {
	Intro     overlay.Overlay // Splash shown before the gate
	TapPrompt overlay.Overlay // "Tap to start" prompt
	Main      overlay.Overlay // Base layer, stays visible once revealed
	Slideshow overlay.Overlay
	Popup     overlay.Overlay
	FinalWish overlay.Overlay
	Ending    overlay.Overlay

	Photo    PhotoView
	Frame    FrameView
	Progress ProgressBar
	Video    VideoView
}

// PhotoLoader loads a photo and reports its natural size. done may run before
// Load returns or later, but always on the sequencer's goroutine.
type PhotoLoader interface {
	Load(a asset.Asset, done func(size framing.Size, err error))
}

// Chime plays the intro sound.
type Chime interface {
	Play() error
}

// Playlists is the ordered media of one run.
type Playlists struct {
	Photos []asset.Asset
	Videos []asset.Asset
	Final  asset.Asset
}
