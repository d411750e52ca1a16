package terminal

import (
	"context"

	"github.com/gdamore/tcell/v2"
	zlog "github.com/rs/zerolog/log"
)

// Action is what a terminal event asks the show to do.
type Action int

const (
	ActionNone Action = iota
	ActionBegin
	ActionRestart
	ActionQuit
	ActionResize
)

func (a Action) String() string {
	switch a {
	case ActionBegin:
		return "begin"
	case ActionRestart:
		return "restart"
	case ActionQuit:
		return "quit"
	case ActionResize:
		return "resize"
	default:
		return "none"
	}
}

// Classify maps a terminal event to an action. Any key other than the
// restart and quit keys is the start trigger.
func Classify(ev tcell.Event) Action {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		return ActionResize
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return ActionQuit
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				return ActionQuit
			case 'r', 'R':
				return ActionRestart
			}
		}
		return ActionBegin
	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 != 0 {
			return ActionBegin
		}
	}
	return ActionNone
}

// Controller receives the show commands.
type Controller interface {
	Begin() error
	Restart() error
	Post(fn func()) error
}

// Input turns terminal events into show commands until quit.
type Input struct {
	screen   tcell.Screen
	ctl      Controller
	onResize func(cols, rows int)
}

// NewInput creates an input loop. onResize runs on the controller's goroutine.
func NewInput(screen tcell.Screen, ctl Controller, onResize func(cols, rows int)) *Input {
	return &Input{screen: screen, ctl: ctl, onResize: onResize}
}

// Run dispatches events until a quit key is pressed or ctx is done.
func (in *Input) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := in.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if quit := in.dispatch(ev); quit {
				return nil
			}
		}
	}
}

func (in *Input) dispatch(ev tcell.Event) (quit bool) {
	var err error
	action := Classify(ev)
	switch action {
	case ActionQuit:
		return true
	case ActionBegin:
		err = in.ctl.Begin()
	case ActionRestart:
		err = in.ctl.Restart()
	case ActionResize:
		cols, rows := ev.(*tcell.EventResize).Size()
		if in.onResize != nil {
			err = in.ctl.Post(func() { in.onResize(cols, rows) })
		}
	}
	if err != nil {
		zlog.Warn().Msgf("terminal: %s not delivered: %v", action, err)
	}
	return false
}
