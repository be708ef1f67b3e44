package app

import "github.com/hajimehoshi/ebiten/v2"

// Key and MouseButton name the inputs forwarded to states.
type (
	Key         = ebiten.Key
	MouseButton = ebiten.MouseButton
)

type EventKind int

const (
	EventResized EventKind = iota
	EventFileDropped
	EventQuit
)

// Event is what the app publishes on the "app" bus channel, mirroring the
// callbacks it forwards to the state machine, so systems that never see the
// machine can still react to window changes.
type Event struct {
	Kind   EventKind
	Width  int
	Height int
	Path   string
}

// EventChannel is the bus channel the app publishes on.
const EventChannel = "app"
