package input

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name  string
		event sdl.Event
		want  Event
		ok    bool
		quits bool
	}{
		{"quit", &sdl.QuitEvent{Type: sdl.QUIT}, Event{Type: EventQuit}, true, true},
		{"escape", &sdl.KeyboardEvent{Type: sdl.KEYDOWN, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_ESCAPE}},
			Event{Type: EventKeyDown, Key: sdl.SCANCODE_ESCAPE}, true, true},
		{"other key", &sdl.KeyboardEvent{Type: sdl.KEYDOWN, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_F12}},
			Event{Type: EventKeyDown, Key: sdl.SCANCODE_F12}, true, false},
		{"key repeat", &sdl.KeyboardEvent{Type: sdl.KEYDOWN, Repeat: 1, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_ESCAPE}},
			Event{}, false, false},
		{"key up", &sdl.KeyboardEvent{Type: sdl.KEYUP, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_ESCAPE}},
			Event{}, false, false},
		{"resize", &sdl.WindowEvent{Type: sdl.WINDOWEVENT, Event: sdl.WINDOWEVENT_SIZE_CHANGED, Data1: 800, Data2: 600},
			Event{Type: EventWindowResize, Width: 800, Height: 600}, true, false},
		{"mouse", &sdl.MouseMotionEvent{Type: sdl.MOUSEMOTION}, Event{}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := translate(tt.event)
			if ok != tt.ok || got != tt.want {
				t.Errorf("translate() = %+v, %v; want %+v, %v", got, ok, tt.want, tt.ok)
			}
			if got.quits() != tt.quits {
				t.Errorf("quits() = %v, want %v", got.quits(), tt.quits)
			}
		})
	}
}

func TestResized(t *testing.T) {
	in := New()
	in.events = append(in.events,
		Event{Type: EventWindowResize, Width: 640, Height: 480},
		Event{Type: EventKeyDown, Key: sdl.SCANCODE_A},
		Event{Type: EventWindowResize, Width: 1024, Height: 768},
	)

	w, h, ok := in.Resized()
	if !ok || w != 1024 || h != 768 {
		t.Errorf("Resized() = %d, %d, %v", w, h, ok)
	}
	if !in.IsKeyPressed(sdl.SCANCODE_A) || in.IsKeyPressed(sdl.SCANCODE_B) {
		t.Error("IsKeyPressed mismatch")
	}
}
