package game

import "github.com/veandco/go-sdl2/sdl"

// Key identifies a physical key by SDL scancode.
type Key = sdl.Scancode

// Keyboard tracks which keys are held down. The runner updates it from
// the event pump before the Keydown/Keyup callbacks run, so a callback
// already sees the key it is being told about.
type Keyboard map[Key]bool

// IsPressed reports whether the given key is currently held.
func (k Keyboard) IsPressed(key Key) bool { return k[key] }

func (k Keyboard) press(key Key)   { k[key] = true }
func (k Keyboard) release(key Key) { delete(k, key) }
