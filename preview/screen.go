package main

import (
	"fmt"
	"image"

	"github.com/veandco/go-sdl2/sdl"
)

// Frame pacing of the event loop
const (
	FPS        uint32 = 30
	MsPerFrame uint32 = 1000 / FPS
)

// startScreen initializes SDL2 and opens a window of the given size
func startScreen(name string, width, height int) (*sdl.Window, *sdl.Surface, error) {
	complete := false

	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, nil, fmt.Errorf("failed to init SDL: %w", err)
	}
	defer func() {
		if !complete {
			sdl.Quit()
		}
	}()

	window, err := sdl.CreateWindow(name, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(width), int32(height), sdl.WINDOW_SHOWN)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create window: %w", err)
	}
	defer func() {
		if !complete {
			window.Destroy()
		}
	}()

	surface, err := window.GetSurface()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get window surface: %w", err)
	}

	complete = true
	return window, surface, nil
}

// stopScreen closes the window and SDL2
func stopScreen(window *sdl.Window) {
	window.Destroy()
	sdl.Quit()
}

// blit copies a rendered frame onto the window surface and presents it
func blit(window *sdl.Window, surface *sdl.Surface, img *image.RGBA) error {
	surface.FillRect(nil, 0)

	bounds := img.Bounds()
	w := min(bounds.Dx(), int(surface.W))
	h := min(bounds.Dy(), int(surface.H))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			surface.Set(x, y, img.RGBAAt(bounds.Min.X+x, bounds.Min.Y+y))
		}
	}

	if err := window.UpdateSurface(); err != nil {
		return fmt.Errorf("failed to update window: %w", err)
	}
	return nil
}

// handleInputs drains the event queue.
// It returns false once the window should close, and the hotkey of any mode key pressed.
func handleInputs() (bool, rune) {
	running := true
	var pressed rune

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			running = false
		case *sdl.KeyboardEvent:
			if e.Type != sdl.KEYDOWN {
				continue
			}
			if e.Keysym.Sym == sdl.K_ESCAPE {
				running = false
				continue
			}
			if key, ok := hotkey(e.Keysym.Sym); ok {
				pressed = key
			}
		}
	}
	return running, pressed
}

// hotkey maps a digit keycode to the rune used by render mode hotkeys
func hotkey(sym sdl.Keycode) (rune, bool) {
	if sym >= sdl.K_0 && sym <= sdl.K_9 {
		return rune('0' + (sym - sdl.K_0)), true
	}
	return 0, false
}
