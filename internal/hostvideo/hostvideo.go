// Package hostvideo presents completed frames through an SDL2 window,
// upscaling the fixed 160x144 framebuffer with golang.org/x/image/draw
// rather than relying on the renderer's nearest-neighbor texture scale.
package hostvideo

import (
	"fmt"
	"image"

	"github.com/veandco/go-sdl2/sdl"
	"golang.org/x/image/draw"

	"github.com/kestrel-emu/gbcore/pkg/log"
)

const (
	screenWidth  = 160
	screenHeight = 144
)

// Sink is a host window presenting the PPU's framebuffer.
type Sink struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture

	scale int
	src   *image.RGBA
	dst   *image.RGBA

	log log.Logger
}

// New creates and shows an SDL2 window scale times the native
// resolution. Callers must call Close when done.
func New(title string, scale int, logger log.Logger) (*Sink, error) {
	if logger == nil {
		logger = log.Null()
	}
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("hostvideo: sdl init: %w", err)
	}

	w, h := screenWidth*scale, screenHeight*scale
	window, err := sdl.CreateWindow(title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED, int32(w), int32(h), sdl.WINDOW_SHOWN)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("hostvideo: create window: %w", err)
	}
	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("hostvideo: create renderer: %w", err)
	}
	texture, err := renderer.CreateTexture(sdl.PIXELFORMAT_RGBA8888, sdl.TEXTUREACCESS_STREAMING, int32(w), int32(h))
	if err != nil {
		renderer.Destroy()
		window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("hostvideo: create texture: %w", err)
	}

	return &Sink{
		window:   window,
		renderer: renderer,
		texture:  texture,
		scale:    scale,
		src:      image.NewRGBA(image.Rect(0, 0, screenWidth, screenHeight)),
		dst:      image.NewRGBA(image.Rect(0, 0, w, h)),
		log:      logger,
	}, nil
}

// Present implements ppu.VideoSink: it converts the ARGB8888 frame,
// upscales it, and blits it to the window.
func (s *Sink) Present(frame *[screenWidth * screenHeight]uint32) {
	for i, px := range frame {
		s.src.Pix[i*4+0] = uint8(px >> 16) // R
		s.src.Pix[i*4+1] = uint8(px >> 8)  // G
		s.src.Pix[i*4+2] = uint8(px)       // B
		s.src.Pix[i*4+3] = uint8(px >> 24) // A
	}

	draw.NearestNeighbor.Scale(s.dst, s.dst.Bounds(), s.src, s.src.Bounds(), draw.Src, nil)

	if err := s.texture.Update(nil, s.dst.Pix, s.dst.Stride); err != nil {
		s.log.Errorf("hostvideo: texture update: %v", err)
		return
	}
	s.renderer.Copy(s.texture, nil, nil)
	s.renderer.Present()
}

// Close tears down the window and SDL2 subsystem.
func (s *Sink) Close() {
	s.texture.Destroy()
	s.renderer.Destroy()
	s.window.Destroy()
	sdl.Quit()
}
