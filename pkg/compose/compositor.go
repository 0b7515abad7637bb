// Package compose implements the in-memory frame compositor for the
// frame-accurate export path: per decoded frame it blits the webcam
// thumbnail behind a rounded-corner mask and alpha-blends the smoothed
// cursor sprite, in source resolution, before the frame reaches the
// encoder.
package compose

import (
	"image"
	"math"

	xdraw "golang.org/x/image/draw"

	"github.com/user/castcut/pkg/bundle"
	"github.com/user/castcut/pkg/cursor"
	"github.com/user/castcut/pkg/export"
	"github.com/user/castcut/pkg/ports"
)

// Webcam overlay geometry: 12.5% of the frame width, anchored to the
// bottom-right corner with a fixed margin. The corner radius is 10% of
// the smaller thumbnail dimension.
const (
	webcamWidthFraction = 0.125
	webcamMarginPx      = 20
	cornerRadiusFrac    = 0.1
)

// Sprite pixels below this alpha are treated as fully transparent.
const minSpriteAlpha = 0.01

// Compositor mutates decoded frames in place, one frame at a time, in
// strict sequential order. It is not safe for concurrent use; ordering
// correctness depends on the monotonically increasing frame index.
type Compositor struct {
	meta ports.VideoMeta

	webcam     ports.FrameSource
	webcamMeta ports.VideoMeta

	timeline cursor.Timeline
	sprites  map[string]*bundle.CursorImage

	log ports.Logger

	frameIndex   uint64
	webcamDrawn  uint64
	webcamMissed uint64

	thumb *image.RGBA
}

// New creates a compositor for a primary stream with the given probed
// metadata. webcam may be nil; an empty timeline disables the cursor
// overlay.
func New(meta ports.VideoMeta, webcam ports.FrameSource, timeline cursor.Timeline, sprites map[string]*bundle.CursorImage, log ports.Logger) *Compositor {
	c := &Compositor{
		meta:     meta,
		webcam:   webcam,
		timeline: timeline,
		sprites:  sprites,
		log:      log.WithComponent("compose"),
	}
	if webcam != nil {
		c.webcamMeta = webcam.Meta()
	}
	return c
}

// FrameIndex returns the number of frames composed so far.
func (c *Compositor) FrameIndex() uint64 {
	return c.frameIndex
}

// WebcamStats returns how many webcam frames were drawn vs missed.
// Diagnostic only; a miss just means that primary frame went out
// without an overlay.
func (c *Compositor) WebcamStats() (drawn, missed uint64) {
	return c.webcamDrawn, c.webcamMissed
}

// ComposeFrame overlays the next webcam frame and the cursor position
// for this frame's timestamp onto frame, mutating it in place. The
// first frame's byte length is validated against the probed dimensions;
// a mismatch means the decoder and prober disagree and the export must
// die before a corrupt frame reaches the encoder.
func (c *Compositor) ComposeFrame(frame []byte) error {
	if c.frameIndex == 0 {
		if expected := c.meta.FrameSize(); len(frame) != expected {
			return export.DecodingErrf("frame size mismatch: got %d, expected %d (%dx%dx4)",
				len(frame), expected, c.meta.Width, c.meta.Height)
		}
	}

	// Webcam first so the cursor stays on top.
	if c.webcam != nil {
		c.overlayWebcam(frame)
	}

	if len(c.timeline) > 0 {
		frameTimeMs := float64(c.frameIndex) / c.meta.FPS * 1000.0
		if sample := c.timeline.At(frameTimeMs); sample != nil {
			c.drawCursor(frame, sample)
		}
	}

	c.frameIndex++
	return nil
}

// overlayWebcam pulls the next webcam frame and blits it scaled into
// the bottom-right corner. When the webcam stream is exhausted or
// errors, the primary frame is emitted without an overlay; frames are
// never buffered or duplicated to compensate for rate mismatches.
func (c *Compositor) overlayWebcam(frame []byte) {
	webcamFrame, err := c.webcam.ReadFrame()
	if err != nil {
		c.webcamMissed++
		if c.webcamMissed == 1 {
			c.log.Warn("Error reading webcam frame at index %d: %s", c.frameIndex, err)
		}
		return
	}
	if webcamFrame == nil {
		c.webcamMissed++
		if c.webcamMissed == 1 {
			c.log.Debug("Webcam stream ended at frame %d", c.frameIndex)
		}
		return
	}

	thumb := c.scaleWebcam(webcamFrame)
	c.blitRounded(frame, thumb)
	c.webcamDrawn++
}

// scaleWebcam scales the raw webcam frame to the thumbnail size with
// nearest-neighbor sampling, reusing the thumbnail buffer.
func (c *Compositor) scaleWebcam(webcamFrame []byte) *image.RGBA {
	scaledWidth := int(math.Round(float64(c.meta.Width) * webcamWidthFraction))
	scaledHeight := scaledWidth * c.webcamMeta.Height / c.webcamMeta.Width

	if c.thumb == nil || c.thumb.Rect.Dx() != scaledWidth || c.thumb.Rect.Dy() != scaledHeight {
		c.thumb = image.NewRGBA(image.Rect(0, 0, scaledWidth, scaledHeight))
	}

	src := &image.RGBA{
		Pix:    webcamFrame,
		Stride: c.webcamMeta.Width * 4,
		Rect:   image.Rect(0, 0, c.webcamMeta.Width, c.webcamMeta.Height),
	}
	xdraw.NearestNeighbor.Scale(c.thumb, c.thumb.Rect, src, src.Rect, xdraw.Src, nil)
	return c.thumb
}

// blitRounded copies thumbnail pixels into the frame's bottom-right
// corner at full opacity, skipping pixels outside the rounded-rect
// mask. Masked-out pixels stay untouched, which reads as transparency.
func (c *Compositor) blitRounded(frame []byte, thumb *image.RGBA) {
	w := thumb.Rect.Dx()
	h := thumb.Rect.Dy()
	destX := c.meta.Width - w - webcamMarginPx
	destY := c.meta.Height - h - webcamMarginPx
	radius := int(float64(min(w, h)) * cornerRadiusFrac)

	for dy := 0; dy < h; dy++ {
		fy := destY + dy
		if fy < 0 || fy >= c.meta.Height {
			continue
		}
		for dx := 0; dx < w; dx++ {
			fx := destX + dx
			if fx < 0 || fx >= c.meta.Width {
				continue
			}
			if !insideRoundedRect(dx, dy, w, h, radius) {
				continue
			}

			srcIdx := thumb.PixOffset(dx, dy)
			dstIdx := (fy*c.meta.Width + fx) * 4

			frame[dstIdx] = thumb.Pix[srcIdx]
			frame[dstIdx+1] = thumb.Pix[srcIdx+1]
			frame[dstIdx+2] = thumb.Pix[srcIdx+2]
			frame[dstIdx+3] = 255
		}
	}
}

// drawCursor alpha-blends the sprite for the sample's cursor onto the
// frame. A missing sprite is a silent skip, not an error. Destination
// alpha is left unmodified; pixels landing outside the frame are
// dropped without wrapping or clamping.
func (c *Compositor) drawCursor(frame []byte, sample *cursor.Sample) {
	sprite, ok := c.sprites[sample.CursorID]
	if !ok {
		return
	}

	originX := int(sample.X) - sprite.HotspotX
	originY := int(sample.Y) - sprite.HotspotY

	for sy := 0; sy < sprite.Height; sy++ {
		fy := originY + sy
		if fy < 0 || fy >= c.meta.Height {
			continue
		}
		for sx := 0; sx < sprite.Width; sx++ {
			fx := originX + sx
			if fx < 0 || fx >= c.meta.Width {
				continue
			}

			srcIdx := (sy*sprite.Width + sx) * 4
			dstIdx := (fy*c.meta.Width + fx) * 4

			alpha := float64(sprite.Pix[srcIdx+3]) / 255.0
			if alpha < minSpriteAlpha {
				continue
			}

			blend(frame, dstIdx, sprite.Pix, srcIdx, alpha)
		}
	}
}

// blend mixes one source pixel over one destination pixel:
// out = src*a + dst*(1-a), per RGB channel.
func blend(dst []byte, dstIdx int, src []byte, srcIdx int, alpha float64) {
	inv := 1.0 - alpha
	dst[dstIdx] = clampByte(float64(src[srcIdx])*alpha + float64(dst[dstIdx])*inv)
	dst[dstIdx+1] = clampByte(float64(src[srcIdx+1])*alpha + float64(dst[dstIdx+1])*inv)
	dst[dstIdx+2] = clampByte(float64(src[srcIdx+2])*alpha + float64(dst[dstIdx+2])*inv)
}

func clampByte(v float64) byte {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return byte(v)
}
