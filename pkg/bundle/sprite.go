package bundle

import (
	"bytes"
	"image"
	"image/draw"
	_ "image/png"

	"github.com/user/castcut/pkg/export"
	"github.com/user/castcut/pkg/ports"
)

// CursorImage is a decoded RGBA cursor sprite plus its hotspot: the
// pixel offset within the sprite that corresponds to the logical
// pointer position. Loaded once per export, read-only thereafter.
type CursorImage struct {
	Width    int
	Height   int
	Pix      []byte
	HotspotX int
	HotspotY int
}

// loadSprite decodes one sprite file into tightly packed RGBA bytes.
// Sources without an alpha channel come out fully opaque.
func loadSprite(fs ports.FileSystem, spritePath string, info CursorInfo) (*CursorImage, error) {
	data, err := fs.ReadFile(spritePath)
	if err != nil {
		return nil, err
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, export.DecodingErrf("sprite decode error: %s", err)
	}

	bounds := src.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), src, bounds.Min, draw.Src)

	return &CursorImage{
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
		Pix:      rgba.Pix,
		HotspotX: int(info.HotspotX),
		HotspotY: int(info.HotspotY),
	}, nil
}
