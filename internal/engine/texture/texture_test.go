package texture

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/tidemirror/internal/assets"
	"github.com/Faultbox/tidemirror/internal/engine/scene"
	"github.com/Faultbox/tidemirror/pkg/math"
)

func checker(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			v := uint8(0)
			if (x+y)%2 == 0 {
				v = 255
			}
			img.SetRGBA(x, y, color.RGBA{v, v, v, 255})
		}
	}
	return img
}

func TestSamplerTexelCenters(t *testing.T) {
	s := NewSampler(checker(2), scene.Repeat)

	assert.InDelta(t, 1, s.Sample(math.Vec2{0.25, 0.25})[0], 1e-6)
	assert.InDelta(t, 0, s.Sample(math.Vec2{0.75, 0.25})[0], 1e-6)
	assert.InDelta(t, 1, s.Sample(math.Vec2{0.75, 0.25})[3], 1e-6)
}

func TestSamplerBilinear(t *testing.T) {
	s := NewSampler(checker(2), scene.Repeat)

	// The centre of a 2×2 checker averages all four texels.
	assert.InDelta(t, 0.5, s.Sample(math.Vec2{0.5, 0.5})[0], 1e-6)
}

func TestSamplerRepeat(t *testing.T) {
	s := NewSampler(ProceduralNormalMap(16, 7), scene.Repeat)

	for _, uv := range []math.Vec2{{0.1, 0.3}, {0.7, 0.9}, {0.02, 0.98}} {
		want := s.Sample(uv)
		for _, shift := range []math.Vec2{{1, 0}, {0, 1}, {-2, 3}} {
			got := s.Sample(uv.Add(shift))
			for i := range want {
				assert.InDelta(t, want[i], got[i], 1e-4, "uv %v shift %v", uv, shift)
			}
		}
	}
}

func TestSamplerClamp(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{0, 0, 0, 255})
	img.SetRGBA(1, 0, color.RGBA{255, 0, 0, 255})
	s := NewSampler(img, scene.ClampToEdge)

	assert.InDelta(t, 0, s.Sample(math.Vec2{-3, 0.5})[0], 1e-6)
	assert.InDelta(t, 1, s.Sample(math.Vec2{4, 0.5})[0], 1e-6)
}

func TestProceduralNormalMapTiles(t *testing.T) {
	const size = 32
	img := ProceduralNormalMap(size, 42)
	require.Equal(t, image.Rect(0, 0, size, size), img.Bounds())

	// Opposite edges are neighbours once the tile repeats.
	var edge, inner float64
	for i := 0; i < size; i++ {
		edge += channelDiff(img.RGBAAt(0, i), img.RGBAAt(size-1, i))
		inner += channelDiff(img.RGBAAt(size/2, i), img.RGBAAt(size/2-1, i))
	}
	assert.Less(t, edge, 3*inner+float64(size)*8)
}

func TestProceduralNormalMapPointsUp(t *testing.T) {
	img := ProceduralNormalMap(16, 1)
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			assert.Greater(t, img.RGBAAt(x, y).B, uint8(127))
		}
	}
}

func TestFlatNormalMap(t *testing.T) {
	c := FlatNormalMap().RGBAAt(0, 0)
	assert.Equal(t, color.RGBA{128, 128, 255, 255}, c)
}

func channelDiff(a, b color.RGBA) float64 {
	d := func(x, y uint8) float64 {
		if x > y {
			return float64(x - y)
		}
		return float64(y - x)
	}
	return d(a.R, b.R) + d(a.G, b.G) + d(a.B, b.B)
}

func TestDecodePNG(t *testing.T) {
	src := checker(4)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))

	img, err := Decode("normals.png", buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, src.Pix, img.Pix)
}

func TestDecodeGarbage(t *testing.T) {
	_, err := Decode("normals.png", []byte("not an image"))
	assert.Error(t, err)
}

func TestDecodeTGAUncompressed(t *testing.T) {
	// 2×1, 24 bpp, bottom-up.
	data := tgaHeader(TGATypeUncompressed, 2, 1, 24, 0)
	data = append(data, 0, 0, 255 /* red */, 255, 0, 0 /* blue */)

	img, err := Decode("map.TGA", data)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, img.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{0, 0, 255, 255}, img.RGBAAt(1, 0))
}

func TestDecodeTGARLE(t *testing.T) {
	// 2×2, 32 bpp, top-down: one run packet of 3 greens, one raw white.
	data := tgaHeader(TGATypeRLE, 2, 2, 32, 0x20)
	data = append(data, 0x82, 0, 255, 0, 200)
	data = append(data, 0x00, 255, 255, 255, 255)

	img, err := DecodeTGA(data)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{0, 255, 0, 200}, img.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{0, 255, 0, 200}, img.RGBAAt(0, 1))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, img.RGBAAt(1, 1))
}

func TestDecodeTGABottomUp(t *testing.T) {
	data := tgaHeader(TGATypeUncompressed, 1, 2, 24, 0)
	data = append(data, 0, 0, 255, 0, 255, 0)

	img, err := DecodeTGA(data)
	require.NoError(t, err)
	// First stored row is the bottom one.
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, img.RGBAAt(0, 1))
	assert.Equal(t, color.RGBA{0, 255, 0, 255}, img.RGBAAt(0, 0))
}

func TestDecodeTGAErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"short", []byte{0, 0, 2}},
		{"colormap", withColorMap(tgaHeader(TGATypeUncompressed, 1, 1, 24, 0))},
		{"type", tgaHeader(3, 1, 1, 24, 0)},
		{"depth", tgaHeader(TGATypeUncompressed, 1, 1, 16, 0)},
		{"truncated", tgaHeader(TGATypeUncompressed, 2, 2, 24, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeTGA(tt.data)
			assert.Error(t, err)
		})
	}
}

func tgaHeader(kind byte, w, h int, bpp, desc byte) []byte {
	hdr := make([]byte, 18)
	hdr[2] = kind
	hdr[12] = byte(w)
	hdr[13] = byte(w >> 8)
	hdr[14] = byte(h)
	hdr[15] = byte(h >> 8)
	hdr[16] = bpp
	hdr[17] = desc
	return hdr
}

func withColorMap(hdr []byte) []byte {
	hdr[1] = 1
	return hdr
}

func TestPowerOfTwo(t *testing.T) {
	pot := checker(8)
	assert.Same(t, pot, PowerOfTwo(pot))

	npot := image.NewRGBA(image.Rect(0, 0, 5, 12))
	out := PowerOfTwo(npot)
	assert.Equal(t, image.Rect(0, 0, 8, 16), out.Bounds())
}

func TestToRGBAOffsetOrigin(t *testing.T) {
	src := image.NewNRGBA(image.Rect(3, 3, 5, 5))
	src.SetNRGBA(3, 3, color.NRGBA{10, 20, 30, 255})
	out := ToRGBA(src)
	assert.Equal(t, image.Rect(0, 0, 2, 2), out.Bounds())
	assert.Equal(t, color.RGBA{10, 20, 30, 255}, out.RGBAAt(0, 0))
}

func TestLoadNormalMap(t *testing.T) {
	dir := t.TempDir()
	src := image.NewRGBA(image.Rect(0, 0, 3, 5))
	for i := range src.Pix {
		src.Pix[i] = 200
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "waternormals.png"), buf.Bytes(), 0644))

	m := assets.NewManager()
	defer m.Close()
	require.NoError(t, m.AddDir(dir))

	s, err := LoadNormalMap(m, "waternormals.png")
	require.NoError(t, err)
	w, h := s.Bounds()
	assert.Equal(t, 4, w)
	assert.Equal(t, 8, h)
	assert.Equal(t, scene.Repeat, s.Wrap())

	_, err = LoadNormalMap(m, "waternormals.png")
	require.NoError(t, err)
	hits, _ := m.CacheStats()
	assert.Equal(t, 1, hits, "second load should come from the cache")

	_, err = LoadNormalMap(m, "missing.png")
	assert.ErrorIs(t, err, assets.ErrNotFound)
}

func TestLoadNormalMapFile(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, checker(4)))
	path := filepath.Join(dir, "ripples.png")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))

	m := assets.NewManager()
	defer m.Close()
	s, err := LoadNormalMapFile(m, path)
	require.NoError(t, err)
	w, h := s.Bounds()
	assert.Equal(t, 4, w)
	assert.Equal(t, 4, h)

	_, err = LoadNormalMapFile(m, filepath.Join(dir, "nested", "missing.png"))
	assert.Error(t, err)
}
