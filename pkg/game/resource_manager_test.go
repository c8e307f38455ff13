package game

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
)

// encodeTestPNG 生成指定尺寸的纯色 PNG
func encodeTestPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

// mapReader 返回基于内存 map 的 ReadFileFunc，并统计读取次数
func mapReader(files map[string][]byte, reads *int) ReadFileFunc {
	return func(p string) ([]byte, error) {
		*reads++
		data, ok := files[p]
		if !ok {
			return nil, errors.New("file not found")
		}
		return data, nil
	}
}

func TestLoadSpriteCaches(t *testing.T) {
	reads := 0
	rm := NewResourceManager(mapReader(map[string][]byte{
		"assets/sprites/title.png": encodeTestPNG(t, 32, 8),
	}, &reads))

	first, err := rm.LoadSprite("title.png")
	if err != nil {
		t.Fatalf("LoadSprite error: %v", err)
	}
	second, err := rm.LoadSprite("title.png")
	if err != nil {
		t.Fatalf("LoadSprite error: %v", err)
	}

	if first != second {
		t.Error("Expected cached image on second load")
	}
	if reads != 1 {
		t.Errorf("Expected 1 read, got %d", reads)
	}
	if w, h := first.Bounds().Dx(), first.Bounds().Dy(); w != 32 || h != 8 {
		t.Errorf("Unexpected size %dx%d", w, h)
	}
}

func TestLoadSpriteErrors(t *testing.T) {
	reads := 0
	rm := NewResourceManager(mapReader(map[string][]byte{
		"assets/sprites/bad.png": []byte("not a png"),
	}, &reads))

	if _, err := rm.LoadSprite("missing.png"); err == nil {
		t.Error("Expected error for missing sprite")
	}
	if _, err := rm.LoadSprite("bad.png"); err == nil {
		t.Error("Expected error for undecodable sprite")
	}

	if _, err := NewResourceManager(nil).LoadSprite("x.png"); err == nil {
		t.Error("Expected error without a reader")
	}
}

func TestGetSpriteFrameFallbackAndFrames(t *testing.T) {
	reads := 0
	rm := NewResourceManager(mapReader(map[string][]byte{
		"assets/sprites/strip.png": encodeTestPNG(t, 40, 10),
	}, &reads))

	// 缺失资源使用占位图
	if img := rm.GetSpriteFrame("missing.png", 0); img == nil {
		t.Fatal("Expected placeholder image")
	}

	rm.RegisterSheet("strip.png", 4)
	frame := rm.GetSpriteFrame("strip.png", 2)
	b := frame.Bounds()
	if b.Dx() != 10 || b.Min.X != 20 {
		t.Errorf("frame 2 bounds = %v, want x in [20,30)", b)
	}

	// 超出范围的帧号取模
	wrapped := rm.GetSpriteFrame("strip.png", 6).Bounds()
	if wrapped.Min.X != 20 {
		t.Errorf("frame 6 should wrap to frame 2, got %v", wrapped)
	}
}

func TestLoadFont(t *testing.T) {
	rm := NewResourceManager(nil)

	face, err := rm.LoadFont(FontMain, 25)
	if err != nil {
		t.Fatalf("LoadFont error: %v", err)
	}
	if face.Size != 25 {
		t.Errorf("face size = %f, want 25", face.Size)
	}

	again, _ := rm.LoadFont(FontMain, 25)
	if again != face {
		t.Error("Expected cached face")
	}

	if _, err := rm.LoadFont("comic", 12); err == nil {
		t.Error("Expected error for unknown font")
	}
}
