package game

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/png" // Register PNG decoder
	"log"
	"path"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// FontMain is the resource name of the main UI font.
const FontMain = "main"

// spriteDir is where sprite sheets live inside the assets tree.
const spriteDir = "assets/sprites"

// ReadFileFunc reads a resource by path. In the game it is embedded.ReadFile.
type ReadFileFunc func(path string) ([]byte, error)

// ResourceManager is responsible for centralized management of game resources.
// It provides loading and caching mechanisms for sprite sheets and font faces,
// ensuring that resources are loaded only once and reused throughout the game.
//
// Sprite sheets are horizontal strips of equally sized frames. A sheet has one
// frame unless RegisterSheet says otherwise.
//
// Thread Safety Note:
// This implementation is NOT thread-safe. Resources are resolved by the render
// system, which runs on the main goroutine inside Draw.
type ResourceManager struct {
	readFile      ReadFileFunc
	imageCache    map[string]*ebiten.Image    // Cache for loaded sheets: name -> Image
	frameCounts   map[string]int              // Frames per sheet, default 1
	fontSource    *text.GoTextFaceSource      // Source for FontMain
	fontFaceCache map[string]*text.GoTextFace // Cache for faces: "name:size" -> face
}

// NewResourceManager creates and initializes a new ResourceManager instance.
//
// Parameters:
//   - readFile: The function used to read sprite files (e.g., embedded.ReadFile).
func NewResourceManager(readFile ReadFileFunc) *ResourceManager {
	return &ResourceManager{
		readFile:      readFile,
		imageCache:    make(map[string]*ebiten.Image),
		frameCounts:   make(map[string]int),
		fontFaceCache: make(map[string]*text.GoTextFace),
	}
}

// RegisterSheet declares how many frames a sprite sheet contains.
func (rm *ResourceManager) RegisterSheet(name string, frames int) {
	if frames < 1 {
		frames = 1
	}
	rm.frameCounts[name] = frames
}

// LoadSprite loads a sprite sheet by name (relative to assets/sprites) and caches it.
//
// Returns:
//   - The whole sheet image.
//   - An error if the file cannot be read or decoded.
func (rm *ResourceManager) LoadSprite(name string) (*ebiten.Image, error) {
	if cached, exists := rm.imageCache[name]; exists {
		return cached, nil
	}

	if rm.readFile == nil {
		return nil, fmt.Errorf("failed to load sprite %s: no file reader configured", name)
	}

	p := path.Join(spriteDir, name)
	data, err := rm.readFile(p)
	if err != nil {
		return nil, fmt.Errorf("failed to read sprite file %s: %w", p, err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode sprite %s: %w", p, err)
	}

	ebitenImg := ebiten.NewImageFromImage(img)
	rm.imageCache[name] = ebitenImg
	return ebitenImg, nil
}

// GetSpriteFrame returns one frame of a sprite sheet.
// A sheet that cannot be loaded is replaced by a magenta placeholder so that a
// missing asset is visible on screen instead of failing the frame.
func (rm *ResourceManager) GetSpriteFrame(name string, frame int) *ebiten.Image {
	sheet, err := rm.LoadSprite(name)
	if err != nil {
		log.Printf("[ResourceManager] %v (using placeholder)", err)
		sheet = placeholderImage()
		rm.imageCache[name] = sheet
	}

	frames := rm.frameCounts[name]
	if frames <= 1 {
		return sheet
	}

	b := sheet.Bounds()
	w := b.Dx() / frames
	frame = ((frame % frames) + frames) % frames
	rect := image.Rect(b.Min.X+frame*w, b.Min.Y, b.Min.X+(frame+1)*w, b.Max.Y)
	return sheet.SubImage(rect).(*ebiten.Image)
}

func placeholderImage() *ebiten.Image {
	img := ebiten.NewImage(64, 16)
	img.Fill(color.RGBA{R: 255, G: 0, B: 255, A: 255})
	return img
}

// LoadFont returns a text face of the given resource name and size, cached by both.
// Only FontMain (Go Regular) is bundled.
func (rm *ResourceManager) LoadFont(name string, size float64) (*text.GoTextFace, error) {
	cacheKey := fmt.Sprintf("%s:%.1f", name, size)
	if cached, exists := rm.fontFaceCache[cacheKey]; exists {
		return cached, nil
	}

	if name != FontMain {
		return nil, fmt.Errorf("unknown font %q", name)
	}

	if rm.fontSource == nil {
		source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if err != nil {
			return nil, fmt.Errorf("failed to create font source for %s: %w", name, err)
		}
		rm.fontSource = source
	}

	face := &text.GoTextFace{
		Source:    rm.fontSource,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
	rm.fontFaceCache[cacheKey] = face
	return face, nil
}
