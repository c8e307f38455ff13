// check_embed 检查 levels.yaml 引用的所有图片都存在且能被解码
//
// 用法：
//
//	go run ./cmd/check_embed            # 在仓库根目录运行
//	go run ./cmd/check_embed -root ../x
package main

import (
	"crypto/md5"
	"flag"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path"

	"github.com/decker502/arcade/pkg/config"
	"github.com/decker502/arcade/pkg/embedded"
	"github.com/decker502/arcade/pkg/entities"
)

var root = flag.String("root", ".", "包含 assets/ 和 data/ 的目录")

type spriteRef struct {
	name   string
	frames int
}

func main() {
	flag.Parse()

	fsys := os.DirFS(*root)
	embedded.Init(fsys, fsys)

	data, err := embedded.ReadFile(config.LevelsFile)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	cfg, err := config.ParseLevelsConfig(data, config.LevelsFile)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%s MD5: %x (%d levels)\n", config.LevelsFile, md5.Sum(data), len(cfg.Levels))

	refs := []spriteRef{{cfg.MenuTitleSprite, 1}}
	for _, l := range cfg.Levels {
		refs = append(refs, spriteRef{l.TitleSprite, 1})
		if l.Drifters > 0 {
			refs = append(refs, spriteRef{l.DrifterSprite, entities.DrifterFrames})
		}
	}

	failed := 0
	seen := make(map[string]bool)
	for _, ref := range refs {
		if seen[ref.name] {
			continue
		}
		seen[ref.name] = true
		if err := checkSprite(ref); err != nil {
			fmt.Printf("❌ %s: %v\n", ref.name, err)
			failed++
			continue
		}
		fmt.Printf("✅ %s\n", ref.name)
	}

	// 未被任何关卡引用的图片只提示，不算失败
	files, err := embedded.Glob("assets/sprites/*.png")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	for _, f := range files {
		if !seen[path.Base(f)] {
			fmt.Printf("⚠️  %s is not referenced by %s\n", f, config.LevelsFile)
		}
	}

	if failed > 0 {
		fmt.Printf("%d sprite(s) failed\n", failed)
		os.Exit(1)
	}
}

// checkSprite 图片必须存在、能解码，且宽度能被帧数整除
func checkSprite(ref spriteRef) error {
	p := path.Join("assets/sprites", ref.name)
	if !embedded.Exists(p) {
		return fmt.Errorf("%s not found", p)
	}
	f, err := embedded.Open(p)
	if err != nil {
		return err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return fmt.Errorf("decode %s: %w", p, err)
	}
	if cfg.Width%ref.frames != 0 {
		return fmt.Errorf("width %d is not a multiple of %d frames", cfg.Width, ref.frames)
	}
	return nil
}
