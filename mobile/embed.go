//go:build mobile

// embed.go - 移动端资源嵌入声明
//
// 此文件仅在使用 -tags mobile 构建时编译。
// 构建前需要把根目录的资源复制到此目录：
//
//	cp -r assets mobile/ && mkdir -p mobile/data && cp data/levels.yaml mobile/data/
//	go build -tags mobile ./mobile
package mobile

import "embed"

//go:embed all:assets
var assetsFS embed.FS

//go:embed data/levels.yaml
var dataFS embed.FS
