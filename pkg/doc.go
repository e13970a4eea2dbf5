// Package pkg provides the libraries behind spritekit.
//
// # Overview
//
// Spritekit turns a directory of PNG icons into two build artifacts: a sprite
// atlas (one image plus a manifest locating every icon) and a Rust enum with
// one variant per icon. The pkg directory is organized as:
//
//  1. [atlas] - Grid layout, compositing and the placement manifest
//  2. [codegen] - A small tree of Rust items that render themselves as source
//  3. [source] - Discovery and decoding of the input PNGs
//  4. [pipeline] - Orchestration with caching, used by the CLI
//  5. [cache], [config], [errors], [observability] - Supporting infrastructure
//
// # Architecture
//
//	icon directory
//	      ↓
//	 [source] (discover *.png, sorted by name)
//	      ↓                         ↓
//	 [atlas] Pack              [codegen] SimpleEnum
//	      ↓                         ↓
//	 atlas.png + manifest      icon.rs
//
// # Quick Start
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, err := runner.BuildAtlas(ctx, pipeline.AtlasOptions{Dir: "icons"})
//	if err != nil {
//	    return err
//	}
//	result.WriteFiles("atlas", atlas.FormatCSV)
//
//	enum, err := runner.GenerateEnum(ctx, pipeline.EnumOptions{Dir: "icons"})
//	if err != nil {
//	    return err
//	}
//	enum.WriteFile("src/icon.rs")
//
// # Testing
//
//	go test ./...
//
// [atlas]: https://pkg.go.dev/github.com/matzehuels/spritekit/pkg/atlas
// [codegen]: https://pkg.go.dev/github.com/matzehuels/spritekit/pkg/codegen
// [source]: https://pkg.go.dev/github.com/matzehuels/spritekit/pkg/source
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/spritekit/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/spritekit/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/spritekit/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/spritekit/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/spritekit/pkg/observability
package pkg
