// Package md2typst converts Markdown documents to PDF through Typst.
//
// # Quick Start
//
// Create a converter and convert markdown:
//
//	conv, err := md2typst.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, md2typst.Input{
//	    Markdown: "# Hello\n\nWorld",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("output.pdf", result.PDF, 0644)
//
// The result carries the PDF bytes (result.PDF) and the composed Typst
// source (result.Typst). Set Input.TypstOnly to skip compilation, which is
// useful when the typst binary is not installed.
//
// # Conversion Pipeline
//
//  1. Front matter split (title, author, authors, lang, toc)
//  2. Token normalization (inline [toc] markers, line endings)
//  3. Markdown parsing via Goldmark (GFM, footnotes, math, alerts, ...)
//  4. Typst rendering of the document tree
//  5. Composition with a style template defining #article(...)
//  6. Compilation by the typst CLI
//
// # Configuration
//
//	conv, err := md2typst.NewConverter(
//	    md2typst.WithTimeout(2 * time.Minute),
//	    md2typst.WithStyle("classic-editorial"),
//	    md2typst.WithAssetPath("/path/to/custom/assets"),
//	    md2typst.WithFontPaths("/path/to/fonts"),
//	)
//
// Per-conversion options are passed via Input:
//
//	result, err := conv.Convert(ctx, md2typst.Input{
//	    Markdown:  content,
//	    SourceDir: "/path/to/markdown", // for relative image paths
//	    Title:     "Report",
//	    Lang:      "fr",
//	})
//
// # Parallel Processing
//
// ConverterPool bounds the number of concurrent typst processes:
//
//	pool := md2typst.NewConverterPool(md2typst.ResolvePoolSize(0))
//	defer pool.Close()
//
//	conv, err := pool.Acquire()
//	if err != nil {
//	    return err
//	}
//	defer pool.Release(conv)
//
// # Custom Styles
//
// A style is a Typst file defining
//
//	#let article(title: none, authors: (), lang: "en", toc: false, body) = { ... }
//
// Styles are looked up by name in {asset-path}/styles/{name}.typ, then among
// the built-in styles (modern-tech, classic-editorial).
package md2typst
