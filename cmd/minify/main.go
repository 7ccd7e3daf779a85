// Command minify writes minified copies of the quiz templates and static
// assets to dist/, which the server prefers in production.
package main

import (
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
)

var mediaTypes = map[string]string{
	".html": "text/html",
	".css":  "text/css",
	".js":   "application/javascript",
}

func main() {
	var (
		inputFile  = flag.String("input", "", "Input file path (single-file mode)")
		outputFile = flag.String("output", "", "Output file path (single-file mode)")
		outDir     = flag.String("dist", "dist", "Output directory when minifying the whole site")
	)
	flag.Parse()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	m := newMinifier()

	if *inputFile != "" || *outputFile != "" {
		if *inputFile == "" || *outputFile == "" {
			log.Fatal().Msg("Usage: go run ./cmd/minify -input=<file> -output=<file>")
		}
		if _, err := minifyFile(m, *inputFile, *outputFile); err != nil {
			log.Fatal().Err(err).Str("input", *inputFile).Msg("Failed to minify file")
		}
		fmt.Printf("Successfully minified %s -> %s\n", *inputFile, *outputFile)
		return
	}

	for _, dir := range []string{"templates", "static"} {
		if err := minifyTree(m, dir, *outDir); err != nil {
			log.Fatal().Err(err).Str("dir", dir).Msg("Error minifying assets")
		}
	}
	fmt.Printf("Minification complete, files are in %s/\n", *outDir)
}

func newMinifier() *minify.M {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.Add("text/html", &html.Minifier{
		TemplateDelims:   html.GoTemplateDelims,
		KeepDocumentTags: true,
		KeepEndTags:      true,
		KeepQuotes:       true,
	})
	m.AddFunc("application/javascript", js.Minify)
	return m
}

// minifyTree minifies every supported file under srcDir into outDir/srcDir.
// Other files are copied unchanged.
func minifyTree(m *minify.M, srcDir, outDir string) error {
	return filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		dst := filepath.Join(outDir, path)
		if _, ok := mediaTypes[strings.ToLower(filepath.Ext(path))]; !ok {
			return copyFile(path, dst)
		}
		ratio, err := minifyFile(m, path, dst)
		if err != nil {
			return err
		}
		log.Info().Str("file", path).Float64("reduction_pct", ratio).Msg("Minified")
		return nil
	})
}

// minifyFile minifies srcPath into dstPath, picking the minifier from the
// file extension, and returns the size reduction in percent.
func minifyFile(m *minify.M, srcPath, dstPath string) (float64, error) {
	mediaType, ok := mediaTypes[strings.ToLower(filepath.Ext(srcPath))]
	if !ok {
		return 0, fmt.Errorf("unsupported file type: %s (supported: css, js, html)", srcPath)
	}
	src, err := os.ReadFile(srcPath)
	if err != nil {
		return 0, err
	}
	minified, err := m.Bytes(mediaType, src)
	if err != nil {
		return 0, fmt.Errorf("minify %s: %w", srcPath, err)
	}
	if err := os.MkdirAll(filepath.Dir(dstPath), 0755); err != nil {
		return 0, err
	}
	if err := os.WriteFile(dstPath, minified, 0644); err != nil {
		return 0, err
	}
	if len(src) == 0 {
		return 0, nil
	}
	return float64(len(src)-len(minified)) / float64(len(src)) * 100, nil
}

func copyFile(srcPath, dstPath string) error {
	data, err := os.ReadFile(srcPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dstPath), 0755); err != nil {
		return err
	}
	return os.WriteFile(dstPath, data, 0644)
}
