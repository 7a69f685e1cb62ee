// Command optimize regenerates missing display and thumbnail variants for
// images already stored under the local uploads tree. Files whose variants
// both exist are skipped, so re-running is a cheap no-op.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"velarias-backend/internal/imgproc"
)

var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

func main() {
	uploadsDir := flag.String("uploads", "./uploads", "uploads directory root")
	flag.Parse()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	root := filepath.Join(*uploadsDir, "proyectos")
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Println("no uploads directory found, nothing to process")
			return
		}
		log.Fatal().Err(err).Str("dir", root).Msg("reading uploads directory")
	}

	var processed, skipped, failed int
	var originalBytes, optimizedBytes int64

	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		categoryDir := filepath.Join(root, e.Name())
		files, err := os.ReadDir(categoryDir)
		if err != nil {
			log.Error().Err(err).Str("dir", categoryDir).Msg("reading category directory")
			continue
		}
		for _, f := range files {
			if f.IsDir() || !imageExtensions[strings.ToLower(filepath.Ext(f.Name()))] {
				continue
			}
			res, err := processFile(filepath.Join(categoryDir, f.Name()))
			if err != nil {
				failed++
				log.Error().Err(err).Str("file", f.Name()).Msg("processing failed")
				continue
			}
			if res.skipped {
				skipped++
				continue
			}
			processed++
			originalBytes += res.originalSize
			optimizedBytes += res.optimizedSize
		}
	}

	fmt.Printf("processed: %d, skipped: %d, failed: %d\n", processed, skipped, failed)
	if processed > 0 && originalBytes > 0 {
		fmt.Printf("original:  %.2f MB\n", float64(originalBytes)/1024/1024)
		fmt.Printf("optimized: %.2f MB (%.1f%% savings)\n",
			float64(optimizedBytes)/1024/1024,
			(1-float64(optimizedBytes)/float64(originalBytes))*100)
	}
}

type result struct {
	skipped       bool
	originalSize  int64
	optimizedSize int64
}

// processFile writes the optimized and thumbnail variants next to the
// original, unless both already exist.
func processFile(path string) (*result, error) {
	dir := filepath.Dir(path)
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	optimizedPath := filepath.Join(dir, "optimized", base+".webp")
	thumbPath := filepath.Join(dir, "thumbnails", base+"-thumb.webp")

	if exists(optimizedPath) && exists(thumbPath) {
		return &result{skipped: true}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	v, err := imgproc.Render(data)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(optimizedPath), 0o755); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(thumbPath), 0o755); err != nil {
		return nil, err
	}
	if err := os.WriteFile(optimizedPath, v.Display, 0o644); err != nil {
		return nil, err
	}
	if err := os.WriteFile(thumbPath, v.Thumbnail, 0o644); err != nil {
		return nil, err
	}

	log.Info().
		Str("file", filepath.Base(path)).
		Int64("original", int64(len(data))).
		Int("optimized", len(v.Display)).
		Int("thumbnail", len(v.Thumbnail)).
		Int("quality", v.DisplayQuality).
		Msg("optimized")
	return &result{originalSize: int64(len(data)), optimizedSize: int64(len(v.Display))}, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
