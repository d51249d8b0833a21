// Package importer loads the postal code data files into the database.
package importer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"franceguessr/internal/database"
	"franceguessr/internal/model"
	"franceguessr/internal/store"
	"franceguessr/internal/worker"

	"github.com/rs/zerolog"
)

// Extension of the data files picked up by Files.
const Extension = ".csv"

var (
	replacePostalCodes = store.ReplacePostalCodes
	newPool            = worker.NewPool
)

// Files returns the data files of dir in lexical order.
func Files(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read data dir: %w", err)
	}
	var files []string
	for _, e := range entries {
		if !e.Type().IsRegular() || !strings.EqualFold(filepath.Ext(e.Name()), Extension) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	return files, nil
}

// Import parses every data file of dir on workers goroutines, then replaces
// the content of postal_codes with the result in a single transaction.
// Any malformed line aborts the import before the database is touched.
func Import(ctx context.Context, db database.DB, dir string, workers int, log zerolog.Logger) (int64, error) {
	files, err := Files(dir)
	if err != nil {
		return 0, err
	}
	if len(files) == 0 {
		log.Warn().Str("dir", dir).Msg("no data files found")
	}

	parsed := make([][]model.PostalCode, len(files))
	pool := newPool(ctx, workers)
	for i, path := range files {
		i, path := i, path
		pool.Submit(func(ctx context.Context) error {
			start := time.Now()
			codes, err := parseFile(path)
			if err != nil {
				return err
			}
			parsed[i] = codes
			log.Info().
				Str("file", filepath.Base(path)).
				Int("rows", len(codes)).
				Dur("elapsed", time.Since(start)).
				Msg("processed file")
			return nil
		})
	}
	if err := pool.Wait(); err != nil {
		return 0, fmt.Errorf("import %s: %w", dir, err)
	}

	total := 0
	for _, codes := range parsed {
		total += len(codes)
	}
	all := make([]model.PostalCode, 0, total)
	for _, codes := range parsed {
		all = append(all, codes...)
	}

	start := time.Now()
	n, err := replacePostalCodes(ctx, db, all)
	if err != nil {
		return 0, fmt.Errorf("import %s: %w", dir, err)
	}
	log.Info().
		Int("files", len(files)).
		Int64("rows", n).
		Dur("elapsed", time.Since(start)).
		Msg("postal codes committed")
	return n, nil
}

func parseFile(path string) ([]model.PostalCode, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f, filepath.Base(path))
}
