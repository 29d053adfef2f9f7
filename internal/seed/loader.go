package seed

import (
	"bufio"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// fileLoader implements Loader for reading gzipped seed files.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based seed loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "seed-loader").Logger(),
	}
}

// Load reads a gzipped seed file, one JSON record per line. Blank lines are
// skipped; a malformed line fails the whole load.
func (l *fileLoader) Load(ctx context.Context, filePath string) ([]Record, error) {
	l.logger.Info().Str("file", filePath).Msg("loading seed file")

	file, err := os.Open(filePath)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to open seed file")
		return nil, fmt.Errorf("failed to open seed file %s: %w", filePath, err)
	}
	defer file.Close()

	gzipReader, err := gzip.NewReader(file)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to create gzip reader")
		return nil, fmt.Errorf("failed to create gzip reader for %s: %w", filePath, err)
	}
	defer gzipReader.Close()

	records, err := decodeRecords(ctx, gzipReader)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("error reading seed file")
		return nil, fmt.Errorf("error reading seed file %s: %w", filePath, err)
	}

	l.logger.Info().
		Str("file", filePath).
		Int("records_loaded", len(records)).
		Msg("seed file loaded successfully")

	return records, nil
}

// decodeRecords scans JSON lines into records, checking for cancellation
// periodically.
func decodeRecords(ctx context.Context, r interface{ Read([]byte) (int, error) }) ([]Record, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var records []Record
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if lineNo%10_000 == 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var rec Record
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			return nil, fmt.Errorf("invalid record at line %d: %w", lineNo, err)
		}

		switch rec.Kind {
		case "category":
			if rec.Category == nil {
				return nil, fmt.Errorf("missing category payload at line %d", lineNo)
			}
		case "product":
			if rec.Product == nil {
				return nil, fmt.Errorf("missing product payload at line %d", lineNo)
			}
		default:
			return nil, fmt.Errorf("unknown record kind %q at line %d", rec.Kind, lineNo)
		}

		records = append(records, rec)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
