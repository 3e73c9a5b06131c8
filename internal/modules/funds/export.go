package funds

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/aristath/fundadvisor/internal/database"
	"github.com/aristath/fundadvisor/internal/domain"
)

// Save writes records to dest, a local path or s3://bucket/key URI, in the
// format implied by its extension. CSV output is not supported.
func Save(ctx context.Context, records []domain.FundRecord, dest string, opts LoadOptions) error {
	format := DetectFormat(dest)

	if format == FormatDatabase {
		if IsS3URI(dest) {
			return fmt.Errorf("sqlite datasets cannot be written to S3")
		}
		return saveDatabase(records, dest, opts.Log)
	}

	data, err := Encode(records, format)
	if err != nil {
		return err
	}

	if IsS3URI(dest) {
		store, err := NewObjectStore(ctx, opts.S3)
		if err != nil {
			return err
		}
		return store.Upload(ctx, dest, data)
	}

	if err := os.WriteFile(dest, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}
	return nil
}

// Encode serializes records as JSON or a msgpack snapshot.
func Encode(records []domain.FundRecord, format Format) ([]byte, error) {
	switch format {
	case FormatMsgpack:
		return MarshalSnapshot(records)
	case FormatJSON:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(records); err != nil {
			return nil, fmt.Errorf("failed to encode funds as JSON: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("cannot write funds as %s", format)
	}
}

func saveDatabase(records []domain.FundRecord, path string, log zerolog.Logger) error {
	db, err := database.New(database.Config{Path: path, Profile: database.ProfileStandard, Name: "funds"})
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		return err
	}
	return NewRepository(db.Conn(), log).ReplaceAll(records)
}
