package funds

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/aristath/fundadvisor/internal/database"
	"github.com/aristath/fundadvisor/internal/domain"
	"github.com/aristath/fundadvisor/internal/utils"
)

// Format is the encoding of a dataset source.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
	FormatMsgpack  Format = "msgpack"
	FormatDatabase Format = "sqlite"
)

// DetectFormat picks a format from the source's extension. CSV is the default.
func DetectFormat(source string) Format {
	switch strings.ToLower(filepath.Ext(source)) {
	case ".json":
		return FormatJSON
	case ".msgpack", ".mpk":
		return FormatMsgpack
	case ".db", ".sqlite", ".sqlite3":
		return FormatDatabase
	default:
		return FormatCSV
	}
}

// LoadOptions configures Load.
type LoadOptions struct {
	S3  S3Config
	Log zerolog.Logger
}

// Load reads fund records from source, which is a local path or an
// s3://bucket/key URI. Unreadable sources wrap domain.ErrDatasetUnavailable
// and sources with no rows wrap domain.ErrEmptyDataset.
func Load(ctx context.Context, source string, opts LoadOptions) ([]domain.FundRecord, error) {
	log := opts.Log.With().Str("component", "fund_loader").Str("source", source).Logger()
	format := DetectFormat(source)
	stop := utils.OperationTimer("load_dataset", log)

	var (
		records []domain.FundRecord
		err     error
	)

	switch {
	case IsS3URI(source):
		if format == FormatDatabase {
			return nil, fmt.Errorf("sqlite datasets cannot be read from S3: %w", domain.ErrDatasetUnavailable)
		}
		records, err = loadS3(ctx, source, format, opts.S3)
	case format == FormatDatabase:
		records, err = loadDatabase(ctx, source, log)
	default:
		records, err = loadFile(source, format)
	}
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%s: %w", source, domain.ErrEmptyDataset)
	}

	log.Info().
		Int("funds", len(records)).
		Str("format", string(format)).
		Dur("elapsed", stop()).
		Msg("Fund dataset loaded")
	return records, nil
}

// LoadDataset loads source and builds an immutable Dataset from it.
func LoadDataset(ctx context.Context, source string, opts LoadOptions) (*Dataset, error) {
	records, err := Load(ctx, source, opts)
	if err != nil {
		return nil, err
	}
	return NewDataset(records)
}

// Decode parses records in the given format.
func Decode(r io.Reader, format Format) ([]domain.FundRecord, error) {
	switch format {
	case FormatJSON:
		return ParseJSON(r)
	case FormatMsgpack:
		return DecodeSnapshot(r)
	case FormatCSV:
		return ParseCSV(r)
	default:
		return nil, fmt.Errorf("format %q cannot be decoded from a stream", format)
	}
}

func loadFile(path string, format Format) ([]domain.FundRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %v: %w", path, err, domain.ErrDatasetUnavailable)
	}
	defer f.Close()

	return Decode(f, format)
}

func loadS3(ctx context.Context, uri string, format Format, cfg S3Config) ([]domain.FundRecord, error) {
	store, err := NewObjectStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrDatasetUnavailable)
	}

	data, err := store.Download(ctx, uri)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrDatasetUnavailable)
	}

	return Decode(bytes.NewReader(data), format)
}

func loadDatabase(ctx context.Context, path string, log zerolog.Logger) ([]domain.FundRecord, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("database %s does not exist: %w", path, domain.ErrDatasetUnavailable)
	}

	db, err := database.New(database.Config{Path: path, Profile: database.ProfileCache, Name: "funds"})
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrDatasetUnavailable)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		return nil, err
	}

	return NewRepository(db.Conn(), log).GetAll(ctx)
}
