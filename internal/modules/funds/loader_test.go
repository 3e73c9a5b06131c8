package funds

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/fundadvisor/internal/domain"
	testingpkg "github.com/aristath/fundadvisor/internal/testing"
)

func testOptions() LoadOptions {
	return LoadOptions{Log: zerolog.Nop()}
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, FormatCSV, DetectFormat("data/funds.csv"))
	assert.Equal(t, FormatCSV, DetectFormat("data/funds"))
	assert.Equal(t, FormatJSON, DetectFormat("funds.JSON"))
	assert.Equal(t, FormatMsgpack, DetectFormat("s3://bucket/funds.msgpack"))
	assert.Equal(t, FormatDatabase, DetectFormat("funds.db"))
	assert.Equal(t, FormatDatabase, DetectFormat("funds.sqlite"))
}

func TestLoad_SampleDataset(t *testing.T) {
	ds, err := LoadDataset(context.Background(), testingpkg.SampleDatasetPath(3), testOptions())
	require.NoError(t, err)

	assert.Greater(t, ds.Len(), 10)
	for _, category := range []string{"large_cap", "mid_cap", "small_cap", "flexi_cap", "debt", "tax_saving"} {
		assert.True(t, ds.HasCategory(category), category)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "missing.csv"), testOptions())
	assert.True(t, errors.Is(err, domain.ErrDatasetUnavailable))
}

func TestLoad_MissingDatabase(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "missing.db"), testOptions())
	assert.True(t, errors.Is(err, domain.ErrDatasetUnavailable))
}

func TestLoad_HeaderOnlyIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "funds.csv")
	require.NoError(t, os.WriteFile(path, []byte("id,name,category\n"), 0644))

	_, err := Load(context.Background(), path, testOptions())
	assert.True(t, errors.Is(err, domain.ErrEmptyDataset))
}

func TestSaveThenLoad(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	for _, name := range []string{"funds.json", "funds.msgpack", "funds.db"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, Save(ctx, sampleRecords(), path, testOptions()))

			records, err := Load(ctx, path, testOptions())
			require.NoError(t, err)
			require.Len(t, records, 3)
			assert.Equal(t, "F003", records[2].ID)
			require.NotNil(t, records[2].SharpeRatio)
			assert.Equal(t, 1.2, *records[2].SharpeRatio)
		})
	}
}

func TestSave_RejectsCSV(t *testing.T) {
	err := Save(context.Background(), sampleRecords(), filepath.Join(t.TempDir(), "out.csv"), testOptions())
	assert.Error(t, err)
}

func TestParseS3URI(t *testing.T) {
	bucket, key, err := ParseS3URI("s3://funds-bucket/snapshots/funds.msgpack")
	require.NoError(t, err)
	assert.Equal(t, "funds-bucket", bucket)
	assert.Equal(t, "snapshots/funds.msgpack", key)

	for _, bad := range []string{"funds.csv", "s3://bucket", "s3:///key", "s3://bucket/"} {
		_, _, err := ParseS3URI(bad)
		assert.Error(t, err, bad)
	}
}
