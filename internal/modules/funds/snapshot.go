package funds

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/aristath/fundadvisor/internal/domain"
)

// snapshotVersion is bumped whenever the FundRecord msgpack layout changes.
const snapshotVersion = 1

type snapshot struct {
	Version int                 `msgpack:"version"`
	Funds   []domain.FundRecord `msgpack:"funds"`
}

// EncodeSnapshot writes funds as a versioned msgpack snapshot.
func EncodeSnapshot(w io.Writer, funds []domain.FundRecord) error {
	enc := msgpack.NewEncoder(w)
	if err := enc.Encode(snapshot{Version: snapshotVersion, Funds: funds}); err != nil {
		return fmt.Errorf("failed to encode fund snapshot: %w", err)
	}
	return nil
}

// DecodeSnapshot reads a snapshot written by EncodeSnapshot.
func DecodeSnapshot(r io.Reader) ([]domain.FundRecord, error) {
	var snap snapshot
	if err := msgpack.NewDecoder(r).Decode(&snap); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, domain.ErrEmptyDataset
		}
		return nil, fmt.Errorf("failed to decode fund snapshot: %w", err)
	}
	if snap.Version != snapshotVersion {
		return nil, fmt.Errorf("unsupported fund snapshot version %d", snap.Version)
	}
	return snap.Funds, nil
}

// MarshalSnapshot is EncodeSnapshot into a byte slice.
func MarshalSnapshot(funds []domain.FundRecord) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeSnapshot(&buf, funds); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
