// Package export writes analysis snapshots to disk, optionally
// zstd-compressed.
package export

import (
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"

	"archmap/internal/cerrors"
)

// WriteSnapshot writes encoded analysis data to path. Targets ending
// in .zst are compressed with zstd; everything else is written as-is.
func WriteSnapshot(path string, data []byte) error {
	if !strings.HasSuffix(path, ".zst") {
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return cerrors.Wrap(cerrors.ExportFailed, "failed to write snapshot", err)
		}
		return nil
	}

	f, err := os.Create(path)
	if err != nil {
		return cerrors.Wrap(cerrors.ExportFailed, "failed to create snapshot", err)
	}
	defer func() { _ = f.Close() }()

	enc, err := zstd.NewWriter(f)
	if err != nil {
		return cerrors.Wrap(cerrors.ExportFailed, "failed to create compressor", err)
	}
	if _, err := enc.Write(data); err != nil {
		_ = enc.Close()
		return cerrors.Wrap(cerrors.ExportFailed, "failed to write snapshot", err)
	}
	if err := enc.Close(); err != nil {
		return cerrors.Wrap(cerrors.ExportFailed, "failed to finish snapshot", err)
	}
	return f.Close()
}

// ReadSnapshot reads a snapshot back, decompressing .zst targets.
func ReadSnapshot(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, cerrors.Wrap(cerrors.ExportFailed, "failed to read snapshot", err)
	}
	if !strings.HasSuffix(path, ".zst") {
		return data, nil
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, cerrors.Wrap(cerrors.ExportFailed, "failed to create decompressor", err)
	}
	defer dec.Close()

	out, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, cerrors.Wrap(cerrors.ExportFailed, "failed to decompress snapshot", err)
	}
	return out, nil
}
