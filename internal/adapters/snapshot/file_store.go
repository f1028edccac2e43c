package snapshot

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"github.com/andrescamacho/hive-go/internal/application/colony"
)

const formatName = "hive-memory"

// Header is the uncompressed-size line written ahead of the blob
type Header struct {
	Format string `json:"format"`
	Size   int    `json:"size"`
}

// FileStore keeps the colony memory blob in a zstd-compressed file
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Path() string { return s.path }

// Load returns the stored blob or colony.ErrMemoryNotFound
func (s *FileStore) Load(ctx context.Context) ([]byte, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, colony.ErrMemoryNotFound
		}
		return nil, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	br := bufio.NewReader(dec)
	line, err := br.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("read snapshot header: %w", err)
	}
	var header Header
	if err := json.Unmarshal(line, &header); err != nil || header.Format != formatName {
		return nil, fmt.Errorf("%s is not a hive memory snapshot", s.path)
	}

	blob := make([]byte, header.Size)
	if _, err := io.ReadFull(br, blob); err != nil {
		return nil, fmt.Errorf("read snapshot body: %w", err)
	}
	return blob, nil
}

// Save writes blob to a temporary file and renames it over the old snapshot
func (s *FileStore) Save(ctx context.Context, blob []byte) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := writeCompressed(tmp, blob); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

// Clear removes the snapshot file
func (s *FileStore) Clear(ctx context.Context) error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func writeCompressed(w io.Writer, blob []byte) error {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(enc)
	hb, _ := json.Marshal(Header{Format: formatName, Size: len(blob)})
	if _, err := bw.Write(hb); err != nil {
		return err
	}
	if err := bw.WriteByte('\n'); err != nil {
		return err
	}
	if _, err := bw.Write(blob); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	return enc.Close()
}
