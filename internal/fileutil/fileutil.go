package fileutil

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// partialSuffix marks a copy that has not been verified and renamed yet.
const partialSuffix = ".partial"

// CopyFileVerified copies src to dst, then reads dst back and compares its
// size and SHA-256 against what was read from src. dst is removed on any
// failure.
func CopyFileVerified(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer in.Close()

	defer func() {
		if err != nil {
			_ = os.Remove(dst)
		}
	}()

	want, wantSize, err := writeHashed(in, dst)
	if err != nil {
		return err
	}
	got, gotSize, err := digest(dst)
	if err != nil {
		return fmt.Errorf("verify copy: %w", err)
	}
	if gotSize != wantSize {
		return fmt.Errorf("copy size mismatch: source %d bytes, copied %d bytes", wantSize, gotSize)
	}
	if !bytes.Equal(got, want) {
		return fmt.Errorf("copy hash mismatch: file corrupted during copy")
	}
	return nil
}

// writeHashed streams r into a new file at path and returns the digest of the
// bytes it read.
func writeHashed(r io.Reader, path string) ([]byte, int64, error) {
	out, err := os.Create(path)
	if err != nil {
		return nil, 0, err
	}
	hasher := sha256.New()
	n, err := io.Copy(out, io.TeeReader(r, hasher))
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return nil, 0, err
	}
	return hasher.Sum(nil), n, nil
}

func digest(path string) ([]byte, int64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer file.Close()
	hasher := sha256.New()
	n, err := io.Copy(hasher, file)
	if err != nil {
		return nil, 0, err
	}
	return hasher.Sum(nil), n, nil
}

// CopyIntoDir places a verified copy of src at dir/name and returns that path.
// The copy is written beside the destination and renamed into place, so an
// existing file is replaced atomically.
func CopyIntoDir(src, dir, name string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create destination directory: %w", err)
	}
	dst := filepath.Join(dir, name)
	tmp := dst + partialSuffix
	if err := CopyFileVerified(src, tmp); err != nil {
		return "", fmt.Errorf("copy %s: %w", filepath.Base(src), err)
	}
	if err := os.Rename(tmp, dst); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("finalize %s: %w", name, err)
	}
	return dst, nil
}
