package plink

import (
	"errors"
	"fmt"
	"os"
)

// ErrNoSampleCount is returned when a BED file is opened before the sample
// count is known. The sample count comes from the phenotype/FAM file, which
// must be read first.
var ErrNoSampleCount = errors.New("plink: sample count not set")

// Bed provides random access to one marker at a time in an open BED file.
// It owns the file handle for its lifetime; Close releases it. The file is
// never mutated, so concurrent ReadMarker calls are safe.
type Bed struct {
	path      string
	file      *os.File
	n         int
	nsnps     int
	perMarker int
}

// Open opens a BED file for per-marker random access. n is the number of
// samples and must already be known; the marker count is inferred from the
// file size. The handle is released on every error path.
func Open(path string, n int) (*Bed, error) {
	if n <= 0 {
		return nil, ErrNoSampleCount
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}

	perMarker := BytesPerMarker(n)
	dataLen := info.Size() - HeaderLen
	if dataLen < 0 || dataLen%int64(perMarker) != 0 {
		file.Close()
		return nil, fmt.Errorf("plink: %s: %d data bytes is not a whole number of markers for %d samples", path, dataLen, n)
	}

	return &Bed{
		path:      path,
		file:      file,
		n:         n,
		nsnps:     int(dataLen / int64(perMarker)),
		perMarker: perMarker,
	}, nil
}

// ReadMarker reads the packed bytes for marker j into buf, which must be
// BytesPerMarker(n) long.
func (b *Bed) ReadMarker(buf []byte, j int) error {
	if j < 0 || j >= b.nsnps {
		return fmt.Errorf("plink: marker index %d out of range [0, %d)", j, b.nsnps)
	}
	if len(buf) != b.perMarker {
		return fmt.Errorf("plink: marker buffer is %d bytes, want %d", len(buf), b.perMarker)
	}
	_, err := b.file.ReadAt(buf, HeaderLen+int64(j)*int64(b.perMarker))
	return err
}

// DecodeMarker reads and decodes marker j. out must hold at least n codes.
// scratch must be BytesPerMarker(n) long and is overwritten.
func (b *Bed) DecodeMarker(out, scratch []byte, j int) error {
	if err := b.ReadMarker(scratch, j); err != nil {
		return err
	}
	if len(out) < b.n {
		return fmt.Errorf("plink: output buffer is %d codes, want at least %d", len(out), b.n)
	}
	decodeInto(out, scratch, b.n)
	return nil
}

func (b *Bed) NumSamples() int     { return b.n }
func (b *Bed) NumSnps() int        { return b.nsnps }
func (b *Bed) BytesPerMarker() int { return b.perMarker }

func (b *Bed) Close() error {
	if b.file == nil {
		return nil
	}
	err := b.file.Close()
	b.file = nil
	return err
}
