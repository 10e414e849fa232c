package plink

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// BedStream reads a BED file sequentially, one marker per call, decoding as
// it goes. It is meant for one-shot full passes over the file; use Bed for
// repeated random access.
type BedStream struct {
	filename    string
	file        *os.File
	reader      *bufio.Reader
	n           int
	nsnps       int
	perMarker   int
	markerCount int
	packed      []byte
	codes       []byte
}

// NewBedStream opens a BED file for a sequential pass. n is the number of
// samples and must already be known.
func NewBedStream(filename string, n int) (*BedStream, error) {
	if n <= 0 {
		return nil, ErrNoSampleCount
	}

	file, err := os.Open(filename)
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
		return nil, fmt.Errorf("plink: %s: %d data bytes is not a whole number of markers for %d samples", filename, dataLen, n)
	}

	reader := bufio.NewReader(file)
	if _, err := reader.Discard(HeaderLen); err != nil {
		file.Close()
		return nil, err
	}

	return &BedStream{
		filename:  filename,
		file:      file,
		reader:    reader,
		n:         n,
		nsnps:     int(dataLen / int64(perMarker)),
		perMarker: perMarker,
		packed:    make([]byte, perMarker),
		codes:     make([]byte, perMarker*PackDensity),
	}, nil
}

// NextMarker returns the decoded genotype codes for the next marker, or nil
// at end of file. The returned slice is reused by the next call.
func (s *BedStream) NextMarker() ([]byte, error) {
	if s.CheckEOF() {
		return nil, nil
	}

	if _, err := io.ReadFull(s.reader, s.packed); err != nil {
		return nil, fmt.Errorf("plink: %s: marker %d: %w", s.filename, s.markerCount, err)
	}
	Decode(s.codes, s.packed)
	s.markerCount++

	return s.codes[:s.n], nil
}

// CheckEOF reports whether all markers have been read and closes the file
// once they have.
func (s *BedStream) CheckEOF() bool {
	if s.markerCount >= s.nsnps {
		if s.file != nil {
			s.file.Close()
		}
		s.file = nil
		s.reader = nil
		return true
	}
	return false
}

// Reset rewinds the stream to the first marker, reopening the file if the
// previous pass ran to completion.
func (s *BedStream) Reset() error {
	var err error
	if s.file == nil {
		s.file, err = os.Open(s.filename)
	} else {
		_, err = s.file.Seek(0, io.SeekStart)
	}
	if err != nil {
		return err
	}

	s.reader = bufio.NewReader(s.file)
	if _, err := s.reader.Discard(HeaderLen); err != nil {
		return err
	}
	s.markerCount = 0
	return nil
}

func (s *BedStream) NumSamples() int  { return s.n }
func (s *BedStream) NumSnps() int     { return s.nsnps }
func (s *BedStream) MarkerCount() int { return s.markerCount }

func (s *BedStream) Close() error {
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	s.reader = nil
	return err
}
