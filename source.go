package geoip

import (
	"io"
	"os"
	"sync"

	"github.com/pkg/errors"
)

// byteSource is the atomic positional-read contract from spec §4.1: read
// exactly len(buf) bytes starting at offset, or fail with ErrIO. Every
// implementer must be safe under concurrent calls.
type byteSource interface {
	readAt(buf []byte, offset int64) error
	size() int64
	close() error
}

// fileSource reads directly from an *os.File using ReadAt, which on every
// platform Go supports is a true pread(2)-style positional read: it never
// moves a shared file cursor, so no locking is required even across
// goroutines sharing the same *os.File. This is the preferred strategy from
// spec §5.1.
type fileSource struct {
	f    *os.File
	fsz  int64
	path string
}

func openFileSource(path string) (*fileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "stat %s", path)
	}
	return &fileSource{f: f, fsz: fi.Size(), path: path}, nil
}

func (s *fileSource) readAt(buf []byte, offset int64) error {
	n, err := s.f.ReadAt(buf, offset)
	if err != nil && n != len(buf) {
		return errors.Wrapf(err, "reading %d bytes at offset %d", len(buf), offset)
	}
	return nil
}

func (s *fileSource) size() int64 { return s.fsz }

func (s *fileSource) close() error { return s.f.Close() }

// lockedSource serialises seek+read under a mutex. It exists for parity with
// spec §5's documented fallback tier and is exercised directly by tests;
// fileSource is always preferred when ReadAt is available, which it is on
// every platform this module targets.
type lockedSource struct {
	mu   sync.Mutex
	f    *os.File
	fsz  int64
	path string
}

func openLockedSource(path string) (*lockedSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "stat %s", path)
	}
	return &lockedSource{f: f, fsz: fi.Size(), path: path}, nil
}

func (s *lockedSource) readAt(buf []byte, offset int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.f.Seek(offset, 0); err != nil {
		return errors.Wrapf(err, "seeking to offset %d", offset)
	}
	n := 0
	for n < len(buf) {
		m, err := s.f.Read(buf[n:])
		n += m
		if err != nil {
			return errors.Wrapf(err, "reading %d bytes at offset %d", len(buf), offset)
		}
		if m == 0 {
			break
		}
	}
	if n != len(buf) {
		return errors.Errorf("short read: got %d bytes, wanted %d at offset %d", n, len(buf), offset)
	}
	return nil
}

func (s *lockedSource) size() int64 { return s.fsz }

func (s *lockedSource) close() error { return s.f.Close() }

// memorySource serves reads from an immutable in-memory buffer. Selected by
// the Preload open option: the whole file is read once at open and the
// underlying *os.File is closed, per spec §4.1's third strategy.
type memorySource struct {
	buf []byte
}

func newMemorySource(buf []byte) *memorySource {
	return &memorySource{buf: buf}
}

func (s *memorySource) readAt(buf []byte, offset int64) error {
	if offset < 0 || offset > int64(len(s.buf)) {
		return errors.Errorf("offset %d out of range (size %d)", offset, len(s.buf))
	}
	end := offset + int64(len(buf))
	if end > int64(len(s.buf)) {
		return errors.Errorf("short read: wanted %d bytes at offset %d, only %d available", len(buf), offset, int64(len(s.buf))-offset)
	}
	copy(buf, s.buf[offset:end])
	return nil
}

func (s *memorySource) size() int64 { return int64(len(s.buf)) }

func (s *memorySource) close() error { return nil }

func preloadFileSource(path string) (*memorySource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, errors.Wrapf(err, "stat %s", path)
	}

	buf := make([]byte, fi.Size())
	if _, err := io.ReadFull(f, buf); err != nil {
		return nil, errors.Wrapf(err, "preloading %s", path)
	}
	return newMemorySource(buf), nil
}
