package aggregator

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const (
	// length uint32 + created unix seconds int64 + crc32 of payload
	spoolHeaderSize    = 4 + 8 + 4
	spoolDataFile      = "spool.bin"
	spoolOffsetFile    = "spool.offset"
	spoolSyncAckBatch  = 64
	spoolSyncInterval  = 2 * time.Second
	spoolMaxRecordSize = 64 << 20
)

var (
	errSpoolEmpty = errors.New("spool is empty")
	errSpoolFull  = errors.New("spool limits reached; rejecting new payload")
)

type spoolRecord struct {
	payload []byte
	size    int64
	created time.Time
}

// Spool persists encoded AddEvents requests that no upstream accepted.
// Records are appended to one data file; a separate file holds the read
// offset of the first unacknowledged record.
type Spool struct {
	mu sync.Mutex

	data   *os.File
	offset *os.File

	maxBatches uint64
	maxAge     time.Duration

	readPos  int64
	fileSize int64
	pending  uint64
	oldest   time.Time

	dirty    bool
	acked    uint64
	lastSync time.Time
	now      func() time.Time
}

// OpenSpool opens or creates spool files in dir and restores pending records.
// Params: dir spool directory; maxBatches/maxAge admission limits (0 disables a limit).
// Returns: spool or IO error.
func OpenSpool(dir string, maxBatches uint64, maxAge time.Duration) (*Spool, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create spool dir %q: %w", dir, err)
	}

	data, err := os.OpenFile(filepath.Join(dir, spoolDataFile), os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open spool data: %w", err)
	}
	offset, err := os.OpenFile(filepath.Join(dir, spoolOffsetFile), os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		_ = data.Close()
		return nil, fmt.Errorf("open spool offset: %w", err)
	}

	s := &Spool{
		data:       data,
		offset:     offset,
		maxBatches: maxBatches,
		maxAge:     maxAge,
		now:        time.Now,
	}
	if err := s.restore(); err != nil {
		_ = s.closeFiles()
		return nil, err
	}
	s.lastSync = s.now()
	return s, nil
}

// Append stores payload at the spool tail when limits allow.
// Params: payload encoded AddEventRequest.
// Returns: errSpoolFull when limits are reached, or IO error.
func (s *Spool) Append(payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		return fmt.Errorf("spool is closed")
	}
	now := s.now()
	if s.maxBatches > 0 && s.pending >= s.maxBatches {
		return errSpoolFull
	}
	if s.maxAge > 0 && s.pending > 0 && now.Sub(s.oldest) >= s.maxAge {
		return errSpoolFull
	}

	record := make([]byte, spoolHeaderSize+len(payload))
	binary.LittleEndian.PutUint32(record[0:4], uint32(len(payload)))
	binary.LittleEndian.PutUint64(record[4:12], uint64(now.Unix()))
	binary.LittleEndian.PutUint32(record[12:16], crc32.ChecksumIEEE(payload))
	copy(record[spoolHeaderSize:], payload)

	if _, err := s.data.WriteAt(record, s.fileSize); err != nil {
		return fmt.Errorf("write spool record: %w", err)
	}

	s.fileSize += int64(len(record))
	s.pending++
	if s.pending == 1 {
		s.oldest = time.Unix(now.Unix(), 0)
	}
	return nil
}

// Peek reads the first pending record without consuming it.
// Params: none.
// Returns: record or errSpoolEmpty.
func (s *Spool) Peek() (spoolRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readAt(s.readPos)
}

// Ack consumes a record returned by Peek.
// Params: consumed record.
// Returns: persistence error.
func (s *Spool) Ack(consumed spoolRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if consumed.size <= 0 {
		return fmt.Errorf("ack requires positive record size")
	}
	if s.pending == 0 {
		return fmt.Errorf("ack on empty spool")
	}

	s.readPos = min(s.readPos+consumed.size, s.fileSize)
	s.pending--
	s.dirty = true
	s.acked++

	if s.pending == 0 {
		return s.truncate()
	}

	if next, err := s.readAt(s.readPos); err == nil {
		s.oldest = next.created
	}
	return s.syncOffset(false)
}

// Pending returns the number of unacknowledged records.
func (s *Spool) Pending() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Close persists the read offset and closes spool files.
// Params: none.
// Returns: first flush/close error.
func (s *Spool) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		return nil
	}
	err := s.syncOffset(true)
	if closeErr := s.closeFiles(); err == nil {
		err = closeErr
	}
	return err
}

// restore loads the read offset and counts intact records after it.
// A torn or corrupt tail is cut off.
func (s *Spool) restore() error {
	var raw [8]byte
	n, err := s.offset.ReadAt(raw[:], 0)
	switch {
	case errors.Is(err, io.EOF) && n == 0:
		s.readPos = 0
	case err != nil && !errors.Is(err, io.EOF):
		return fmt.Errorf("read spool offset: %w", err)
	case n < len(raw):
		return fmt.Errorf("invalid spool offset file size %d", n)
	default:
		s.readPos = max(int64(binary.LittleEndian.Uint64(raw[:])), 0)
	}

	info, err := s.data.Stat()
	if err != nil {
		return fmt.Errorf("stat spool data: %w", err)
	}
	s.fileSize = info.Size()
	if s.readPos > s.fileSize {
		s.readPos = 0
		s.dirty = true
	}

	position := s.readPos
	for {
		record, err := s.readAt(position)
		if errors.Is(err, errSpoolEmpty) {
			break
		}
		if err != nil {
			if truncErr := s.data.Truncate(position); truncErr != nil {
				return fmt.Errorf("truncate spool tail at %d: %w", position, truncErr)
			}
			s.fileSize = position
			break
		}
		if s.pending == 0 {
			s.oldest = record.created
		}
		s.pending++
		position += record.size
	}

	if s.pending == 0 && s.fileSize > 0 {
		return s.truncate()
	}
	return s.syncOffset(true)
}

// readAt decodes the record starting at position; caller holds the lock.
func (s *Spool) readAt(position int64) (spoolRecord, error) {
	if s.data == nil {
		return spoolRecord{}, fmt.Errorf("spool is closed")
	}
	if position >= s.fileSize {
		return spoolRecord{}, errSpoolEmpty
	}

	var header [spoolHeaderSize]byte
	if _, err := s.data.ReadAt(header[:], position); err != nil {
		return spoolRecord{}, fmt.Errorf("read spool header at %d: %w", position, err)
	}
	length := int64(binary.LittleEndian.Uint32(header[0:4]))
	created := int64(binary.LittleEndian.Uint64(header[4:12]))
	checksum := binary.LittleEndian.Uint32(header[12:16])

	if length > spoolMaxRecordSize || position+spoolHeaderSize+length > s.fileSize {
		return spoolRecord{}, fmt.Errorf("spool record at %d exceeds file size", position)
	}

	payload := make([]byte, length)
	if _, err := s.data.ReadAt(payload, position+spoolHeaderSize); err != nil {
		return spoolRecord{}, fmt.Errorf("read spool payload at %d: %w", position, err)
	}
	if crc32.ChecksumIEEE(payload) != checksum {
		return spoolRecord{}, fmt.Errorf("spool record at %d: checksum mismatch", position)
	}

	return spoolRecord{
		payload: payload,
		size:    spoolHeaderSize + length,
		created: time.Unix(created, 0),
	}, nil
}

// truncate empties the spool after the last record is acknowledged.
func (s *Spool) truncate() error {
	if err := s.data.Truncate(0); err != nil {
		return fmt.Errorf("truncate spool data: %w", err)
	}
	s.fileSize = 0
	s.readPos = 0
	s.pending = 0
	s.oldest = time.Time{}
	s.dirty = true
	return s.syncOffset(true)
}

// syncOffset persists the read offset when forced or when enough acks accumulated.
func (s *Spool) syncOffset(force bool) error {
	if !s.dirty {
		return nil
	}
	if !force && s.acked < spoolSyncAckBatch && s.now().Sub(s.lastSync) < spoolSyncInterval {
		return nil
	}

	var raw [8]byte
	binary.LittleEndian.PutUint64(raw[:], uint64(s.readPos))
	if _, err := s.offset.WriteAt(raw[:], 0); err != nil {
		return fmt.Errorf("write spool offset: %w", err)
	}
	if err := s.offset.Sync(); err != nil {
		return fmt.Errorf("sync spool offset: %w", err)
	}
	s.dirty = false
	s.acked = 0
	s.lastSync = s.now()
	return nil
}

func (s *Spool) closeFiles() error {
	var firstErr error
	if s.data != nil {
		if err := s.data.Close(); err != nil {
			firstErr = fmt.Errorf("close spool data: %w", err)
		}
		s.data = nil
	}
	if s.offset != nil {
		if err := s.offset.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close spool offset: %w", err)
		}
		s.offset = nil
	}
	return firstErr
}
