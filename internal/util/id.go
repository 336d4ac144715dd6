// Package util provides utility functions for medboard.
package util

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// IDGenerator provides thread-safe UUIDv7 generation with monotonic timestamps.
type IDGenerator struct {
	mu       sync.Mutex
	lastTime int64
	counter  uint16
}

// NewIDGenerator creates a new ID generator.
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{}
}

// NewID generates a new UUIDv7 identifier from this generator.
func (g *IDGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now().UnixMilli()

	if now == g.lastTime {
		g.counter++
		if g.counter == 0 {
			for now == g.lastTime {
				time.Sleep(time.Microsecond * 100)
				now = time.Now().UnixMilli()
			}
			g.counter = 0
		}
	} else {
		g.lastTime = now
		g.counter = 0
	}

	return generateUUIDv7(now, g.counter)
}

var generator = &IDGenerator{}

// NewID generates a new UUIDv7 identifier.
// UUIDv7 provides time-ordered identifiers for better index locality in the
// event journal.
func NewID() string {
	return generator.NewID()
}

// generateUUIDv7 creates a UUIDv7 from a timestamp and counter.
func generateUUIDv7(unixMilli int64, counter uint16) string {
	var id [16]byte

	// First 48 bits: Unix timestamp in milliseconds (big endian)
	binary.BigEndian.PutUint32(id[0:4], uint32(unixMilli>>16))
	binary.BigEndian.PutUint16(id[4:6], uint16(unixMilli))

	// Version (4 bits) + counter (12 bits)
	id[6] = 0x70 | (byte(counter>>8) & 0x0F)
	id[7] = byte(counter)

	var randomBytes [8]byte
	rand.Read(randomBytes[:])
	copy(id[8:], randomBytes[:])
	id[8] = (id[8] & 0x3F) | 0x80 // Set variant to RFC 4122

	return fmt.Sprintf("%08x-%04x-%04x-%04x-%012x",
		binary.BigEndian.Uint32(id[0:4]),
		binary.BigEndian.Uint16(id[4:6]),
		binary.BigEndian.Uint16(id[6:8]),
		binary.BigEndian.Uint16(id[8:10]),
		id[10:16],
	)
}

// NewUUID generates a standard UUIDv4 (random) identifier.
// Use NewID() for most cases; this is for compatibility.
func NewUUID() string {
	return uuid.New().String()
}

// ParseID validates and parses a UUID string.
func ParseID(s string) (string, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return "", fmt.Errorf("invalid ID format: %w", err)
	}
	return id.String(), nil
}

// IsValidID checks if a string is a valid UUID format.
func IsValidID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// CaseNumberGenerator hands out human-readable case references for
// admitted patients.
// Format: MB-{day:03d}-{3-digit sequence}
// Example: MB-004-017
type CaseNumberGenerator struct {
	mu      sync.Mutex
	lastDay int
	lastSeq int
}

// NewCaseNumberGenerator creates a new case number generator.
func NewCaseNumberGenerator() *CaseNumberGenerator {
	return &CaseNumberGenerator{}
}

// Next generates the next case number for the given day. The sequence
// restarts when the day advances.
func (c *CaseNumberGenerator) Next(day int) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if day != c.lastDay {
		c.lastDay = day
		c.lastSeq = 0
	}
	c.lastSeq++
	return fmt.Sprintf("MB-%03d-%03d", day, c.lastSeq)
}

// ParseCaseNumber extracts the day and sequence from a case number.
func ParseCaseNumber(caseNum string) (day, sequence int, err error) {
	_, err = fmt.Sscanf(caseNum, "MB-%03d-%03d", &day, &sequence)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid case number format: %w", err)
	}
	return day, sequence, nil
}

// DeterministicID generates a deterministic ID for testing purposes.
// DO NOT use in production - use NewID() instead.
func DeterministicID(seed int64) string {
	var id [16]byte

	binary.BigEndian.PutUint64(id[0:8], uint64(seed))
	binary.BigEndian.PutUint64(id[8:16], uint64(seed*31))

	// Set version 4 and variant
	id[6] = (id[6] & 0x0F) | 0x40
	id[8] = (id[8] & 0x3F) | 0x80

	return fmt.Sprintf("%08x-%04x-%04x-%04x-%012x",
		binary.BigEndian.Uint32(id[0:4]),
		binary.BigEndian.Uint16(id[4:6]),
		binary.BigEndian.Uint16(id[6:8]),
		binary.BigEndian.Uint16(id[8:10]),
		id[10:16],
	)
}
