package canvas

import (
	"encoding/binary"

	"github.com/google/uuid"
)

// ID is an opaque canvas handle, unique for the process lifetime.
type ID [16]byte

// NilID is the zero identifier. No source ever mints it.
var NilID ID

// String returns the canonical UUID text form.
func (id ID) String() string { return uuid.UUID(id).String() }

// Short returns the first eight hex digits, for display.
func (id ID) Short() string { return id.String()[:8] }

// MarshalText implements encoding.TextMarshaler.
func (id ID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ID) UnmarshalText(b []byte) error {
	u, err := uuid.ParseBytes(b)
	if err != nil {
		return err
	}
	*id = ID(u)
	return nil
}

// IDSource mints canvas identifiers.
type IDSource interface {
	NewID() ID
}

// UUIDSource mints random (version 4) UUIDs.
type UUIDSource struct{}

// NewID returns a fresh random identifier.
func (UUIDSource) NewID() ID { return ID(uuid.New()) }

// Sequence mints deterministic identifiers from a counter. It is meant for
// tests and reproducible CLI output; identifiers stay unique only within
// one Sequence.
type Sequence struct {
	next uint64
}

// NewSequence returns a Sequence whose first identifier encodes 1.
func NewSequence() *Sequence { return &Sequence{} }

// NewID returns the next identifier in the sequence.
func (s *Sequence) NewID() ID {
	s.next++
	var id ID
	binary.BigEndian.PutUint64(id[8:], s.next)
	// Stamp version and variant bits so the id reads as a valid UUID.
	id[6] = 0x40
	id[8] |= 0x80
	return id
}

var (
	_ IDSource = UUIDSource{}
	_ IDSource = (*Sequence)(nil)
)
