package gallery

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// Clock abstracts time retrieval so ingestion is deterministic in tests.
type Clock interface {
	Now() time.Time
}

// RealClock returns the actual current time.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// IDGenerator abstracts photo id generation.
type IDGenerator interface {
	New() string
}

// ULIDGenerator produces ids made of a millisecond timestamp and 80 random
// bits, so ids minted in the same millisecond still differ.
type ULIDGenerator struct{}

func (ULIDGenerator) New() string { return ulid.Make().String() }
