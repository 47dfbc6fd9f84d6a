package ids

import (
	"crypto/rand"
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	internalstrings "github.com/amonks/toodle/internal/strings"
)

// Generator produces lowercase ULIDs that sort by creation time.
// It is safe for concurrent use.
type Generator struct {
	mu      sync.Mutex
	entropy io.Reader
	now     func() time.Time
}

// NewGenerator returns a Generator reading the given clock. A nil clock uses
// time.Now.
func NewGenerator(now func() time.Time) *Generator {
	if now == nil {
		now = time.Now
	}
	return &Generator{
		entropy: ulid.Monotonic(rand.Reader, 0),
		now:     now,
	}
}

// New returns a fresh ID. IDs from one Generator strictly increase, even
// when the clock stands still.
func (g *Generator) New() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	id, err := ulid.New(ulid.Timestamp(g.now()), g.entropy)
	if err != nil {
		// Monotonic entropy overflows only after 2^80 IDs in one millisecond.
		id = ulid.Make()
	}
	return internalstrings.NormalizeLowerTrimSpace(id.String())
}

// Time returns the creation time encoded in id.
func Time(id string) (time.Time, bool) {
	parsed, err := ulid.ParseStrict(id)
	if err != nil {
		return time.Time{}, false
	}
	return ulid.Time(parsed.Time()), true
}
