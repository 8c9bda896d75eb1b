// Package daily picks one entry from a word list per calendar day.
//
// The pick is a pure function of the date key and the list length: the key is hashed
// with SHA-256, the first 16 bytes of the digest seed a math/rand/v2 PCG generator and a
// single IntN draw gives the index. Any bot instance on any machine selects the same
// index for the same day. Changing the digest, the generator or the number of draws
// changes every future selection, so keep them as they are.
package daily

import (
	"crypto/sha256"
	"encoding/binary"
	"math/rand/v2"
	"time"

	"github.com/Roma7-7-7/finnish-word-bot/internal/word"
)

const keyLayout = time.DateOnly

// Key returns the YYYY-MM-DD calendar day of t in loc.
func Key(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(keyLayout)
}

// Index returns a deterministic index in [0, n) for key. It panics if n <= 0.
func Index(key string, n int) int {
	sum := sha256.Sum256([]byte(key))
	src := rand.NewPCG(binary.BigEndian.Uint64(sum[:8]), binary.BigEndian.Uint64(sum[8:16]))
	return rand.New(src).IntN(n) //nolint:gosec // reproducibility, not secrecy
}

// Pick returns the list entry selected for key. The list must not be empty.
func Pick(list word.List, key string) string {
	return list[Index(key, len(list))]
}
