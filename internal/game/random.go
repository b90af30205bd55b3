package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math/rand/v2"

	"github.com/google/uuid"
)

func seededRNG(seed int64) *rand.Rand {
	// Non-cryptographic PRNG is intentional for deterministic simulation behavior.
	// #nosec G404
	return rand.New(rand.NewPCG(seedWord(seed, "a"), seedWord(seed, "b")))
}

func seedWord(seed int64, salt string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(fmt.Sprintf("%d:%s", seed, salt)))
	return h.Sum64()
}

// idSource mints uuids from a ChaCha8 stream keyed by the run seed, so two
// simulations built with the same seed hand out the same ids.
type idSource struct {
	stream *rand.ChaCha8
}

func newIDSource(seed int64) *idSource {
	var key [32]byte
	for i := 0; i < 4; i++ {
		binary.LittleEndian.PutUint64(key[i*8:], seedWord(seed, fmt.Sprintf("ids-%d", i)))
	}
	return &idSource{stream: rand.NewChaCha8(key)}
}

func (s *idSource) next(prefix string) string {
	id, err := uuid.NewRandomFromReader(s.stream)
	if err != nil {
		id = uuid.New()
	}
	if prefix == "" {
		return id.String()
	}
	return prefix + "-" + id.String()
}

func randRange(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func randSpread(rng *rand.Rand, spread float64) float64 {
	return randRange(rng, -spread, spread)
}
