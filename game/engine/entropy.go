package engine

import (
	"encoding/binary"
	"hash/fnv"
	"time"
)

// EntropySource supplies the external randomness a combat roll is derived
// from. The engine itself never reads the clock or a RNG directly, so a
// fixed source makes every resolution replayable in tests.
type EntropySource interface {
	Draw() uint64
}

// FixedEntropy always draws the same value. Test and replay use.
type FixedEntropy uint64

func (f FixedEntropy) Draw() uint64 { return uint64(f) }

// DelayedEntropy draws the value of the previous time bucket, so the party
// submitting an action cannot know the draw its own action will resolve
// against.
type DelayedEntropy struct {
	bucket time.Duration
	seed   uint64
	now    func() time.Time
}

// NewDelayedEntropy returns a time-bucketed source. Bucket must be positive.
func NewDelayedEntropy(bucket time.Duration, seed uint64) *DelayedEntropy {
	if bucket <= 0 {
		bucket = time.Minute
	}
	return &DelayedEntropy{bucket: bucket, seed: seed, now: time.Now}
}

func (d *DelayedEntropy) Draw() uint64 {
	idx := d.now().UnixNano()/int64(d.bucket) - 1
	h := fnv.New64a()
	var buf [16]byte
	binary.BigEndian.PutUint64(buf[:8], d.seed)
	binary.BigEndian.PutUint64(buf[8:], uint64(idx))
	h.Write(buf[:])
	return h.Sum64()
}

// SeedFromID derives a stable numeric seed from a session identifier.
func SeedFromID(id string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(id))
	return h.Sum64()
}

// combatRoll derives a 1..100 roll from the entropy draw and the full combat
// context. Folding attacker, target, round and distance in means the two
// strikes of one exchange, and simultaneous attacks elsewhere on the board,
// resolve independently even under a single entropy draw.
func combatRoll(entropy, seed uint64, attackerID, targetID, round, distance, salt int) int {
	h := fnv.New64a()
	var buf [8]byte
	for _, v := range []uint64{
		entropy,
		seed,
		uint64(attackerID),
		uint64(targetID),
		uint64(round),
		uint64(distance),
		uint64(salt),
	} {
		binary.BigEndian.PutUint64(buf[:], v)
		h.Write(buf[:])
	}
	return int(h.Sum64()%100) + 1
}
