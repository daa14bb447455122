package engine

import (
	"github.com/Water-Engine/cactus/internal/board"
)

// TTFlag indicates the type of bound stored in the transposition table.
type TTFlag uint8

const (
	TTExact      TTFlag = iota // Exact score
	TTLowerBound               // Failed high (beta cutoff)
	TTUpperBound               // Failed low
)

// TTEntry represents an entry in the transposition table.
type TTEntry struct {
	Key      uint32
	BestMove board.Move
	Score    int32
	Depth    int8
	Flag     TTFlag
}

// TranspositionTable is a fixed-capacity hash table for storing search
// results, indexed by key mod capacity with an always-replace policy.
type TranspositionTable struct {
	entries []TTEntry
	mask    uint64

	hits   uint64
	probes uint64
}

// NewTranspositionTable creates a transposition table sized to sizeMB
// megabytes, rounded down to a power of two for fast modulo.
func NewTranspositionTable(sizeMB int) *TranspositionTable {
	const entrySize = 16
	numEntries := roundDownToPowerOf2(uint64(sizeMB) * 1024 * 1024 / entrySize)
	if numEntries == 0 {
		numEntries = 1
	}
	return &TranspositionTable{
		entries: make([]TTEntry, numEntries),
		mask:    numEntries - 1,
	}
}

func roundDownToPowerOf2(n uint64) uint64 {
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return (n + 1) >> 1
}

// Probe looks up a position by Zobrist key; a hit requires an exact key
// match against the upper 32 bits stored at that slot.
func (tt *TranspositionTable) Probe(hash uint64) (TTEntry, bool) {
	tt.probes++
	idx := hash & tt.mask
	entry := tt.entries[idx]
	if entry.Depth > 0 && entry.Key == uint32(hash>>32) {
		tt.hits++
		return entry, true
	}
	return TTEntry{}, false
}

// Store always overwrites the slot a key maps to.
func (tt *TranspositionTable) Store(hash uint64, depth int, score int, flag TTFlag, bestMove board.Move) {
	idx := hash & tt.mask
	tt.entries[idx] = TTEntry{
		Key:      uint32(hash >> 32),
		BestMove: bestMove,
		Score:    int32(score),
		Depth:    int8(depth),
		Flag:     flag,
	}
}

// Clear empties the transposition table for a new game.
func (tt *TranspositionTable) Clear() {
	for i := range tt.entries {
		tt.entries[i] = TTEntry{}
	}
	tt.hits = 0
	tt.probes = 0
}

// HashFull returns the permille of the table occupied, sampling the first
// 1000 slots.
func (tt *TranspositionTable) HashFull() int {
	sampleSize := 1000
	if uint64(sampleSize) > uint64(len(tt.entries)) {
		sampleSize = len(tt.entries)
	}
	used := 0
	for i := 0; i < sampleSize; i++ {
		if tt.entries[i].Depth > 0 {
			used++
		}
	}
	return (used * 1000) / sampleSize
}

// HitRate returns the probe hit rate as a percentage.
func (tt *TranspositionTable) HitRate() float64 {
	if tt.probes == 0 {
		return 0
	}
	return float64(tt.hits) / float64(tt.probes) * 100
}

// Size returns the number of entries in the table.
func (tt *TranspositionTable) Size() uint64 {
	return uint64(len(tt.entries))
}

// IsMateScore reports whether score represents a forced mate rather than a
// material evaluation.
func IsMateScore(score int) bool {
	return abs(score) > MateScore-1000
}

// AdjustScoreToTT converts a mate score from root-relative to
// stored-at-this-node form before writing it into the table.
func AdjustScoreToTT(score int, ply int) int {
	if !IsMateScore(score) {
		return score
	}
	if score > 0 {
		return score + ply
	}
	return score - ply
}

// AdjustScoreFromTT converts a stored mate score back to root-relative form
// after reading it out of the table.
func AdjustScoreFromTT(score int, ply int) int {
	if !IsMateScore(score) {
		return score
	}
	if score > 0 {
		return score - ply
	}
	return score + ply
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
