// Package book implements the opening book: a text-format table of known
// positions and the moves previously played from them.
package book

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/Water-Engine/cactus/internal/board"
)

// MaxBookPly is the latest ply_count at which the book is still consulted.
const MaxBookPly = 16

// BookEntry is one candidate move recorded for a position.
type BookEntry struct {
	Move      board.Move
	PlayCount int
}

// Book maps a counter-free FEN to the moves recorded from that position.
type Book struct {
	positions map[string][]BookEntry
}

// New creates an empty book.
func New() *Book {
	return &Book{positions: make(map[string][]BookEntry)}
}

// Load reads a book file at path.
func Load(path string) (*Book, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadReader(f)
}

// LoadReader parses the `pos <fen>` / `<uci-move> <play-count>` text format.
// Each record starts with a line beginning with the token "pos"; the FEN
// without halfmove/fullmove counters follows it on the same line, or, when
// "pos" stands alone, on the next line. Subsequent lines are move/count
// pairs until the next "pos" line or end of input. Blank lines are
// tolerated anywhere.
func LoadReader(r io.Reader) (*Book, error) {
	b := New()
	scanner := bufio.NewScanner(r)

	var currentFEN string
	haveFEN := false

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "pos" {
			haveFEN = false
			continue
		}
		if strings.HasPrefix(line, "pos ") {
			currentFEN = strings.TrimSpace(strings.TrimPrefix(line, "pos "))
			haveFEN = true
			continue
		}
		if !haveFEN {
			currentFEN = line
			haveFEN = true
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("book: malformed move line %q", line)
		}
		playCount, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("book: invalid play count in %q: %w", line, err)
		}

		pos, err := board.ParseFEN(currentFEN)
		if err != nil {
			return nil, fmt.Errorf("book: invalid FEN %q: %w", currentFEN, err)
		}
		move, err := board.ParseMove(fields[0], pos)
		if err != nil {
			return nil, fmt.Errorf("book: invalid move %q for %q: %w", fields[0], currentFEN, err)
		}

		b.positions[currentFEN] = append(b.positions[currentFEN], BookEntry{
			Move:      move,
			PlayCount: playCount,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return b, nil
}

// Probe selects a book move for pos using weighted-random selection by
// play_count^weight, or returns false on a miss (no entry, or ply_count
// beyond MaxBookPly).
func (b *Book) Probe(pos *board.Position, weight float64) (board.Move, bool) {
	if b == nil || pos.PlyCount() > MaxBookPly {
		return board.NoMove, false
	}

	entries, ok := b.positions[pos.FENNoCounters()]
	if !ok || len(entries) == 0 {
		return board.NoMove, false
	}

	weights := make([]float64, len(entries))
	total := 0.0
	for i, e := range entries {
		w := math.Pow(float64(e.PlayCount), weight)
		weights[i] = w
		total += w
	}

	if total <= 0 {
		return entries[0].Move, true
	}

	r := rand.Float64() * total
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if r < cumulative {
			return entries[i].Move, true
		}
	}
	return entries[len(entries)-1].Move, true
}

// ProbeAll returns every book entry for pos, sorted by descending play count,
// ignoring the ply_count gate.
func (b *Book) ProbeAll(pos *board.Position) []BookEntry {
	if b == nil {
		return nil
	}
	entries, ok := b.positions[pos.FENNoCounters()]
	if !ok {
		return nil
	}
	result := make([]BookEntry, len(entries))
	copy(result, entries)
	sort.Slice(result, func(i, j int) bool { return result[i].PlayCount > result[j].PlayCount })
	return result
}

// Size returns the number of distinct positions in the book.
func (b *Book) Size() int {
	if b == nil {
		return 0
	}
	return len(b.positions)
}
