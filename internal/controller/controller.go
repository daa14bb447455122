// Package controller wires the UCI protocol to a single Position and one
// long-lived search worker: it owns the position under a mutex, dispatches
// opening-book lookups and time budgets, and signals the worker through a
// condition variable rather than spawning a goroutine per search.
package controller

import (
	"log"
	"sync"
	"time"

	"github.com/Water-Engine/cactus/internal/board"
	"github.com/Water-Engine/cactus/internal/book"
	"github.com/Water-Engine/cactus/internal/engine"
)

// Sender emits UCI output lines. Implementations must be safe to call from
// the search worker goroutine, since the completion callback runs there.
type Sender interface {
	SendInfo(depth, eval int, pv []board.Move, nodes uint64, elapsed time.Duration, hashFull int)
	SendBestMove(move board.Move)
}

// SearchRequest describes one search the worker should run.
type SearchRequest struct {
	Limits engine.UCILimits
}

// Controller maintains a single Position owned by the engine and one
// long-lived search worker blocked on a condition variable between
// searches.
type Controller struct {
	mu       sync.Mutex
	cond     *sync.Cond
	pos      *board.Position
	request  *SearchRequest
	quitting bool
	searching bool

	searcher *engine.Searcher
	tt       *engine.TranspositionTable
	timeMgr  *engine.TimeManager
	book     *book.Book
	sender   Sender

	bookWeight     float64
	maxThinkTimeMs int

	logger *log.Logger

	searchDone chan struct{}
}

// New creates a controller over a fresh starting position, with its own
// transposition table and searcher, and starts the background worker.
func New(ttSizeMB int, ob *book.Book, sender Sender, logger *log.Logger) *Controller {
	tt := engine.NewTranspositionTable(ttSizeMB)
	c := &Controller{
		pos:        board.NewPosition(),
		searcher:   engine.NewSearcher(tt),
		tt:         tt,
		timeMgr:    engine.NewTimeManager(),
		book:       ob,
		sender:     sender,
		bookWeight: 0.5,
		logger:     logger,
	}
	c.cond = sync.NewCond(&c.mu)
	go c.workerLoop()
	return c
}

// SetBookWeight sets the w exponent (clamped to [0,1]) used for weighted
// random book-move selection.
func (c *Controller) SetBookWeight(w float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if w < 0 {
		w = 0
	}
	if w > 1 {
		w = 1
	}
	c.bookWeight = w
}

// SetMaxThinkTime installs an optional upper bound on the computed think
// time, in milliseconds. 0 disables the cap.
func (c *Controller) SetMaxThinkTime(ms int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.maxThinkTimeMs = ms
}

// NewGame clears the transposition table, killers, and history, and resets
// the owned position to the standard starting position.
func (c *Controller) NewGame() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.searcher.Clear()
	c.pos = board.NewPosition()
}

// SetPosition installs pos as the controller's owned position, replacing
// whatever it held before (used by the `position` UCI command).
func (c *Controller) SetPosition(pos *board.Position) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pos = pos
}

// Position returns a read-only snapshot of the controller's position.
func (c *Controller) Position() *board.Position {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pos.Clone()
}

// Go installs a search request and wakes the worker. If the book holds a
// move for the current position, the worker is skipped entirely and the
// move is published immediately, matching "on a book miss it wakes the
// search worker" (§5 control flow).
func (c *Controller) Go(limits engine.UCILimits) {
	c.mu.Lock()

	if move, found := c.book.Probe(c.pos, c.bookWeight); found {
		pos := c.pos
		c.mu.Unlock()
		c.logger.Printf("book move %s for %s", move.String(), pos.FEN())
		c.sender.SendBestMove(move)
		return
	}

	c.request = &SearchRequest{Limits: limits}
	c.searchDone = make(chan struct{})
	c.mu.Unlock()

	c.cond.Signal()
}

// Stop cancels the in-progress search; the worker publishes bestmove from
// its partial result before returning to sleep.
func (c *Controller) Stop() {
	c.mu.Lock()
	done := c.searchDone
	searching := c.searching
	c.mu.Unlock()

	c.searcher.EndSearch()
	if searching && done != nil {
		<-done
	}
}

// Quit stops any running search, then signals the worker to exit; it does
// not wait for the worker goroutine to return.
func (c *Controller) Quit() {
	c.Stop()
	c.mu.Lock()
	c.quitting = true
	c.mu.Unlock()
	c.cond.Signal()
}

// workerLoop is the single long-lived search worker: it sleeps on the
// condition variable between searches, and on wake acquires the position
// and searcher, runs the search, and publishes the result.
func (c *Controller) workerLoop() {
	for {
		c.mu.Lock()
		for c.request == nil && !c.quitting {
			c.cond.Wait()
		}
		if c.quitting {
			c.mu.Unlock()
			return
		}

		req := c.request
		c.request = nil
		pos := c.pos
		done := c.searchDone
		c.searching = true
		c.mu.Unlock()

		c.timeMgr.Init(req.Limits, pos.SideToMove(), pos.PlyCount(), c.maxThinkTimeMs)
		deadline := c.timeMgr.Deadline()
		if req.Limits.Infinite {
			deadline = time.Time{}
		}

		maxDepth := req.Limits.Depth
		start := time.Now()

		c.searcher.StartSearch(pos, maxDepth, deadline, func(depth, eval int, pv []board.Move, nodes uint64) {
			c.sender.SendInfo(depth, eval, pv, nodes, time.Since(start), c.tt.HashFull())
		})

		c.mu.Lock()
		c.searching = false
		c.mu.Unlock()

		c.sender.SendBestMove(c.searcher.BestMove())
		close(done)
	}
}
