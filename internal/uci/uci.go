// Package uci implements the Universal Chess Interface protocol over stdin/stdout.
package uci

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/Water-Engine/cactus/internal/board"
	"github.com/Water-Engine/cactus/internal/book"
	"github.com/Water-Engine/cactus/internal/config"
	"github.com/Water-Engine/cactus/internal/controller"
	"github.com/Water-Engine/cactus/internal/engine"
)

const (
	engineName   = "Cactus"
	engineAuthor = "Cactus contributors"
)

// UCI drives the protocol loop: reads commands from in, writes responses to
// out, and dispatches search work to a Controller.
type UCI struct {
	in  *bufio.Scanner
	out *bufio.Writer

	ctrl   *controller.Controller
	logger *log.Logger
}

// New wires a UCI handler around the given config, reading from stdin and
// writing to stdout.
func New(cfg config.Config) *UCI {
	logger := newLogger(cfg.LogPath)

	var ob *book.Book
	if cfg.BookPath != "" {
		var err error
		ob, err = book.Load(cfg.BookPath)
		if err != nil {
			logger.Printf("failed to load opening book %s: %v", cfg.BookPath, err)
			ob = book.New()
		}
	} else {
		ob = book.New()
	}

	u := &UCI{
		in:     bufio.NewScanner(os.Stdin),
		out:    bufio.NewWriter(os.Stdout),
		logger: logger,
	}

	u.ctrl = controller.New(cfg.HashSizeMB, ob, u, logger)
	u.ctrl.SetBookWeight(cfg.BookWeight)
	u.ctrl.SetMaxThinkTime(cfg.MaxThinkTimeMs)

	return u
}

func newLogger(path string) *log.Logger {
	if path == "" {
		return log.New(os.Stderr, "", log.LstdFlags)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return log.New(os.Stderr, "", log.LstdFlags)
	}
	return log.New(f, "", log.LstdFlags)
}

// Run consumes UCI commands from stdin until "quit".
func (u *UCI) Run() {
	for u.in.Scan() {
		line := strings.TrimSpace(u.in.Text())
		if line == "" {
			continue
		}
		u.logger.Printf("< %s", line)

		fields := strings.Fields(line)
		cmd := strings.ToLower(fields[0])
		args := fields[1:]

		switch cmd {
		case "uci":
			u.handleUCI()
		case "isready":
			u.writeLine("readyok")
		case "ucinewgame":
			u.ctrl.NewGame()
		case "position":
			u.handlePosition(args)
		case "go":
			u.handleGo(args)
		case "stop":
			u.ctrl.Stop()
		case "d":
			u.handleDebug()
		case "perft":
			u.handlePerft(args)
		case "quit":
			u.ctrl.Quit()
			u.out.Flush()
			return
		default:
			u.logger.Printf("unknown command: %s", line)
		}
		u.out.Flush()
	}
}

func (u *UCI) writeLine(s string) {
	fmt.Fprintln(u.out, s)
}

func (u *UCI) handleUCI() {
	u.writeLine(fmt.Sprintf("id name %s", engineName))
	u.writeLine(fmt.Sprintf("id author %s", engineAuthor))
	u.writeLine("option name Hash type spin default 64 min 1 max 4096")
	u.writeLine("uciok")
}

// handlePosition parses:
//
//	position startpos [moves ...]
//	position fen <FEN> [moves ...]
func (u *UCI) handlePosition(args []string) {
	if len(args) == 0 {
		return
	}

	var pos *board.Position
	var moveStart int

	switch args[0] {
	case "startpos":
		pos = board.NewPosition()
		moveStart = 1
	case "fen":
		fenEnd := len(args)
		for i := 1; i < len(args); i++ {
			if args[i] == "moves" {
				fenEnd = i
				break
			}
		}
		if fenEnd <= 1 {
			return
		}
		fenStr := strings.Join(args[1:fenEnd], " ")
		parsed, err := board.ParseFEN(fenStr)
		if err != nil {
			u.logger.Printf("invalid FEN %q: %v", fenStr, err)
			return
		}
		pos = parsed
		moveStart = fenEnd
	default:
		return
	}

	if moveStart < len(args) && args[moveStart] == "moves" {
		moveStart++
	}

	for i := moveStart; i < len(args); i++ {
		move, err := board.ParseMove(args[i], pos)
		if err != nil {
			u.logger.Printf("invalid move %q: %v", args[i], err)
			return
		}
		pos.MakeMove(move)
	}

	u.ctrl.SetPosition(pos)
}

func (u *UCI) handleGo(args []string) {
	limits := engine.UCILimits{}

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "depth":
			if i+1 < len(args) {
				limits.Depth, _ = strconv.Atoi(args[i+1])
				i++
			}
		case "nodes":
			if i+1 < len(args) {
				n, _ := strconv.ParseUint(args[i+1], 10, 64)
				limits.Nodes = n
				i++
			}
		case "movetime":
			if i+1 < len(args) {
				ms, _ := strconv.Atoi(args[i+1])
				limits.MoveTime = time.Duration(ms) * time.Millisecond
				i++
			}
		case "infinite":
			limits.Infinite = true
		case "ponder":
			limits.Ponder = true
		case "wtime":
			if i+1 < len(args) {
				ms, _ := strconv.Atoi(args[i+1])
				limits.Time[board.White] = time.Duration(ms) * time.Millisecond
				i++
			}
		case "btime":
			if i+1 < len(args) {
				ms, _ := strconv.Atoi(args[i+1])
				limits.Time[board.Black] = time.Duration(ms) * time.Millisecond
				i++
			}
		case "winc":
			if i+1 < len(args) {
				ms, _ := strconv.Atoi(args[i+1])
				limits.Inc[board.White] = time.Duration(ms) * time.Millisecond
				i++
			}
		case "binc":
			if i+1 < len(args) {
				ms, _ := strconv.Atoi(args[i+1])
				limits.Inc[board.Black] = time.Duration(ms) * time.Millisecond
				i++
			}
		case "movestogo":
			if i+1 < len(args) {
				limits.MovesToGo, _ = strconv.Atoi(args[i+1])
				i++
			}
		}
	}

	u.ctrl.Go(limits)
}

// SendInfo implements controller.Sender, emitting a UCI "info" line.
func (u *UCI) SendInfo(depth, eval int, pv []board.Move, nodes uint64, elapsed time.Duration, hashFull int) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "info depth %d", depth)

	if eval > engine.MateScore-1000 {
		fmt.Fprintf(&sb, " score mate %d", (engine.MateScore-eval+1)/2)
	} else if eval < -engine.MateScore+1000 {
		fmt.Fprintf(&sb, " score mate %d", -(engine.MateScore+eval+1)/2)
	} else {
		fmt.Fprintf(&sb, " score cp %d", eval)
	}

	fmt.Fprintf(&sb, " nodes %d time %d", nodes, elapsed.Milliseconds())
	if elapsed > 0 {
		nps := float64(nodes) / elapsed.Seconds()
		fmt.Fprintf(&sb, " nps %.0f", nps)
	}
	fmt.Fprintf(&sb, " hashfull %d", hashFull)

	if len(pv) > 0 {
		strs := make([]string, len(pv))
		for i, m := range pv {
			strs[i] = m.String()
		}
		fmt.Fprintf(&sb, " pv %s", strings.Join(strs, " "))
	}

	u.writeLine(sb.String())
	u.out.Flush()
}

// SendBestMove implements controller.Sender, emitting the UCI "bestmove" line.
func (u *UCI) SendBestMove(move board.Move) {
	if move == board.NoMove {
		u.writeLine("bestmove 0000")
	} else {
		u.writeLine(fmt.Sprintf("bestmove %s", move.String()))
	}
	u.out.Flush()
}

// handleDebug prints a board diagram, FEN, and Zobrist key, colorizing
// square backgrounds when the terminal supports it.
func (u *UCI) handleDebug() {
	pos := u.ctrl.Position()

	if color.NoColor {
		u.writeLine(pos.String())
		return
	}

	light := color.New(color.BgWhite, color.FgBlack)
	dark := color.New(color.BgHiBlack, color.FgWhite)

	var sb strings.Builder
	sb.WriteByte('\n')
	for rank := 7; rank >= 0; rank-- {
		sb.WriteString(fmt.Sprintf("%d  ", rank+1))
		for file := 0; file < 8; file++ {
			sq := board.NewSquare(file, rank)
			piece := pos.PieceAt(sq)
			glyph := " . "
			if piece != board.NoPiece {
				glyph = " " + piece.String() + " "
			}
			if (file+rank)%2 == 0 {
				sb.WriteString(dark.Sprint(glyph))
			} else {
				sb.WriteString(light.Sprint(glyph))
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("\n    a  b  c  d  e  f  g  h\n\n")
	fmt.Fprintf(&sb, "Side to move: %s\n", pos.SideToMove())
	fmt.Fprintf(&sb, "Castling: %s\n", pos.CastlingRights())
	fmt.Fprintf(&sb, "En passant: %s\n", pos.EnPassant())
	fmt.Fprintf(&sb, "Halfmove clock: %d\n", pos.HalfMoveClock())
	fmt.Fprintf(&sb, "Fullmove number: %d\n", pos.FullMoveNumber())
	fmt.Fprintf(&sb, "Zobrist: %016x\n", pos.Hash())
	fmt.Fprintf(&sb, "FEN: %s\n", pos.FEN())

	u.writeLine(sb.String())
}

// handlePerft runs perft (or, with "divide", perft divide) to the given
// depth from the current position.
func (u *UCI) handlePerft(args []string) {
	if len(args) == 0 {
		return
	}

	divide := false
	depthArg := args[0]
	if args[0] == "divide" {
		divide = true
		if len(args) < 2 {
			return
		}
		depthArg = args[1]
	}

	depth, err := strconv.Atoi(depthArg)
	if err != nil || depth < 0 {
		return
	}

	pos := u.ctrl.Position()
	start := time.Now()

	if divide {
		entries := board.PerftDivide(pos, depth)
		var total int64
		for _, e := range entries {
			u.writeLine(e.String())
			total += e.Nodes
		}
		u.writeLine(fmt.Sprintf("\nTotal: %d", total))
	} else {
		nodes := board.Perft(pos, depth)
		elapsed := time.Since(start)
		u.writeLine(fmt.Sprintf("Nodes: %d", nodes))
		u.writeLine(fmt.Sprintf("Time: %v", elapsed))
		if elapsed > 0 {
			u.writeLine(fmt.Sprintf("NPS: %.0f", float64(nodes)/elapsed.Seconds()))
		}
	}
}
