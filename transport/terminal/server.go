// Package terminal plays the game on a text console: it reads commands line by
// line and prints the board after every accepted move.
package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/fading-tictactoe/internal/config"
	"github.com/rocketscienceinc/fading-tictactoe/internal/entity"
)

const (
	prompt        = "> "
	recentResults = 5
)

const helpText = `Commands:
  <row> <col>   place a mark, also written as row,col
  new, restart  start a new game
  scores        show standings and recent results
  help          show this message
  quit          leave the game
`

var errQuit = errors.New("quit")

type uGame interface {
	NewGame(ctx context.Context) (*entity.Session, error)
	MakeTurn(ctx context.Context, row, col int) (entity.MoveResult, error)
	Board(ctx context.Context) entity.BoardView

	Standings(ctx context.Context) (*entity.Standings, error)
	RecentResults(ctx context.Context, limit int) ([]*entity.GameRecord, error)
}

type handler func(ctx context.Context, out io.Writer) error

type Server struct {
	logger   *slog.Logger
	uGame    uGame
	renderer *renderer

	handlers map[string]handler
}

func New(logger *slog.Logger, uGame uGame, palette config.Palette) *Server {
	server := &Server{
		logger:   logger.With("component", "terminal"),
		uGame:    uGame,
		renderer: newRenderer(palette),

		handlers: make(map[string]handler),
	}

	server.handlers["new"] = server.handleNewGame
	server.handlers["restart"] = server.handleNewGame
	server.handlers["scores"] = server.handleScores
	server.handlers["help"] = server.handleHelp
	server.handlers["quit"] = server.handleQuit
	server.handlers["exit"] = server.handleQuit

	return server
}

// Start - runs the command loop until quit, end of input or ctx is canceled.
func (that *Server) Start(ctx context.Context, in io.Reader, out io.Writer) error {
	log := that.logger.With("method", "Start")

	lines, readErr := readLines(ctx, in)

	fmt.Fprint(out, "Fading tic-tac-toe. Type help for commands.\n")
	that.printState(ctx, out)

	for {
		fmt.Fprint(out, prompt)

		select {
		case <-ctx.Done():
			log.Info("input loop stopped", "reason", ctx.Err())
			return nil
		case line, ok := <-lines:
			if !ok {
				if err := <-readErr; err != nil {
					return fmt.Errorf("failed to read input: %w", err)
				}

				return nil
			}

			err := that.handleLine(ctx, line, out)
			if errors.Is(err, errQuit) {
				return nil
			}

			if err != nil {
				log.Error("error processing command", "command", line, "error", err)
				fmt.Fprintf(out, "Error: %v\n", err)
			}
		}
	}
}

// readLines - scans in on its own goroutine so a blocked read never holds up shutdown.
func readLines(ctx context.Context, in io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	readErr := make(chan error, 1)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				readErr <- nil
				return
			}
		}

		readErr <- scanner.Err()
	}()

	return lines, readErr
}

func (that *Server) handleLine(ctx context.Context, line string, out io.Writer) error {
	fields := strings.FieldsFunc(strings.TrimSpace(line), func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})

	if len(fields) == 0 {
		return nil
	}

	if handle, ok := that.handlers[strings.ToLower(fields[0])]; ok && len(fields) == 1 {
		return handle(ctx, out)
	}

	row, col, ok := parseCoord(fields)
	if !ok {
		fmt.Fprintf(out, "Unknown command %q. Type help for commands.\n", strings.TrimSpace(line))
		return nil
	}

	return that.handleTurn(ctx, row, col, out)
}

func parseCoord(fields []string) (int, int, bool) {
	if len(fields) != 2 {
		return 0, 0, false
	}

	row, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, false
	}

	col, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, false
	}

	return row, col, true
}
