package terminal

import (
	"context"
	"fmt"
	"io"

	"github.com/rocketscienceinc/fading-tictactoe/internal/entity"
)

func (that *Server) handleTurn(ctx context.Context, row, col int, out io.Writer) error {
	result, err := that.uGame.MakeTurn(ctx, row, col)
	if !result.Accepted() {
		fmt.Fprintf(out, "Move refused: %v\n", err)
		return nil
	}

	if result.Evicted != nil {
		fmt.Fprintf(out, "%s's faded mark at %s is cleared.\n", result.Player, result.Evicted)
	}

	if result.IsWin() {
		that.renderer.board(out, that.uGame.Board(ctx))
		fmt.Fprintf(out, "%s wins! In %d moves!\n", result.Player, result.MovesTaken)
		fmt.Fprint(out, "Type new to play again.\n")

		return nil
	}

	if result.Faded != nil {
		fmt.Fprintf(out, "%s's mark at %s fades.\n", result.Player, result.Faded)
	}

	that.printState(ctx, out)

	return nil
}

func (that *Server) handleNewGame(ctx context.Context, out io.Writer) error {
	if _, err := that.uGame.NewGame(ctx); err != nil {
		return fmt.Errorf("failed to start a new game: %w", err)
	}

	fmt.Fprint(out, "New game.\n")
	that.printState(ctx, out)

	return nil
}

func (that *Server) handleScores(ctx context.Context, out io.Writer) error {
	standings, err := that.uGame.Standings(ctx)
	if err != nil {
		return fmt.Errorf("failed to get standings: %w", err)
	}

	records, err := that.uGame.RecentResults(ctx, recentResults)
	if err != nil {
		return fmt.Errorf("failed to get recent results: %w", err)
	}

	fmt.Fprintf(out, "%s: %d  %s: %d  (%d games)\n",
		that.renderer.player(entity.PlayerX), standings.Wins[entity.PlayerX],
		that.renderer.player(entity.PlayerO), standings.Wins[entity.PlayerO],
		standings.Games,
	)

	for _, record := range records {
		fmt.Fprintf(out, "  %s  %s won in %d moves on %dx%d, limit %d\n",
			record.FinishedAt.Local().Format("2006-01-02 15:04"),
			record.Winner, record.MovesTaken,
			record.BoardSize, record.BoardSize, record.ActiveMarkLimit,
		)
	}

	return nil
}

func (that *Server) handleHelp(_ context.Context, out io.Writer) error {
	fmt.Fprint(out, helpText)
	return nil
}

func (that *Server) handleQuit(_ context.Context, out io.Writer) error {
	fmt.Fprint(out, "Bye!\n")
	return errQuit
}

func (that *Server) printState(ctx context.Context, out io.Writer) {
	view := that.uGame.Board(ctx)

	that.renderer.board(out, view)

	if view.Terminal {
		fmt.Fprintf(out, "%s has won. Type new to play again.\n", view.Winner)
		return
	}

	fmt.Fprintf(out, "Turn: %s\n", that.renderer.player(view.CurrentPlayer))
}
