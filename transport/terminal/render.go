package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/gookit/color"

	"github.com/rocketscienceinc/fading-tictactoe/internal/config"
	"github.com/rocketscienceinc/fading-tictactoe/internal/entity"
)

const emptyCell = "."

// renderer draws boards. Faded marks are shown in lower case so they stay
// distinguishable without colour.
type renderer struct {
	paint map[entity.Player]func(...any) string
	faded func(...any) string
}

func newRenderer(palette config.Palette) *renderer {
	if palette.Monochrome {
		return &renderer{
			paint: map[entity.Player]func(...any) string{
				entity.PlayerX: fmt.Sprint,
				entity.PlayerO: fmt.Sprint,
			},
			faded: fmt.Sprint,
		}
	}

	return &renderer{
		paint: map[entity.Player]func(...any) string{
			entity.PlayerX: color.HEX(palette.X).Sprint,
			entity.PlayerO: color.HEX(palette.O).Sprint,
		},
		faded: color.HEX(palette.Faded).Sprint,
	}
}

func (that *renderer) cell(cell entity.Cell) string {
	switch cell.State() {
	case entity.CellActive:
		return that.paint[cell.Owner](cell.Owner.String())
	case entity.CellFaded:
		return that.faded(strings.ToLower(cell.Owner.String()))
	default:
		return emptyCell
	}
}

func (that *renderer) player(player entity.Player) string {
	paint, ok := that.paint[player]
	if !ok {
		return player.String()
	}

	return paint(player.String())
}

// board writes the cells with row and column indices, e.g.
//
//	   0 1 2
//	0  X . .
//	1  . O .
//	2  . . x
func (that *renderer) board(out io.Writer, view entity.BoardView) {
	width := len(fmt.Sprint(view.Size() - 1))

	var sb strings.Builder

	sb.WriteString(strings.Repeat(" ", width+1))
	for col := 0; col < view.Size(); col++ {
		fmt.Fprintf(&sb, " %*d", width, col)
	}
	sb.WriteString("\n")

	for row, cells := range view.Cells {
		fmt.Fprintf(&sb, "%*d ", width, row)
		for _, cell := range cells {
			fmt.Fprintf(&sb, " %s%s", strings.Repeat(" ", width-1), that.cell(cell))
		}
		sb.WriteString("\n")
	}

	fmt.Fprint(out, sb.String())
}
