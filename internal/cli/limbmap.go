package cli

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/limbcalc/internal/ui"
)

const (
	// MaxMapLimbs caps the number of limbs drawn by RenderLimbMap.
	MaxMapLimbs = 16
	// limbMapWidth is the target width in columns of one row of cells.
	limbMapWidth = 76
)

// SplitLimbs cuts x into width-bit limbs, least significant first. Zero is
// one zero limb. The limbs are returned as big.Int values so width 64 needs
// no special case.
func SplitLimbs(x *big.Int, width uint) []*big.Int {
	if width == 0 {
		return nil
	}
	mask := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), width), big.NewInt(1))
	rest := new(big.Int).Set(x)
	limbs := []*big.Int{}
	for {
		limbs = append(limbs, new(big.Int).And(rest, mask))
		rest.Rsh(rest, width)
		if rest.Sign() == 0 {
			return limbs
		}
	}
}

// RenderLimbMap draws the limbs of x as framed cells, least significant
// first, each labeled with its index and showing its width bits with the
// most significant bit on the left. Only the first MaxMapLimbs limbs are
// drawn; a trailer counts the rest.
func RenderLimbMap(x *big.Int, width uint, palette ui.LimbPalette) string {
	limbs := SplitLimbs(x, width)
	if len(limbs) == 0 {
		return ""
	}
	hidden := 0
	if len(limbs) > MaxMapLimbs {
		hidden = len(limbs) - MaxMapLimbs
		limbs = limbs[:MaxMapLimbs]
	}

	one := lipgloss.NewStyle().Foreground(palette.One).Bold(true)
	zero := lipgloss.NewStyle().Foreground(palette.Zero)
	label := lipgloss.NewStyle().Foreground(palette.Label)
	cell := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(palette.Border).
		Padding(0, 1)

	cells := make([]string, len(limbs))
	for i, limb := range limbs {
		var bits strings.Builder
		for b := int(width) - 1; b >= 0; b-- {
			if limb.Bit(b) == 1 {
				bits.WriteString(one.Render("1"))
			} else {
				bits.WriteString(zero.Render("0"))
			}
		}
		cells[i] = cell.Render(lipgloss.JoinVertical(lipgloss.Left,
			label.Render(fmt.Sprintf("L%d", i)), bits.String()))
	}

	perRow := max(1, limbMapWidth/(int(width)+4))
	var rows []string
	for start := 0; start < len(cells); start += perRow {
		end := min(start+perRow, len(cells))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells[start:end]...))
	}
	out := lipgloss.JoinVertical(lipgloss.Left, rows...)
	if hidden > 0 {
		out += fmt.Sprintf("\n... %d more limb(s)", hidden)
	}
	return out
}
