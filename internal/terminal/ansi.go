package terminal

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	ESC   = "\x1b"
	CSI   = ESC + "["
	Reset = CSI + "0m"
)

// MoveTo positions the cursor at row, col (1-based).
func MoveTo(row, col int) string {
	return fmt.Sprintf("%s%d;%dH", CSI, row, col)
}

// ClearScreen clears the entire screen.
func ClearScreen() string {
	return CSI + "2J"
}

// HideCursor hides the terminal cursor.
func HideCursor() string {
	return CSI + "?25l"
}

// ShowCursor shows the terminal cursor.
func ShowCursor() string {
	return CSI + "?25h"
}

// EnableAltScreen switches to the alternate screen buffer.
func EnableAltScreen() string {
	return CSI + "?1049h"
}

// DisableAltScreen switches back from the alternate screen buffer.
func DisableAltScreen() string {
	return CSI + "?1049l"
}

// Encode renders g as one ANSI frame starting at the top-left corner. SGR is
// only emitted when colours change from the previous cell.
func Encode(g *Grid) string {
	var sb strings.Builder
	sb.Grow(g.W * g.H * 4)
	sb.WriteString(MoveTo(1, 1))

	var last Cell
	first := true
	for y := 0; y < g.H; y++ {
		if y > 0 {
			sb.WriteString(MoveTo(y+1, 1))
		}
		for x := 0; x < g.W; x++ {
			c := g.At(x, y)
			if first || c.Fg != last.Fg || c.Bg != last.Bg {
				writeSGR(&sb, c)
				first = false
			}
			last = c
			ch := c.Ch
			if ch == 0 {
				ch = ' '
			}
			sb.WriteRune(ch)
		}
	}
	sb.WriteString(Reset)
	return sb.String()
}

func writeSGR(sb *strings.Builder, c Cell) {
	sb.WriteString("\x1b[0;38;2;")
	writeRGB(sb, c.Fg)
	sb.WriteString(";48;2;")
	writeRGB(sb, c.Bg)
	sb.WriteByte('m')
}

func writeRGB(sb *strings.Builder, rgb [3]uint8) {
	sb.WriteString(strconv.Itoa(int(rgb[0])))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(rgb[1])))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(rgb[2])))
}
