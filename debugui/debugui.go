/*
Copyright (C) 2019-2020 Andreas T Jonsson

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package debugui is a full-screen terminal view of a halted machine's
// register file, carry flag, and recent BIOS call history, built on tcell
// the way the engine's own terminal video backend is. It is a
// post-mortem viewer, not a live stepper: the core runs to completion
// synchronously (spec §5), so there is no mid-execution state to
// repaint against.
package debugui

import (
	"fmt"

	"github.com/gdamore/tcell"

	"github.com/tmartin/floppybios/bios"
	"github.com/tmartin/floppybios/emulator/processor"
)

// Show renders m's final register state and recent call history in a
// full-screen terminal view, and blocks until the user presses Enter,
// Esc or Ctrl-C.
func Show(m *bios.Machine) error {
	tcell.SetEncodingFallback(tcell.EncodingFallbackASCII)

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	screen.Clear()
	draw(screen, m)
	screen.Show()

	for {
		switch ev := screen.PollEvent().(type) {
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyCtrlC || ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyEnter {
				return nil
			}
		case *tcell.EventResize:
			screen.Clear()
			draw(screen, m)
			screen.Show()
		}
	}
}

var (
	headingStyle = tcell.StyleDefault.Bold(true)
	normalStyle  = tcell.StyleDefault
)

func draw(screen tcell.Screen, m *bios.Machine) {
	row := 0
	row = puts(screen, 0, row, headingStyle, "floppybios — halted")
	row++

	row = puts(screen, 0, row, headingStyle, "Registers")
	row = drawRegisters(screen, row, m.Registers())
	row++

	stats := m.Stats()
	row = puts(screen, 0, row, normalStyle, fmt.Sprintf(
		"instructions=%d interrupts=%d", stats.NumInstructions, stats.NumInterrupts))
	row++

	row = puts(screen, 0, row, headingStyle, "Recent BIOS calls")
	for _, line := range tail(m.History(), 20) {
		row = puts(screen, 0, row, normalStyle, line)
	}

	puts(screen, 0, row+1, normalStyle, "press Enter/Esc to exit")
}

func drawRegisters(screen tcell.Screen, row int, r *processor.Registers) int {
	row = puts(screen, 2, row, normalStyle, fmt.Sprintf(
		"AX=%04X  BX=%04X  CX=%04X  DX=%04X", r.AX(), r.BX(), r.CX(), r.DX()))
	row = puts(screen, 2, row, normalStyle, fmt.Sprintf(
		"SI=%04X  DI=%04X  BP=%04X  SP=%04X", r.SI(), r.DI(), r.BP(), r.SP()))
	row = puts(screen, 2, row, normalStyle, fmt.Sprintf(
		"CS=%04X  DS=%04X  ES=%04X  SS=%04X  IP=%04X", r.CS(), r.DS(), r.ES(), r.SS(), r.IP))
	return puts(screen, 2, row, normalStyle, fmt.Sprintf("CF=%t", r.CF()))
}

func puts(screen tcell.Screen, col, row int, style tcell.Style, s string) int {
	for i, ch := range s {
		screen.SetContent(col+i, row, ch, nil, style)
	}
	return row + 1
}

func tail(lines []string, n int) []string {
	if len(lines) <= n {
		return lines
	}
	return lines[len(lines)-n:]
}
