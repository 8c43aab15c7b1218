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

package processor

import "github.com/tmartin/floppybios/emulator/memory"

// Stats tracks simple counters useful for debugging a boot session.
type Stats struct {
	NumInterrupts   uint32
	NumInstructions uint64
}

// InterruptHandler is invoked by a Processor when guest code executes
// INT n. Returning true tells the engine to resume execution after the
// INT instruction; returning false halts the engine before the next
// instruction fetch.
type InterruptHandler interface {
	HandleInterrupt(vector int, p Processor) bool
}

// Processor is the contract the BIOS core depends on. A real
// implementation decodes and executes real-mode x86 instructions; the
// BIOS core only ever touches it through this interface, so any engine
// satisfying it can stand in for the one in emulator/processor/cpu.
type Processor interface {
	GetRegisters() *Registers

	ReadByte(addr memory.Pointer) byte
	WriteByte(addr memory.Pointer, data byte)
	ReadBytes(addr memory.Pointer, count int) []byte
	WriteBytes(addr memory.Pointer, data []byte)

	// SetInterruptHandler installs the single handler the engine
	// upcalls into on every INT n. There is exactly one hook: the
	// handler itself dispatches on the vector number.
	SetInterruptHandler(handler InterruptHandler)

	// Start begins fetching instructions at the given linear address
	// and runs until the interrupt handler halts it or a HLT
	// instruction is decoded. It returns the final halt verdict.
	Start(entry memory.Pointer) bool

	GetStats() Stats
}
