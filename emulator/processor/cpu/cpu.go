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

// Package cpu implements a small real-mode x86 engine: the "external
// collaborator" the BIOS core is written against (see
// emulator/processor.Processor). It decodes enough of the 8086
// instruction set to single-step boot sectors and test fixtures; it is
// not a complete ISA implementation, and doesn't need to be, since the
// BIOS core only ever calls through the narrow Processor interface.
package cpu

import (
	"log"

	"github.com/tmartin/floppybios/emulator/memory"
	"github.com/tmartin/floppybios/emulator/processor"
)

// CPU is a real-mode engine operating over a flat byte slice of guest
// memory, addressed the way real hardware does: linear = segment*16 + offset.
type CPU struct {
	processor.Registers

	mem     []byte
	handler processor.InterruptHandler
	stats   processor.Stats
}

// New returns a CPU with memSize bytes of guest memory. memSize is
// clamped to the 20-bit real-mode address space.
func New(memSize int) *CPU {
	if memSize <= 0 {
		memSize = 0x10000
	}
	if memSize > 0x100000 {
		memSize = 0x100000
	}
	return &CPU{mem: make([]byte, memSize)}
}

func (c *CPU) GetRegisters() *processor.Registers {
	return &c.Registers
}

func (c *CPU) GetStats() processor.Stats {
	return c.stats
}

func (c *CPU) SetInterruptHandler(handler processor.InterruptHandler) {
	c.handler = handler
}

func (c *CPU) ReadByte(addr memory.Pointer) byte {
	if int(addr) >= len(c.mem) {
		return 0
	}
	return c.mem[addr]
}

func (c *CPU) WriteByte(addr memory.Pointer, data byte) {
	if int(addr) >= len(c.mem) {
		return
	}
	c.mem[addr] = data
}

func (c *CPU) ReadBytes(addr memory.Pointer, count int) []byte {
	out := make([]byte, count)
	for i := 0; i < count; i++ {
		out[i] = c.ReadByte(addr + memory.Pointer(i))
	}
	return out
}

func (c *CPU) WriteBytes(addr memory.Pointer, data []byte) {
	for i, b := range data {
		c.WriteByte(addr+memory.Pointer(i), b)
	}
}

func (c *CPU) readWord(addr memory.Pointer) uint16 {
	return uint16(c.ReadByte(addr)) | uint16(c.ReadByte(addr+1))<<8
}

func (c *CPU) writeWord(addr memory.Pointer, v uint16) {
	c.WriteByte(addr, byte(v))
	c.WriteByte(addr+1, byte(v>>8))
}

// Start loads CS:IP from entry (segment 0, offset = entry) and runs
// until a HLT is decoded (true), the interrupt handler halts execution
// on an unrecognised vector (false), or an opcode this engine does not
// implement is decoded (false).
func (c *CPU) Start(entry memory.Pointer) bool {
	c.SetCS(0)
	c.IP = uint16(entry)

	for {
		ok, halt := c.step()
		if halt {
			return ok
		}
	}
}

// step decodes and executes one instruction. halt reports whether
// execution should stop; ok is the verdict to return from Start when
// halt is true.
func (c *CPU) step() (ok bool, halt bool) {
	c.stats.NumInstructions++
	op := c.fetchByte()

	switch {
	case op == 0x90: // NOP

	case op >= 0x91 && op <= 0x97: // XCHG AX, reg16
		c.Exchange(op)

	case op >= 0xB0 && op <= 0xB7: // MOV reg8, imm8
		c.setReg8(op-0xB0, c.fetchByte())

	case op >= 0xB8 && op <= 0xBF: // MOV reg16, imm16
		c.setReg16(op-0xB8, c.fetchWord())

	case op >= 0x50 && op <= 0x57: // PUSH reg16
		c.push(c.reg16(op - 0x50))

	case op >= 0x58 && op <= 0x5F: // POP reg16
		c.setReg16(op-0x58, c.pop())

	case op >= 0x40 && op <= 0x47: // INC reg16
		r := op - 0x40
		c.setReg16(r, c.addSub16(c.reg16(r), 1, false))

	case op >= 0x48 && op <= 0x4F: // DEC reg16
		r := op - 0x48
		c.setReg16(r, c.addSub16(c.reg16(r), 1, true))

	case op == 0x04: // ADD AL, imm8
		c.SetAL(c.addSub8(c.AL(), c.fetchByte(), false))
	case op == 0x05: // ADD AX, imm16
		c.SetAX(c.addSub16(c.AX(), c.fetchWord(), false))
	case op == 0x2C: // SUB AL, imm8
		c.SetAL(c.addSub8(c.AL(), c.fetchByte(), true))
	case op == 0x2D: // SUB AX, imm16
		c.SetAX(c.addSub16(c.AX(), c.fetchWord(), true))
	case op == 0x3C: // CMP AL, imm8
		c.addSub8(c.AL(), c.fetchByte(), true)
	case op == 0x3D: // CMP AX, imm16
		c.addSub16(c.AX(), c.fetchWord(), true)

	case op == 0xA4: // MOVSB
		c.movsb()
	case op == 0xAA: // STOSB
		c.stosb()
	case op == 0xAC: // LODSB
		c.lodsb()

	case op == 0xE0: // LOOPNE/LOOPNZ
		c.loop(func() bool { return !c.GetBool(processor.Zero) })
	case op == 0xE1: // LOOPE/LOOPZ
		c.loop(func() bool { return c.GetBool(processor.Zero) })
	case op == 0xE2: // LOOP
		c.loop(func() bool { return true })

	case op == 0xE8: // CALL rel16
		rel := int16(c.fetchWord())
		ret := c.IP
		c.push(ret)
		c.IP = uint16(int32(c.IP) + int32(rel))
	case op == 0xC3: // RET
		c.IP = c.pop()

	case op == 0xE9: // JMP rel16
		rel := int16(c.fetchWord())
		c.IP = uint16(int32(c.IP) + int32(rel))
	case op == 0xEB: // JMP rel8
		rel := int8(c.fetchByte())
		c.IP = uint16(int32(c.IP) + int32(rel))

	case op >= 0x70 && op <= 0x7F: // Jcc rel8
		rel := int8(c.fetchByte())
		if c.condition(op & 0xF) {
			c.IP = uint16(int32(c.IP) + int32(rel))
		}

	case op == 0x9C: // PUSHF
		c.push(c.Flags.Load())
	case op == 0x9D: // POPF
		c.Flags.Store(c.pop())

	case op == 0xCF: // IRET
		c.IP = c.pop()
		c.SetCS(c.pop())
		c.Flags.Store(c.pop())

	case op == 0xF8: // CLC
		c.SetBool(processor.Carry, false)
	case op == 0xF9: // STC
		c.SetBool(processor.Carry, true)
	case op == 0xFA: // CLI
		c.SetBool(processor.InterruptEnable, false)
	case op == 0xFB: // STI
		c.SetBool(processor.InterruptEnable, true)
	case op == 0xFC: // CLD
		c.SetBool(processor.Direction, false)
	case op == 0xFD: // STD
		c.SetBool(processor.Direction, true)

	case op == 0xCD: // INT imm8
		vector := int(c.fetchByte())
		ok := c.doInterrupt(vector)
		return ok, !ok

	case op == 0xF4: // HLT
		return true, true

	default:
		log.Printf("cpu: unimplemented opcode 0x%02X at %s", op, memory.NewAddress(c.CS(), c.IP-1))
		return false, true
	}

	return true, false
}

func (c *CPU) doInterrupt(vector int) bool {
	c.stats.NumInterrupts++
	if c.handler == nil {
		return false
	}
	return c.handler.HandleInterrupt(vector, c)
}

func (c *CPU) fetchByte() byte {
	v := c.ReadByte(memory.NewPointer(c.CS(), c.IP))
	c.IP++
	return v
}

func (c *CPU) fetchWord() uint16 {
	v := c.readWord(memory.NewPointer(c.CS(), c.IP))
	c.IP += 2
	return v
}

func (c *CPU) push(v uint16) {
	c.SetSP(c.SP() - 2)
	c.writeWord(memory.NewPointer(c.SS(), c.SP()), v)
}

func (c *CPU) pop() uint16 {
	v := c.readWord(memory.NewPointer(c.SS(), c.SP()))
	c.SetSP(c.SP() + 2)
	return v
}

func (c *CPU) loop(keepGoing func() bool) {
	rel := int8(c.fetchByte())
	c.SetCX(c.CX() - 1)
	if c.CX() != 0 && keepGoing() {
		c.IP = uint16(int32(c.IP) + int32(rel))
	}
}

func (c *CPU) movsb() {
	b := c.ReadByte(memory.NewPointer(c.DS(), c.SI()))
	c.WriteByte(memory.NewPointer(c.ES(), c.DI()), b)
	c.stepSI()
	c.stepDI()
}

func (c *CPU) stosb() {
	c.WriteByte(memory.NewPointer(c.ES(), c.DI()), c.AL())
	c.stepDI()
}

func (c *CPU) lodsb() {
	c.SetAL(c.ReadByte(memory.NewPointer(c.DS(), c.SI())))
	c.stepSI()
}

func (c *CPU) stepSI() {
	if c.GetBool(processor.Direction) {
		c.SetSI(c.SI() - 1)
	} else {
		c.SetSI(c.SI() + 1)
	}
}

func (c *CPU) stepDI() {
	if c.GetBool(processor.Direction) {
		c.SetDI(c.DI() - 1)
	} else {
		c.SetDI(c.DI() + 1)
	}
}

func (c *CPU) reg16(r byte) uint16 {
	switch r & 7 {
	case 0:
		return c.AX()
	case 1:
		return c.CX()
	case 2:
		return c.DX()
	case 3:
		return c.BX()
	case 4:
		return c.SP()
	case 5:
		return c.BP()
	case 6:
		return c.SI()
	default:
		return c.DI()
	}
}

func (c *CPU) setReg16(r byte, v uint16) {
	switch r & 7 {
	case 0:
		c.SetAX(v)
	case 1:
		c.SetCX(v)
	case 2:
		c.SetDX(v)
	case 3:
		c.SetBX(v)
	case 4:
		c.SetSP(v)
	case 5:
		c.SetBP(v)
	case 6:
		c.SetSI(v)
	default:
		c.SetDI(v)
	}
}

func (c *CPU) setReg8(r byte, v byte) {
	switch r & 7 {
	case 0:
		c.SetAL(v)
	case 1:
		c.SetCL(v)
	case 2:
		c.SetDL(v)
	case 3:
		c.SetBL(v)
	case 4:
		c.SetAH(v)
	case 5:
		c.SetCH(v)
	case 6:
		c.SetDH(v)
	default:
		c.SetBH(v)
	}
}
