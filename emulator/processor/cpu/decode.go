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

package cpu

import "github.com/tmartin/floppybios/emulator/processor"

// addSub8 computes a+b or a-b, updates CF/ZF/SF/OF/PF and returns the result.
func (c *CPU) addSub8(a, b byte, sub bool) byte {
	var r int
	if sub {
		r = int(a) - int(b)
	} else {
		r = int(a) + int(b)
	}
	res := byte(r)

	c.SetBool(processor.Carry, r < 0 || r > 0xFF)
	c.setZSP8(res)
	if sub {
		c.SetBool(processor.Overflow, ((a^b)&(a^res))&0x80 != 0)
	} else {
		c.SetBool(processor.Overflow, (^(a^b)&(a^res))&0x80 != 0)
	}
	return res
}

// addSub16 is the 16-bit counterpart of addSub8.
func (c *CPU) addSub16(a, b uint16, sub bool) uint16 {
	var r int32
	if sub {
		r = int32(a) - int32(b)
	} else {
		r = int32(a) + int32(b)
	}
	res := uint16(r)

	c.SetBool(processor.Carry, r < 0 || r > 0xFFFF)
	c.setZS16(res)
	if sub {
		c.SetBool(processor.Overflow, ((a^b)&(a^res))&0x8000 != 0)
	} else {
		c.SetBool(processor.Overflow, (^(a^b)&(a^res))&0x8000 != 0)
	}
	return res
}

func (c *CPU) setZSP8(v byte) {
	c.SetBool(processor.Zero, v == 0)
	c.SetBool(processor.Sign, v&0x80 != 0)
	c.SetBool(processor.Parity, parityEven(v))
}

func (c *CPU) setZS16(v uint16) {
	c.SetBool(processor.Zero, v == 0)
	c.SetBool(processor.Sign, v&0x8000 != 0)
	c.SetBool(processor.Parity, parityEven(byte(v)))
}

func parityEven(v byte) bool {
	n := 0
	for v != 0 {
		n += int(v & 1)
		v >>= 1
	}
	return n%2 == 0
}

// condition evaluates the standard Jcc condition code encoded in the
// low nibble of a 0x70-0x7F opcode.
func (c *CPU) condition(code byte) bool {
	switch code {
	case 0x0: // JO
		return c.GetBool(processor.Overflow)
	case 0x1: // JNO
		return !c.GetBool(processor.Overflow)
	case 0x2: // JB/JC
		return c.GetBool(processor.Carry)
	case 0x3: // JAE/JNC
		return !c.GetBool(processor.Carry)
	case 0x4: // JE/JZ
		return c.GetBool(processor.Zero)
	case 0x5: // JNE/JNZ
		return !c.GetBool(processor.Zero)
	case 0x6: // JBE
		return c.GetBool(processor.Carry) || c.GetBool(processor.Zero)
	case 0x7: // JA
		return !c.GetBool(processor.Carry) && !c.GetBool(processor.Zero)
	case 0x8: // JS
		return c.GetBool(processor.Sign)
	case 0x9: // JNS
		return !c.GetBool(processor.Sign)
	case 0xA: // JP
		return c.GetBool(processor.Parity)
	case 0xB: // JNP
		return !c.GetBool(processor.Parity)
	case 0xC: // JL
		return c.GetBool(processor.Sign) != c.GetBool(processor.Overflow)
	case 0xD: // JGE
		return c.GetBool(processor.Sign) == c.GetBool(processor.Overflow)
	case 0xE: // JLE
		return c.GetBool(processor.Zero) || c.GetBool(processor.Sign) != c.GetBool(processor.Overflow)
	default: // JG
		return !c.GetBool(processor.Zero) && c.GetBool(processor.Sign) == c.GetBool(processor.Overflow)
	}
}
