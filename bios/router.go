/*
Copyright (c) 2019-2021 Andreas T Jonsson

This software is provided 'as-is', without any express or implied
warranty. In no event will the authors be held liable for any damages
arising from the use of this software.

Permission is granted to anyone to use this software for any purpose,
including commercial applications, and to alter it and redistribute it
freely, subject to the following restrictions:

1. The origin of this software must not be misrepresented; you must not
   claim that you wrote the original software. If you use this software
   in a product, an acknowledgment in the product documentation would be
   appreciated but is not required.
2. Altered source versions must be plainly marked as such, and must not be
   misrepresented as being the original software.
3. This notice may not be removed or altered from any source distribution.
*/

package bios

import "github.com/tmartin/floppybios/emulator/processor"

// route is the interrupt router: a pure switch over the vector number
// that delegates to one service family per recognised vector. It
// returns false only for a vector outside the recognised set, which
// the engine treats as a halt condition; for every recognised vector
// it returns true unconditionally, even when the underlying service
// reports a functional failure through CF/AH, per spec §4.1.
func route(m *Machine, engine processor.Processor, vector int) bool {
	switch vector {
	case 0x13:
		serviceDisk(m, engine)
	case 0x05, 0x10, 0x11, 0x12, 0x14, 0x15, 0x16, 0x17, 0x18, 0x19, 0x1A:
		serviceStub(m, engine, vector)
	default:
		m.log.Printf("[ERROR] int 0x%02X: unrecognised vector, halting", vector)
		return false
	}
	return true
}
