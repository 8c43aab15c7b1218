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

// serviceStub handles the BIOS service families that carry no
// comparable algorithmic content to the disk service: each logs the
// call. INT 14h/15h/17h/1Ah report "not supported" (CF=1, AH=1) so
// that boot code's own feature probes fall through cleanly; INT 11h,
// 12h and 16h return fixed values; INT 05h/10h/18h/19h leave the
// registers untouched.
func serviceStub(m *Machine, engine processor.Processor, vector int) {
	r := engine.GetRegisters()

	switch vector {
	case 0x05: // Print screen
		m.log.Printf("int 0x05: print screen (ignored)")

	case 0x10: // Video services
		m.log.Printf("int 0x10/ah=0x%02X: video service (ignored)", r.AH())

	case 0x11: // Equipment list
		m.log.Printf("int 0x11: equipment list")
		r.SetAX(0)

	case 0x12: // Memory size
		m.log.Printf("int 0x12: memory size")
		r.SetAX(640)

	case 0x14: // Serial port services
		m.log.Printf("int 0x14/ah=0x%02X: serial service (ignored)", r.AH())
		fail(r)

	case 0x15: // System services
		m.log.Printf("int 0x15/ah=0x%02X: system service (unsupported)", r.AH())
		fail(r)

	case 0x16: // Keyboard services
		m.log.Printf("int 0x16/ah=0x%02X: keyboard service (no input available)", r.AH())
		r.SetAX(0)
		succeed(r)

	case 0x17: // Printer services
		m.log.Printf("int 0x17/ah=0x%02X: printer service (ignored)", r.AH())
		fail(r)

	case 0x18: // Diskless boot hook
		m.log.Printf("int 0x18: no bootable device (diskless boot hook)")

	case 0x19: // Bootstrap loader
		m.log.Printf("int 0x19: bootstrap reload requested (ignored, single boot only)")

	case 0x1A: // Time services
		m.log.Printf("int 0x1A/ah=0x%02X: time service (unsupported)", r.AH())
		fail(r)
	}
}
