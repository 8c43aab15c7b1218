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

import (
	"github.com/tmartin/floppybios/emulator/processor"
	"github.com/tmartin/floppybios/fat"
)

// serviceDisk implements INT 13h, multiplexed on AH. Only 00h, 02h,
// 41h, and 42h carry real behavior; every other AH value falls through
// untouched, per spec §4.2's documented open choice.
func serviceDisk(m *Machine, engine processor.Processor) {
	r := engine.GetRegisters()

	switch r.AH() {
	case 0x00:
		diskReset(m, r)
	case 0x02:
		diskReadCHS(m, engine, r)
	case 0x41:
		diskExtensionsCheck(m, r)
	case 0x42:
		diskReadLBA(m, engine, r)
	default:
		m.log.Printf("[ERROR] int 0x13/ah=0x%02X: unsupported function", r.AH())
	}
}

// diskReset is INT 13h/AH=00h. It always succeeds and never touches
// the image.
func diskReset(m *Machine, r *processor.Registers) {
	m.log.Printf("int 0x13/ah=0x00: reset drive 0x%02X", r.DL())
	succeed(r)
}

// diskReadCHS is INT 13h/AH=02h: read sectors by cylinder/head/sector.
func diskReadCHS(m *Machine, engine processor.Processor, r *processor.Registers) {
	drive, count, cylinder, sector, head := r.DL(), r.AL(), r.CH(), r.CL(), r.DH()
	dest := linear(r.ES(), r.BX())

	lba := fat.ChsToLBA(m.image.MBR(), cylinder, sector, head)
	m.log.Printf("int 0x13/ah=0x02: drive=0x%02X chs=(%d,%d,%d) lba=%d count=%d dest=%s",
		drive, cylinder, head, sector, lba, count, dest)

	if drive != 0 {
		m.log.Printf("[ERROR] int 0x13/ah=0x02: drive 0x%02X not supported", drive)
		fail(r)
		r.SetAL(0)
		return
	}

	data := m.image.ReadCHS(cylinder, head, sector, count)
	if len(data) == 0 {
		m.log.Printf("[ERROR] int 0x13/ah=0x02: short read")
		fail(r)
		r.SetAL(0)
		return
	}

	engine.WriteBytes(dest, data)
	m.log.Printf("[SUCCESS] int 0x13/ah=0x02: wrote %d bytes to %s", len(data), dest)

	succeed(r)
	r.SetAL(count)
}

// diskExtensionsCheck is INT 13h/AH=41h.
func diskExtensionsCheck(m *Machine, r *processor.Registers) {
	m.log.Printf("int 0x13/ah=0x41: extensions check, drive 0x%02X", r.DL())
	r.SetBX(0xAA55)
	r.SetCX(0x0007)
	succeed(r)
}

// diskReadLBA is INT 13h/AH=42h: extended read via a Disk Address
// Packet at DS:SI. AL is left untouched on every path, per spec §4.2.
func diskReadLBA(m *Machine, engine processor.Processor, r *processor.Registers) {
	drive := r.DL()
	dapBytes := engine.ReadBytes(linear(r.DS(), r.SI()), fat.DAPSize)

	dap, err := fat.DecodeDAP(dapBytes)
	if err != nil {
		m.log.Printf("[ERROR] int 0x13/ah=0x42: %v", err)
		fail(r)
		return
	}

	if drive != 0 {
		m.log.Printf("[ERROR] int 0x13/ah=0x42: drive 0x%02X not supported", drive)
		fail(r)
		return
	}

	bps := int64(m.image.MBR().EffectiveBytesPerSector())
	offset := int64(dap.LBA) * bps
	size := int(dap.SectorCount) * int(bps)
	dest := linear(dap.DestinationSegment, dap.DestinationOffset)

	m.log.Printf("int 0x13/ah=0x42: drive=0x%02X lba=%d sectors=%d offset=%d size=%d dest=%s",
		drive, dap.LBA, dap.SectorCount, offset, size, dest)

	data := m.image.ReadRange(offset, size)
	if len(data) == 0 {
		m.log.Printf("[ERROR] int 0x13/ah=0x42: short read")
		fail(r)
		return
	}

	engine.WriteBytes(dest, data)
	m.log.Printf("[SUCCESS] int 0x13/ah=0x42: wrote %d bytes to %s", len(data), dest)

	succeed(r)
}
