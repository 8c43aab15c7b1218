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

// Package fat is a read-only FAT/MBR image reader: the "external
// collaborator" the BIOS disk service is written against (see
// fat.Image). It decodes the BIOS Parameter Block fields a floppy or
// hard-disk image carries in its first sector and serves byte- and
// sector-range reads over the backing file.
package fat

import (
	"bytes"
	"encoding/binary"
)

// bootSignature is the 0x55AA marker every bootable sector ends with.
const bootSignature = 0xAA55

// bpbLayout mirrors the shared portion of the BIOS Parameter Block,
// starting at offset 0x0B of the boot sector. Field order and width
// matter here, not Go struct layout: binary.Read walks the struct in
// declaration order against the little-endian wire format.
type bpbLayout struct {
	BytesPerSector    uint16
	SectorsPerCluster uint8
	ReservedSectors   uint16
	NumFATs           uint8
	RootEntries       uint16
	TotalSectors16    uint16
	Media             uint8
	SectorsPerFAT     uint16
	SectorsPerTrack   uint16
	NumHeads          uint16
	HiddenSectors     uint32
	TotalSectors32    uint32
}

// MBR is the parsed first sector of a FAT-formatted boot medium.
type MBR struct {
	valid           bool
	bytesPerSector  uint16
	sectorsPerTrack uint16
	numHeads        uint16
}

// ParseMBR decodes the BIOS Parameter Block out of a 512+ byte boot
// sector. A sector that doesn't end in the 0x55AA boot signature, or
// that reports zero geometry, is not a valid BPB: IsValid reports
// false and callers should fall back to their own defaults.
func ParseMBR(sector []byte) MBR {
	if len(sector) < 512 {
		return MBR{}
	}

	var bpb bpbLayout
	if err := binary.Read(bytes.NewReader(sector[11:]), binary.LittleEndian, &bpb); err != nil {
		return MBR{}
	}

	sig := binary.LittleEndian.Uint16(sector[510:512])
	valid := sig == bootSignature && bpb.BytesPerSector != 0 && bpb.SectorsPerTrack != 0 && bpb.NumHeads != 0

	return MBR{
		valid:           valid,
		bytesPerSector:  bpb.BytesPerSector,
		sectorsPerTrack: bpb.SectorsPerTrack,
		numHeads:        bpb.NumHeads,
	}
}

// IsValid reports whether the sector parsed as a sane BIOS Parameter Block.
func (m MBR) IsValid() bool {
	return m.valid
}

// BytesPerSector returns the BPB's bytes-per-sector field as decoded.
// It is returned even when IsValid is false, and is 0 only when the
// sector was too short to decode.
func (m MBR) BytesPerSector() uint16 {
	return m.bytesPerSector
}

// EffectiveBytesPerSector is BytesPerSector() when the MBR is valid,
// and the conventional 512 otherwise. This is the fallback spec.md
// §4.2 requires every INT 13h/AH=42h call to apply.
func (m MBR) EffectiveBytesPerSector() uint16 {
	if m.valid {
		return m.bytesPerSector
	}
	return 512
}

// conventional 1.44MB floppy geometry, used when the boot sector
// itself doesn't carry a usable BPB (e.g. a non-FAT boot sector).
const (
	fallbackSectorsPerTrack = 18
	fallbackNumHeads        = 2
)

func (m MBR) geometry() (sectorsPerTrack, numHeads uint16) {
	if m.valid {
		return m.sectorsPerTrack, m.numHeads
	}
	return fallbackSectorsPerTrack, fallbackNumHeads
}

// ChsToLBA converts a cylinder/head/sector address to a flat LBA
// sector index, per the standard CHS formula. Per spec.md §6 this is
// used only for logging by the core; CHS reads go through Image.ReadCHS
// directly.
func ChsToLBA(mbr MBR, cylinder, sector, head byte) uint64 {
	spt, heads := mbr.geometry()
	c, h, s := uint64(cylinder), uint64(head), uint64(sector)
	return (c*uint64(heads)+h)*uint64(spt) + (s - 1)
}
