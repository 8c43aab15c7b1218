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

package fat

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// DAPSize is the byte size of a Disk Address Packet, the INT 13h/AH=42h
// argument structure.
const DAPSize = 16

// DAP is the decoded Disk Address Packet read from guest memory for an
// extended (LBA) read. Field order matches the wire layout exactly;
// see spec.md §6.
type DAP struct {
	Size               byte
	Reserved           byte
	SectorCount        uint16
	DestinationOffset  uint16
	DestinationSegment uint16
	LBA                uint64
}

// DecodeDAP reads a 16-byte Disk Address Packet. It does not validate
// Size or Reserved; spec.md §9 documents that as an intentional,
// lenient default, matching the original implementation this behavior
// was distilled from.
func DecodeDAP(data []byte) (DAP, error) {
	if len(data) < DAPSize {
		return DAP{}, fmt.Errorf("fat: short DAP, got %d bytes, want %d", len(data), DAPSize)
	}

	var dap DAP
	if err := binary.Read(bytes.NewReader(data[:DAPSize]), binary.LittleEndian, &dap); err != nil {
		return DAP{}, err
	}
	return dap, nil
}
