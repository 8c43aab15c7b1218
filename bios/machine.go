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

// Package bios is the core of the emulator: the interrupt router, the
// INT 13h disk service, the other BIOS service stubs, and the machine
// façade that binds a CPU engine to a FAT boot image.
package bios

import (
	"fmt"
	"io"
	"log"

	"github.com/tmartin/floppybios/emulator/memory"
	"github.com/tmartin/floppybios/emulator/processor"
	"github.com/tmartin/floppybios/emulator/processor/cpu"
	"github.com/tmartin/floppybios/fat"
)

// bootSectorAddress is the canonical BIOS boot-sector load address.
const bootSectorAddress = 0x7C00

// Machine owns exactly one CPU engine and one FAT image. It is
// immutable after construction; there is no way to swap the image or
// engine underneath a running machine.
type Machine struct {
	engine  processor.Processor
	image   fat.Image
	log     *log.Logger
	history *historyRecorder
}

// NewMachine constructs a machine around image, with a memory space of
// memSizeBytes bytes, and preloads the first sector of image to the
// boot-sector load address. logger receives a line per serviced BIOS
// call; pass log.New(io.Discard, "", 0) to silence it. Regardless of
// logger, the machine keeps its own bounded history of recent BIOS
// activity for History to report.
func NewMachine(image fat.Image, memSizeBytes int, logger *log.Logger) (*Machine, error) {
	if memSizeBytes <= 0 {
		return nil, fmt.Errorf("bios: memory size must be positive, got %d", memSizeBytes)
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	hist := newHistoryRecorder()
	out := io.MultiWriter(logger.Writer(), hist)

	m := &Machine{
		engine:  cpu.New(memSizeBytes),
		image:   image,
		log:     log.New(out, logger.Prefix(), logger.Flags()),
		history: hist,
	}
	m.engine.SetInterruptHandler(m)

	boot := image.ReadCHS(0, 0, 1, 1)
	if boot == nil {
		return nil, fmt.Errorf("bios: could not read boot sector from image")
	}
	m.engine.WriteBytes(bootSectorAddress, boot)

	return m, nil
}

// Start begins execution at the boot-sector load address and returns
// the engine's own halt verdict: true if execution stopped on HLT,
// false if it stopped because the router rejected an interrupt vector
// or the engine decoded an opcode it does not implement.
func (m *Machine) Start() bool {
	return m.engine.Start(bootSectorAddress)
}

// Registers exposes the live register file, chiefly for a debug UI.
func (m *Machine) Registers() *processor.Registers {
	return m.engine.GetRegisters()
}

// Stats reports engine-level execution counters.
func (m *Machine) Stats() processor.Stats {
	return m.engine.GetStats()
}

// Image returns the machine's backing FAT image.
func (m *Machine) Image() fat.Image {
	return m.image
}

// History returns the most recent serviced-interrupt log lines, oldest
// first, for a debug UI to display.
func (m *Machine) History() []string {
	return m.history.Lines()
}

// HandleInterrupt implements processor.InterruptHandler. It is the
// single entry point the CPU engine invokes on every INT n; it simply
// forwards to the router.
func (m *Machine) HandleInterrupt(vector int, engine processor.Processor) bool {
	return route(m, engine, vector)
}

// linear computes the 20-bit real-mode address segment*16+offset.
func linear(segment, offset uint16) memory.Pointer {
	return memory.NewPointer(segment, offset)
}

// fail writes the standard BIOS failure pair: CF=1, AH=1.
func fail(r *processor.Registers) {
	r.SetCF(true)
	r.SetAH(1)
}

// succeed writes the standard BIOS success pair: CF=0, AH=0.
func succeed(r *processor.Registers) {
	r.SetCF(false)
	r.SetAH(0)
}
