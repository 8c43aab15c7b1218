package bios

import (
	"io"
	"log"
	"testing"

	"github.com/spf13/afero"

	"github.com/tmartin/floppybios/emulator/memory"
	"github.com/tmartin/floppybios/emulator/processor"
	"github.com/tmartin/floppybios/fat"
)

// fakeEngine is a minimal processor.Processor over a flat byte slice,
// standing in for the real CPU engine so the service handlers can be
// exercised without running any guest code.
type fakeEngine struct {
	processor.Registers
	mem     []byte
	handler processor.InterruptHandler
	stats   processor.Stats
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{mem: make([]byte, 0x100000)}
}

func (e *fakeEngine) GetRegisters() *processor.Registers            { return &e.Registers }
func (e *fakeEngine) GetStats() processor.Stats                     { return e.stats }
func (e *fakeEngine) SetInterruptHandler(h processor.InterruptHandler) { e.handler = h }
func (e *fakeEngine) Start(entry memory.Pointer) bool                { return true }

func (e *fakeEngine) ReadByte(addr memory.Pointer) byte     { return e.mem[int(addr)] }
func (e *fakeEngine) WriteByte(addr memory.Pointer, b byte) { e.mem[int(addr)] = b }

func (e *fakeEngine) ReadBytes(addr memory.Pointer, count int) []byte {
	out := make([]byte, count)
	copy(out, e.mem[int(addr):int(addr)+count])
	return out
}

func (e *fakeEngine) WriteBytes(addr memory.Pointer, data []byte) {
	copy(e.mem[int(addr):], data)
}

// newTestMachine returns a Machine wired to a fake engine and an
// in-memory FAT image of the given geometry, for direct use by
// handler-level tests. The Machine's own engine field is swapped for
// the fake so tests can both drive the handler and inspect memory.
func newTestMachine(t *testing.T, sectors int, bootFill byte) (*Machine, *fakeEngine) {
	t.Helper()

	fs := afero.NewMemMapFs()
	data := make([]byte, sectors*512)
	for i := range data {
		data[i] = bootFill
	}
	copy(data[:512], validBootSector())
	if err := afero.WriteFile(fs, "disk.img", data, 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	image, err := fat.Open(fs, "disk.img")
	if err != nil {
		t.Fatalf("fat.Open: %v", err)
	}
	t.Cleanup(func() { image.Close() })

	engine := newFakeEngine()
	m := &Machine{
		engine:  engine,
		image:   image,
		log:     log.New(io.Discard, "", 0),
		history: newHistoryRecorder(),
	}
	engine.SetInterruptHandler(m)
	return m, engine
}

// newTestMachineNoBPB builds a machine whose boot sector carries no
// valid BIOS Parameter Block, so MBR.IsValid() is false and the LBA
// handler must fall back to the conventional 512 bytes/sector.
func newTestMachineNoBPB(t *testing.T, sectors int, fill byte) (*Machine, *fakeEngine) {
	t.Helper()

	fs := afero.NewMemMapFs()
	data := make([]byte, sectors*512)
	for i := range data {
		data[i] = fill
	}
	// leave the first 512 bytes as plain fill: no 0x55AA signature, no BPB.

	if err := afero.WriteFile(fs, "disk.img", data, 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	image, err := fat.Open(fs, "disk.img")
	if err != nil {
		t.Fatalf("fat.Open: %v", err)
	}
	t.Cleanup(func() { image.Close() })

	if image.MBR().IsValid() {
		t.Fatal("test fixture: expected an invalid MBR")
	}

	engine := newFakeEngine()
	m := &Machine{
		engine:  engine,
		image:   image,
		log:     log.New(io.Discard, "", 0),
		history: newHistoryRecorder(),
	}
	engine.SetInterruptHandler(m)
	return m, engine
}

func validBootSector() []byte {
	sec := make([]byte, 512)
	sec[11], sec[12] = 0x00, 0x02 // BytesPerSector = 512
	sec[13] = 1
	sec[14], sec[15] = 1, 0
	sec[16] = 2
	sec[17], sec[18] = 224, 0
	sec[19], sec[20] = 0x40, 0x0B // TotalSectors16 = 2880
	sec[21] = 0xF0
	sec[22], sec[23] = 9, 0
	sec[24], sec[25] = 18, 0 // SectorsPerTrack
	sec[26], sec[27] = 2, 0  // NumHeads
	sec[510], sec[511] = 0x55, 0xAA
	return sec
}
