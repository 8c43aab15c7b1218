package fat

import (
	"testing"

	"github.com/spf13/afero"
)

func writeImage(t *testing.T, sectors int, fill byte) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	data := make([]byte, sectors*512)
	for i := range data {
		data[i] = fill
	}
	boot := validBootSector()
	copy(data[:512], boot)
	if err := afero.WriteFile(fs, "disk.img", data, 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return fs
}

func TestOpen_ParsesMBR(t *testing.T) {
	fs := writeImage(t, 4, 0x90)
	img, err := Open(fs, "disk.img")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer img.Close()

	if !img.MBR().IsValid() {
		t.Fatal("expected valid MBR from the written boot sector")
	}
}

func TestImage_ReadCHS(t *testing.T) {
	fs := writeImage(t, 4, 0xAB)
	img, err := Open(fs, "disk.img")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer img.Close()

	data := img.ReadCHS(0, 0, 2, 1)
	if len(data) != 512 {
		t.Fatalf("ReadCHS returned %d bytes, want 512", len(data))
	}
	for _, b := range data {
		if b != 0xAB {
			t.Fatalf("ReadCHS returned unexpected byte 0x%02X", b)
		}
	}
}

func TestImage_ReadCHS_PastEnd(t *testing.T) {
	fs := writeImage(t, 2, 0xAB)
	img, err := Open(fs, "disk.img")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer img.Close()

	if data := img.ReadCHS(10, 0, 1, 1); data != nil {
		t.Fatalf("expected nil for an out-of-range CHS read, got %d bytes", len(data))
	}
}

func TestImage_ReadRange_Short(t *testing.T) {
	fs := writeImage(t, 1, 0xAB)
	img, err := Open(fs, "disk.img")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer img.Close()

	if data := img.ReadRange(0, 1024); data != nil {
		t.Fatalf("expected nil for a short read, got %d bytes", len(data))
	}
}

func TestOpen_MissingFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	if _, err := Open(fs, "nope.img"); err == nil {
		t.Fatal("expected error opening a missing image")
	}
}
