package fat

import (
	"encoding/binary"
	"testing"
)

func encodeDAP(t *testing.T, d DAP) []byte {
	t.Helper()
	buf := make([]byte, DAPSize)
	buf[0] = d.Size
	buf[1] = d.Reserved
	binary.LittleEndian.PutUint16(buf[2:], d.SectorCount)
	binary.LittleEndian.PutUint16(buf[4:], d.DestinationOffset)
	binary.LittleEndian.PutUint16(buf[6:], d.DestinationSegment)
	binary.LittleEndian.PutUint64(buf[8:], d.LBA)
	return buf
}

func TestDecodeDAP_RoundTrip(t *testing.T) {
	want := DAP{
		Size:               16,
		Reserved:           0,
		SectorCount:        2,
		DestinationOffset:  0x0000,
		DestinationSegment: 0x1000,
		LBA:                3,
	}
	got, err := DecodeDAP(encodeDAP(t, want))
	if err != nil {
		t.Fatalf("DecodeDAP returned error: %v", err)
	}
	if got != want {
		t.Errorf("DecodeDAP() = %+v, want %+v", got, want)
	}
}

func TestDecodeDAP_LenientOnSizeAndReserved(t *testing.T) {
	// spec intentionally does not validate Size or Reserved.
	d := DAP{Size: 0xFF, Reserved: 0xFF, SectorCount: 1, LBA: 1}
	if _, err := DecodeDAP(encodeDAP(t, d)); err != nil {
		t.Fatalf("DecodeDAP should not reject bad size/reserved bytes: %v", err)
	}
}

func TestDecodeDAP_Short(t *testing.T) {
	if _, err := DecodeDAP(make([]byte, 8)); err == nil {
		t.Fatal("expected error for short DAP buffer")
	}
}

func TestDecodeDAP_ExtraBytesIgnored(t *testing.T) {
	d := DAP{Size: 16, SectorCount: 1, LBA: 7}
	buf := append(encodeDAP(t, d), 0xAA, 0xBB, 0xCC)
	got, err := DecodeDAP(buf)
	if err != nil {
		t.Fatalf("DecodeDAP returned error: %v", err)
	}
	if got != d {
		t.Errorf("DecodeDAP() = %+v, want %+v", got, d)
	}
}
