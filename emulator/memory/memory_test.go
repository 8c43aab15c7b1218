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

package memory

import "testing"

func TestNewPointer_LinearFormula(t *testing.T) {
	cases := []struct {
		seg, off uint16
		want     Pointer
	}{
		{0x0000, 0x7C00, 0x07C00},
		{0x07C0, 0x0000, 0x07C00},
		{0x1000, 0x0010, 0x10010},
		{0xFFFF, 0xFFFF, 0x0FFEF}, // wraps at 20 bits
	}
	for _, c := range cases {
		if got := NewPointer(c.seg, c.off); got != c.want {
			t.Errorf("NewPointer(0x%04X, 0x%04X) = 0x%X, want 0x%X", c.seg, c.off, got, c.want)
		}
	}
}

func TestAddress_SegmentOffset(t *testing.T) {
	a := NewAddress(0x07C0, 0x0010)
	if a.Segment() != 0x07C0 {
		t.Errorf("Segment() = 0x%04X, want 0x07C0", a.Segment())
	}
	if a.Offset() != 0x0010 {
		t.Errorf("Offset() = 0x%04X, want 0x0010", a.Offset())
	}
}

func TestAddress_Pointer(t *testing.T) {
	a := NewAddress(0x0000, 0x7C00)
	if got := a.Pointer(); got != 0x07C00 {
		t.Errorf("Pointer() = 0x%X, want 0x7C00", got)
	}
}

func TestAddress_AddInt(t *testing.T) {
	a := NewAddress(0x1000, 0x0005)
	got := a.AddInt(3)
	if got.Segment() != 0x1000 || got.Offset() != 0x0008 {
		t.Errorf("AddInt(3) = %s, want 1000:0008", got)
	}
}
