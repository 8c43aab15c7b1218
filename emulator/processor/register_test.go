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

package processor

import "testing"

func TestRegisters_AHALSplit(t *testing.T) {
	var r Registers
	r.SetAX(0x1234)
	if r.AH() != 0x12 {
		t.Errorf("AH() = 0x%02X, want 0x12", r.AH())
	}
	if r.AL() != 0x34 {
		t.Errorf("AL() = 0x%02X, want 0x34", r.AL())
	}

	r.SetAL(0xFF)
	if r.AX() != 0x12FF {
		t.Errorf("AX() after SetAL = 0x%04X, want 0x12FF", r.AX())
	}
}

func TestRegisters_CF(t *testing.T) {
	var r Registers
	if r.CF() {
		t.Fatal("CF should start false")
	}
	r.SetCF(true)
	if !r.CF() {
		t.Fatal("SetCF(true) did not set CF")
	}
	r.SetCF(false)
	if r.CF() {
		t.Fatal("SetCF(false) did not clear CF")
	}
}

func TestRegisters_Reset(t *testing.T) {
	var r Registers
	r.SetAX(0xFFFF)
	r.SetCF(true)
	r.Reset()
	if r.AX() != 0 {
		t.Errorf("AX() after Reset = 0x%04X, want 0", r.AX())
	}
	if r.CF() {
		t.Fatal("CF should be cleared after Reset")
	}
}

func TestRegisters_Exchange(t *testing.T) {
	var r Registers
	r.SetAX(1)
	r.SetBX(2)
	r.Exchange(0x93) // XCHG AX, BX
	if r.AX() != 2 || r.BX() != 1 {
		t.Errorf("Exchange(0x93) = AX:%d BX:%d, want AX:2 BX:1", r.AX(), r.BX())
	}
}
