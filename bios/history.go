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

import "strings"

// historyCapacity bounds how many serviced-interrupt log lines the
// machine keeps around for the debug UI; it is not a log file.
const historyCapacity = 128

// historyRecorder is an io.Writer that keeps the last historyCapacity
// lines written to it. The machine tees its logger through one of
// these so a debug UI can show recent BIOS activity without scraping
// the real log sink.
type historyRecorder struct {
	lines []string
}

func newHistoryRecorder() *historyRecorder {
	return &historyRecorder{lines: make([]string, 0, historyCapacity)}
}

func (h *historyRecorder) Write(p []byte) (int, error) {
	for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		if line == "" {
			continue
		}
		h.lines = append(h.lines, line)
	}
	if over := len(h.lines) - historyCapacity; over > 0 {
		h.lines = h.lines[over:]
	}
	return len(p), nil
}

// Lines returns a snapshot of the recorded history, oldest first.
func (h *historyRecorder) Lines() []string {
	out := make([]string, len(h.lines))
	copy(out, h.lines)
	return out
}
