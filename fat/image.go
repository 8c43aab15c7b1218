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
	"io"

	"github.com/spf13/afero"
)

// Image is a read-only, backing-file-agnostic view of a floppy or hard
// disk image. It is opened over an afero.Fs so tests can run against an
// in-memory filesystem instead of a real file.
type Image struct {
	fs   afero.Fs
	file afero.File
	mbr  MBR
	size int64
}

// Open reads path off fs, parses its boot sector, and returns an Image
// ready to serve CHS and byte-range reads. The file is kept open for
// the lifetime of the Image; callers must Close it.
func Open(fs afero.Fs, path string) (Image, error) {
	f, err := fs.Open(path)
	if err != nil {
		return Image{}, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return Image{}, err
	}

	boot := make([]byte, 512)
	if _, err := io.ReadFull(io.NewSectionReader(f, 0, info.Size()), boot); err != nil {
		f.Close()
		return Image{}, err
	}

	return Image{
		fs:   fs,
		file: f,
		mbr:  ParseMBR(boot),
		size: info.Size(),
	}, nil
}

// MBR returns the image's parsed boot sector.
func (img Image) MBR() MBR {
	return img.mbr
}

// Close releases the backing file.
func (img Image) Close() error {
	if img.file == nil {
		return nil
	}
	return img.file.Close()
}

// ReadCHS reads count sectors starting at the given cylinder/head/sector
// address, using the image's effective bytes-per-sector. It returns nil
// if the read runs past the end of the image or otherwise comes up
// short; spec.md §7 treats any short read as a hard failure, never a
// partial one.
func (img Image) ReadCHS(cylinder, head, sector, count byte) []byte {
	bps := int64(img.mbr.EffectiveBytesPerSector())
	lba := ChsToLBA(img.mbr, cylinder, sector, head)
	return img.ReadRange(int64(lba)*bps, int(count)*int(bps))
}

// ReadRange reads size bytes starting at byte offset off. It returns
// nil on any short or failed read rather than a partial buffer.
func (img Image) ReadRange(off int64, size int) []byte {
	if size <= 0 || off < 0 || off+int64(size) > img.size {
		return nil
	}

	buf := make([]byte, size)
	if _, err := io.ReadFull(io.NewSectionReader(img.file, off, int64(size)), buf); err != nil {
		return nil
	}
	return buf
}
