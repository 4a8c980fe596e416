// Package npy reads and writes the dense-array segmentation format of
// spec.md §6: a NumPy .npy file carrying a 3-D uint8 array in Fortran
// order. Grounded on original_source/src/voxel/mod.rs, which delegates
// to the ndarray_npy crate for from_npy/write_npy; no example repo in
// the pack imports an NPY library, so this package implements the
// minimal NPY v1.0 container (magic, header dict, raw bytes) directly
// on encoding/binary rather than inventing a dependency the corpus
// never reaches for.
package npy

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"regexp"
	"strconv"

	"github.com/autotwin/automesh/mesh"
	"github.com/autotwin/automesh/seg"
)

var magic = []byte("\x93NUMPY")

const (
	versionMajor = 1
	versionMinor = 0
	headerAlign  = 64
)

var shapeRe = regexp.MustCompile(`'shape':\s*\(([^)]*)\)`)
var descrRe = regexp.MustCompile(`'descr':\s*'([^']*)'`)
var fortranRe = regexp.MustCompile(`'fortran_order':\s*(True|False)`)

// Read parses an NPY stream carrying a 3-D |u1 array in Fortran order
// into a Segmentation. The shape in the file determines (Nx, Ny, Nz).
func Read(r io.Reader) (*seg.Segmentation, error) {
	br := bufio.NewReader(r)

	got := make([]byte, len(magic))
	if _, err := io.ReadFull(br, got); err != nil {
		return nil, &mesh.Error{Kind: mesh.InvalidInput, Message: "reading npy magic", Err: err}
	}
	if !bytes.Equal(got, magic) {
		return nil, &mesh.Error{Kind: mesh.InvalidInput, Message: "not an npy file: bad magic"}
	}

	var major, minor uint8
	if err := binary.Read(br, binary.LittleEndian, &major); err != nil {
		return nil, err
	}
	if err := binary.Read(br, binary.LittleEndian, &minor); err != nil {
		return nil, err
	}

	var headerLen int
	if major == 1 {
		var n uint16
		if err := binary.Read(br, binary.LittleEndian, &n); err != nil {
			return nil, err
		}
		headerLen = int(n)
	} else {
		var n uint32
		if err := binary.Read(br, binary.LittleEndian, &n); err != nil {
			return nil, err
		}
		headerLen = int(n)
	}

	header := make([]byte, headerLen)
	if _, err := io.ReadFull(br, header); err != nil {
		return nil, &mesh.Error{Kind: mesh.InvalidInput, Message: "reading npy header dict", Err: err}
	}

	nx, ny, nz, err := parseShape(string(header))
	if err != nil {
		return nil, err
	}
	if descr := descrRe.FindStringSubmatch(string(header)); descr == nil || descr[1] != "|u1" {
		return nil, &mesh.Error{Kind: mesh.InvalidInput, Message: "npy dtype must be |u1 (uint8)"}
	}
	if fo := fortranRe.FindStringSubmatch(string(header)); fo == nil || fo[1] != "True" {
		return nil, &mesh.Error{Kind: mesh.InvalidInput, Message: "npy array must be fortran_order=True"}
	}

	data := make([]uint8, nx*ny*nz)
	if _, err := io.ReadFull(br, data); err != nil {
		return nil, &mesh.Error{Kind: mesh.InvalidInput, Message: "reading npy payload", Err: err}
	}
	return seg.FromData(nx, ny, nz, data)
}

func parseShape(header string) (nx, ny, nz int, err error) {
	m := shapeRe.FindStringSubmatch(header)
	if m == nil {
		return 0, 0, 0, &mesh.Error{Kind: mesh.InvalidInput, Message: "npy header missing shape"}
	}
	dims := bytes.Split([]byte(m[1]), []byte(","))
	var vals []int
	for _, d := range dims {
		d = bytes.TrimSpace(d)
		if len(d) == 0 {
			continue
		}
		v, perr := strconv.Atoi(string(d))
		if perr != nil {
			return 0, 0, 0, &mesh.Error{Kind: mesh.InvalidInput, Message: fmt.Sprintf("npy shape entry %q is not an integer", d), Err: perr}
		}
		vals = append(vals, v)
	}
	if len(vals) != 3 {
		return 0, 0, 0, &mesh.Error{Kind: mesh.InvalidInput, Message: "npy shape must have exactly 3 dimensions"}
	}
	return vals[0], vals[1], vals[2], nil
}

// Write emits s as an NPY v1.0 file: a |u1 array of shape (Nx, Ny, Nz)
// in Fortran order, matching the segmentation's own i + Nx*j + Nx*Ny*k
// layout exactly.
func Write(w io.Writer, s *seg.Segmentation) error {
	dict := fmt.Sprintf("{'descr': '|u1', 'fortran_order': True, 'shape': (%d, %d, %d), }", s.Nx, s.Ny, s.Nz)

	preambleLen := len(magic) + 2 + 2 // magic + version + 2-byte header length field (v1.0)
	total := preambleLen + len(dict) + 1 // +1 for trailing '\n'
	pad := headerAlign - total%headerAlign
	if pad == headerAlign {
		pad = 0
	}
	header := dict + string(bytes.Repeat([]byte{' '}, pad)) + "\n"

	if _, err := w.Write(magic); err != nil {
		return err
	}
	if _, err := w.Write([]byte{versionMajor, versionMinor}); err != nil {
		return err
	}
	if len(header) > 0xFFFF {
		return &mesh.Error{Kind: mesh.InvalidInput, Message: "npy header too large for v1.0 2-byte length field"}
	}
	if err := binary.Write(w, binary.LittleEndian, uint16(len(header))); err != nil {
		return err
	}
	if _, err := io.WriteString(w, header); err != nil {
		return err
	}
	_, err := w.Write(s.Data())
	return err
}
