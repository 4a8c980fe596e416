// Package spn reads and writes the flat-text segmentation format of
// spec.md §6: one integer label per line, Nx*Ny*Nz lines, indexed
// i + Nx*Ny*k + Nx*j (equivalently i-fast, j-middle, k-slow). Grounded
// on original_source/src/voxel/mod.rs's voxel_data_from_spn and
// write_voxels_to_spn, dropped from the distillation and restored here
// since spec.md §8 property 8 requires round-tripping it.
package spn

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/autotwin/automesh/mesh"
	"github.com/autotwin/automesh/seg"
)

// Read parses an SPN stream into a Segmentation of the given extents.
// The caller must already know (Nx, Ny, Nz): unlike NPY, the SPN format
// carries no shape of its own.
func Read(r io.Reader, nx, ny, nz int) (*seg.Segmentation, error) {
	if nx < 1 || ny < 1 || nz < 1 {
		return nil, &mesh.Error{Kind: mesh.InvalidInput, Message: "spn extents must all be positive"}
	}
	want := nx * ny * nz
	data := make([]uint8, 0, want)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		v, err := strconv.ParseUint(line, 10, 8)
		if err != nil {
			return nil, &mesh.Error{Kind: mesh.InvalidInput, Message: fmt.Sprintf("spn line %q is not a uint8 label", line), Index: len(data), Err: err}
		}
		data = append(data, uint8(v))
	}
	if err := scanner.Err(); err != nil {
		return nil, &mesh.Error{Kind: mesh.InvalidInput, Message: "reading spn stream", Err: err}
	}
	if len(data) != want {
		return nil, &mesh.Error{Kind: mesh.InvalidInput, Message: fmt.Sprintf("spn has %d labels, want %d for extents (%d,%d,%d)", len(data), want, nx, ny, nz)}
	}
	return seg.FromData(nx, ny, nz, data)
}

// Write emits s as an SPN stream: one label per line, in the
// i-fast/j-middle/k-slow order the format fixes.
func Write(w io.Writer, s *seg.Segmentation) error {
	bw := bufio.NewWriter(w)
	for _, label := range s.Data() {
		if _, err := fmt.Fprintln(bw, label); err != nil {
			return err
		}
	}
	return bw.Flush()
}
