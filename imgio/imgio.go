// Package imgio writes reconstructed images to disk: row-major,
// little-endian float32, one file per iteration.
package imgio

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"

	"github.com/petalo-go/petalo/fov"
)

func float32Bits(v float64) uint32 {
	return math.Float32bits(float32(v))
}

// Write emits img as row-major (x slowest, z fastest — see DESIGN.md)
// little-endian float32 values to path.
func Write(img *fov.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("petalo: writing image %s: %w", path, err)
	}

	buf := make([]byte, 4*len(img.Data))
	for i, v := range img.Data {
		binary.LittleEndian.PutUint32(buf[i*4:], float32Bits(v))
	}
	if _, err := f.Write(buf); err != nil {
		f.Close() //nolint:errcheck // the write error is what we report
		return fmt.Errorf("petalo: writing image %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("petalo: closing image %s: %w", path, err)
	}
	return nil
}

// PathForIteration expands a printf-style template (e.g.
// "out/iter-%03d.raw") with the iteration number.
func PathForIteration(template string, iteration int) string {
	return fmt.Sprintf(template, iteration)
}
