// Package config loads reconstruction run configuration from YAML with
// strict decoding: unknown fields are a hard error rather than a
// silently ignored typo. Its loaders return errors instead of calling
// logrus.Fatalf — config is a library package, and only the CLI layer
// gets to decide a bad config file ends the process.
package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/petalo-go/petalo/lorio"
)

// FOV describes the reconstruction field of view, in millimetres and
// voxel counts.
type FOV struct {
	// Voxels is the voxel count per axis, written as [nx, ny, nz]; Decode
	// copies it into NX, NY, NZ.
	Voxels     [3]int  `yaml:"voxels"`
	NX, NY, NZ int     `yaml:"-"`
	HalfX      float64 `yaml:"half_x_mm"`
	HalfY      float64 `yaml:"half_y_mm"`
	HalfZ      float64 `yaml:"half_z_mm"`
}

// TOF describes optional time-of-flight weighting.
type TOF struct {
	Enabled bool    `yaml:"enabled"`
	SigmaNs float64 `yaml:"sigma_ns"`
	Cutoff  float64 `yaml:"cutoff_sigmas"`
}

// ScatterCorrection describes an optional scattergram-based additive
// correction. Enabled says whether to apply one; Path names the
// classified-events file the scattergram is built from at load time.
type ScatterCorrection struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Input describes where measured LORs are read from, and how to filter
// the records a Reader turns into LORs.
type Input struct {
	Format string `yaml:"format"` // "tabular" or "legacy"
	Path   string `yaml:"path"`
	// UseTrue only applies to the legacy format.
	UseTrue bool `yaml:"use_true"`

	// EventLo/EventHi select a half-open range of event indices; leaving
	// both zero (or EventHi <= EventLo) means no range restriction.
	EventLo int `yaml:"event_lo"`
	EventHi int `yaml:"event_hi"`
	// ECutLo/ECutHi bound both gammas' energy in keV; leaving both zero
	// means no energy cut.
	ECutLo float32 `yaml:"ecut_lo"`
	ECutHi float32 `yaml:"ecut_hi"`
	// QCutLo/QCutHi bound both gammas' charge; leaving both zero means no
	// charge cut.
	QCutLo float32 `yaml:"qcut_lo"`
	QCutHi float32 `yaml:"qcut_hi"`
}

// Filter builds the lorio.Filter this Input's range/cut fields describe.
func (in Input) Filter() lorio.Filter {
	return lorio.Filter{
		EventRange: [2]int{in.EventLo, in.EventHi},
		ECut:       [2]float32{in.ECutLo, in.ECutHi},
		QCut:       [2]float32{in.QCutLo, in.QCutHi},
	}
}

// Output describes where reconstructed images are written.
type Output struct {
	PathTemplate string `yaml:"path_template"` // e.g. "out/iter-%03d.raw"
}

// Run is a single named reconstruction run, assembled from the sections
// above plus the iteration count and worker pool size.
type Run struct {
	Iterations int               `yaml:"iterations"`
	Workers    int               `yaml:"workers"`
	FOV        FOV               `yaml:"fov"`
	TOF        TOF               `yaml:"tof"`
	Scatter    ScatterCorrection `yaml:"scatter"`
	Input      Input             `yaml:"input"`
	Output     Output            `yaml:"output"`
}

// File is the full top-level structure of a reconstruction config file.
// Every section must be listed here to satisfy KnownFields(true) strict
// parsing: an unrecognised top-level key is a config-authoring mistake,
// not something to decode around.
type File struct {
	Version string         `yaml:"version"`
	Runs    map[string]Run `yaml:"runs"`
}

// ParseError wraps a YAML decode failure with the file path that caused
// it.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("petalo: parsing config %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Load reads and strictly decodes a reconstruction config file.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, &ParseError{Path: path, Err: err}
	}
	return Decode(path, data)
}

// Decode strictly decodes raw YAML bytes, unknown fields rejected.
// path is only used to annotate errors.
func Decode(path string, data []byte) (File, error) {
	var f File
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil {
		return File{}, &ParseError{Path: path, Err: err}
	}
	for name, run := range f.Runs {
		run.FOV.NX, run.FOV.NY, run.FOV.NZ = run.FOV.Voxels[0], run.FOV.Voxels[1], run.FOV.Voxels[2]
		f.Runs[name] = run
	}
	return f, nil
}

// Run looks up a named run, reporting a descriptive error if absent.
func (f File) Run(name string) (Run, error) {
	run, ok := f.Runs[name]
	if !ok {
		return Run{}, fmt.Errorf("petalo: no run named %q in config", name)
	}
	return run, nil
}
