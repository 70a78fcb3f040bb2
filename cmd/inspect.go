package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/petalo-go/petalo/fov"
	"github.com/petalo-go/petalo/geom"
	"github.com/petalo-go/petalo/lorio"
	"github.com/petalo-go/petalo/tof"
	"github.com/petalo-go/petalo/traverse"
	"github.com/petalo-go/petalo/units"
)

// inspectCmd is the parent of petalo's debugging/introspection
// subcommands; it does no work itself.
var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Debugging introspection commands (lor, file)",
}

func init() {
	inspectCmd.AddCommand(inspectLorCmd)
	inspectCmd.AddCommand(inspectFileCmd)
}

// --- inspect lor ------------------------------------------------------

var (
	inspectSigmaPs   float64
	inspectThreshold float64
	inspectVBoxSize  string
	inspectNVoxels   string
)

// inspectLorCmd visualizes a single literal LOR's voxel weights, in the
// style of original_source/src/bin/vislor.rs: it walks the LOR through a
// voxel box and prints every (index, chord[, TOF-weight]) the traversal
// yields, rather than reading any LOR file.
var inspectLorCmd = &cobra.Command{
	Use:   "lor 't1 t2  x1 y1 z1  x2 y2 z2'",
	Short: "Print the voxel weights a single literal LOR produces",
	Args:  cobra.ExactArgs(1),
	Run:   runInspectLor,
}

func init() {
	inspectLorCmd.Flags().Float64Var(&inspectSigmaPs, "sigma", 0,
		"TOF sensitivity, sigma in ps. If zero, TOF weighting is not applied.")
	inspectLorCmd.Flags().Float64Var(&inspectThreshold, "threshold", 0,
		"Omit voxels whose chord/weight falls below this value")
	inspectLorCmd.Flags().StringVar(&inspectVBoxSize, "vbox-size", "180,180,180",
		"Voxel box half-spans in mm, as 'x,y,z'")
	inspectLorCmd.Flags().StringVar(&inspectNVoxels, "nvoxels", "60,60,60",
		"Voxel box grid shape, as 'nx,ny,nz'")
}

func runInspectLor(cmd *cobra.Command, args []string) {
	l, err := parseLiteralLOR(args[0])
	if err != nil {
		logrus.Fatalf("parsing lor: %v", err)
	}

	halfWidth, err := parseFloatTriplet(inspectVBoxSize)
	if err != nil {
		logrus.Fatalf("parsing --vbox-size: %v", err)
	}
	n, err := parseIntTriplet(inspectNVoxels)
	if err != nil {
		logrus.Fatalf("parsing --nvoxels: %v", err)
	}

	box, err := fov.NewVoxelBox(
		geom.Vector{X: units.Length(halfWidth[0]), Y: units.Length(halfWidth[1]), Z: units.Length(halfWidth[2])},
		n,
	)
	if err != nil {
		logrus.Fatalf("building voxel box: %v", err)
	}
	fmt.Printf("vbox: half-width=%v voxels=%v voxel-size=%v\n", box.HalfWidth, box.N, box.VoxelSize)

	if inspectSigmaPs > 0 {
		sigma := units.LightTravel(units.PsToNs(inspectSigmaPs))
		w, err := tof.New(l.P1, l.P2, l.t1, l.t2, box, tof.Config{Sigma: sigma})
		if err != nil {
			logrus.Fatalf("building TOF weighting: %v", err)
		}
		printVoxelWeights(w.Next)
		return
	}

	t := traverse.New(l.P1, l.P2, box)
	printVoxelWeights(t.Next)
}

// printVoxelWeights drains a (index, chord/weight, ok) stream — either a
// *traverse.Traversal or a *tof.Weighted, both exposing the same Next
// shape — printing one line per voxel above --threshold.
func printVoxelWeights(next func() ([3]int, units.Length, bool)) {
	fmt.Printf("%-18s %12s\n", "index", "chord/weight")
	n := 0
	for {
		idx, chord, ok := next()
		if !ok {
			break
		}
		if float64(chord) < inspectThreshold {
			continue
		}
		fmt.Printf("%-18v %12.6f\n", idx, float64(chord))
		n++
	}
	fmt.Printf("%d voxels printed\n", n)
}

// literalLOR is the parsed form of the CLI's 't1 t2 x1 y1 z1 x2 y2 z2'
// argument: the geometric endpoints plus their absolute detection times,
// kept apart because tof.New wants both while lor.LOR only keeps their
// difference.
type literalLOR struct {
	P1, P2 geom.Point
	t1, t2 units.Time
}

// parseLiteralLOR parses the whitespace-separated 8-field literal LOR
// string 't1 t2  x1 y1 z1  x2 y2 z2' (t in ps, xyz in mm), the format
// original_source/src/bin/vislor.rs accepts via its --lor flag.
func parseLiteralLOR(s string) (literalLOR, error) {
	fields := strings.Fields(s)
	if len(fields) != 8 {
		return literalLOR{}, fmt.Errorf("expected 8 whitespace-separated fields 't1 t2 x1 y1 z1 x2 y2 z2', got %d", len(fields))
	}
	var v [8]float64
	for i, f := range fields {
		x, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return literalLOR{}, fmt.Errorf("field %d (%q): %w", i, f, err)
		}
		v[i] = x
	}
	return literalLOR{
		P1: geom.NewPoint(units.Length(v[2]), units.Length(v[3]), units.Length(v[4])),
		P2: geom.NewPoint(units.Length(v[5]), units.Length(v[6]), units.Length(v[7])),
		t1: units.PsToNs(v[0]),
		t2: units.PsToNs(v[1]),
	}, nil
}

// parseFloatTriplet parses a "x,y,z" comma-separated triplet of floats.
func parseFloatTriplet(s string) ([3]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return [3]float64{}, fmt.Errorf("expected 'x,y,z', got %q", s)
	}
	var out [3]float64
	for i, p := range parts {
		x, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return [3]float64{}, fmt.Errorf("component %d (%q): %w", i, p, err)
		}
		out[i] = x
	}
	return out, nil
}

// parseIntTriplet parses a "nx,ny,nz" comma-separated triplet of ints.
func parseIntTriplet(s string) ([3]int, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return [3]int{}, fmt.Errorf("expected 'nx,ny,nz', got %q", s)
	}
	var out [3]int
	for i, p := range parts {
		x, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return [3]int{}, fmt.Errorf("component %d (%q): %w", i, p, err)
		}
		out[i] = x
	}
	return out, nil
}

// --- inspect file -------------------------------------------------------

var (
	inspectFilePath    string
	inspectFileFormat  string
	inspectFileUseTrue bool
	inspectFileLimit   int
	inspectEventLo     int
	inspectEventHi     int
	inspectECutLo      float64
	inspectECutHi      float64
	inspectQCutLo      float64
	inspectQCutHi      float64
)

// inspectFileCmd dumps records from a LOR data file without running a
// reconstruction, applying the same event-range/energy/charge filter
// reconstruct threads from its config file.
var inspectFileCmd = &cobra.Command{
	Use:   "file",
	Short: "Inspect a LOR data file without running a reconstruction",
	Run:   runInspectFile,
}

func init() {
	inspectFileCmd.Flags().StringVar(&inspectFilePath, "path", "", "Path to the LOR data file (required)")
	inspectFileCmd.Flags().StringVar(&inspectFileFormat, "format", "tabular", "Input format: tabular or legacy")
	inspectFileCmd.Flags().BoolVar(&inspectFileUseTrue, "use-true", false, "Legacy format only: read the true coordinates instead of reco")
	inspectFileCmd.Flags().IntVar(&inspectFileLimit, "limit", 10, "Number of LORs to print")
	inspectFileCmd.Flags().IntVar(&inspectEventLo, "event-lo", 0, "Inclusive lower bound of the event-index range")
	inspectFileCmd.Flags().IntVar(&inspectEventHi, "event-hi", 0, "Exclusive upper bound of the event-index range (0 disables the range filter)")
	inspectFileCmd.Flags().Float64Var(&inspectECutLo, "ecut-lo", 0, "Lower bound (keV) of the energy cut")
	inspectFileCmd.Flags().Float64Var(&inspectECutHi, "ecut-hi", 0, "Upper bound (keV) of the energy cut (0 disables the cut)")
	inspectFileCmd.Flags().Float64Var(&inspectQCutLo, "qcut-lo", 0, "Lower bound of the charge cut")
	inspectFileCmd.Flags().Float64Var(&inspectQCutHi, "qcut-hi", 0, "Upper bound of the charge cut (0 disables the cut)")
	inspectFileCmd.MarkFlagRequired("path") //nolint:errcheck // cobra reports the missing-flag error itself
}

func runInspectFile(cmd *cobra.Command, args []string) {
	var reader lorio.Reader
	switch inspectFileFormat {
	case "tabular":
		reader = lorio.TabularReader{Path: inspectFilePath}
	case "legacy":
		reader = lorio.LegacyCylindricalReader{Path: inspectFilePath, UseTrue: inspectFileUseTrue}
	default:
		logrus.Fatalf("unknown format: %s", inspectFileFormat)
	}

	filter := lorio.Filter{
		EventRange: [2]int{inspectEventLo, inspectEventHi},
		ECut:       [2]float32{float32(inspectECutLo), float32(inspectECutHi)},
		QCut:       [2]float32{float32(inspectQCutLo), float32(inspectQCutHi)},
	}
	result, err := reader.ReadLORs(filter)
	if err != nil {
		logrus.Fatalf("reading %s: %v", inspectFilePath, err)
	}

	fmt.Printf("Total LORs   : %d\n", len(result.Records))
	fmt.Printf("Rejected     : %d\n", result.Rejected)

	n := inspectFileLimit
	if n > len(result.Records) {
		n = len(result.Records)
	}
	for i := 0; i < n; i++ {
		rec := result.Records[i]
		fmt.Printf("[%d] P1=(%.3f,%.3f,%.3f) P2=(%.3f,%.3f,%.3f) DT=%.3fns E=(%.1f,%.1f)\n",
			i,
			float64(rec.LOR.P1.X), float64(rec.LOR.P1.Y), float64(rec.LOR.P1.Z),
			float64(rec.LOR.P2.X), float64(rec.LOR.P2.Y), float64(rec.LOR.P2.Z),
			float64(rec.LOR.DT), rec.E1, rec.E2)
	}
}
