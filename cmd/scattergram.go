package cmd

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/petalo-go/petalo/scattergram"
)

// scattergramCmd is the parent of scattergram-related commands; it does
// no work itself.
var scattergramCmd = &cobra.Command{
	Use:   "scattergram",
	Short: "Build and inspect scatter-correction histograms",
}

var (
	scattergramEventsPath string
	scattergramProject    string
	scattergramBinsZ      int
	scattergramBinsDZ     int
	scattergramBinsR      int
	scattergramBinsPhi    int
	scattergramZMax       float64
	scattergramDZMax      float64
	scattergramRMax       float64
)

// scattergramInspectCmd loads a trained Scattergram from a classified-
// events file and prints a tabular 1-D or 2-D projection of it along one
// or two named axes ("z", "dz", "r", "phi"), in the style of
// original_source/src/bin/show_lorogram.rs's per-axis dependence tables.
var scattergramInspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print tabular projections of a trained scattergram",
	Run:   runScattergramInspect,
}

func init() {
	scattergramInspectCmd.Flags().StringVar(&scattergramEventsPath, "events", "", "Path to the classified-events file (required)")
	scattergramInspectCmd.Flags().StringVar(&scattergramProject, "project", "z", "Axis name, or comma-separated pair of axis names, to project onto")
	scattergramInspectCmd.Flags().IntVar(&scattergramBinsZ, "bins-z", 10, "Number of bins on the z axis")
	scattergramInspectCmd.Flags().IntVar(&scattergramBinsDZ, "bins-dz", 10, "Number of bins on the dz axis")
	scattergramInspectCmd.Flags().IntVar(&scattergramBinsR, "bins-r", 10, "Number of bins on the r axis")
	scattergramInspectCmd.Flags().IntVar(&scattergramBinsPhi, "bins-phi", 10, "Number of bins on the phi axis")
	scattergramInspectCmd.Flags().Float64Var(&scattergramZMax, "z-max", 100, "z axis half-span, mm (axis runs [-z-max, z-max))")
	scattergramInspectCmd.Flags().Float64Var(&scattergramDZMax, "dz-max", 1000, "dz axis span, mm (axis runs [0, dz-max))")
	scattergramInspectCmd.Flags().Float64Var(&scattergramRMax, "r-max", 120, "r axis span, mm (axis runs [0, r-max))")
	scattergramInspectCmd.MarkFlagRequired("events") //nolint:errcheck // cobra reports the missing-flag error itself

	scattergramCmd.AddCommand(scattergramInspectCmd)
}

func runScattergramInspect(cmd *cobra.Command, args []string) {
	axes := []scattergram.Axis{
		scattergram.AxisZ(scattergramBinsZ, -scattergramZMax, scattergramZMax),
		scattergram.AxisDZ(scattergramBinsDZ, scattergramDZMax),
		scattergram.AxisR(scattergramBinsR, scattergramRMax),
		scattergram.AxisPhi(scattergramBinsPhi),
	}
	sg, err := scattergram.LoadAndFill(scattergramEventsPath, axes)
	if err != nil {
		logrus.Fatalf("loading scattergram: %v", err)
	}

	names := strings.Split(scattergramProject, ",")
	for i := range names {
		names[i] = strings.TrimSpace(names[i])
	}
	switch len(names) {
	case 1:
		printProjection1D(sg, names[0])
	case 2:
		printProjection2D(sg, names[0], names[1])
	default:
		logrus.Fatalf("--project wants one or two axis names, got %d", len(names))
	}
}

// axisIndex finds the position of the named axis within the Scattergram's
// Axes() list, or -1 if no axis has that name.
func axisIndex(axes []scattergram.Axis, name string) int {
	for i, a := range axes {
		if a.Name() == name {
			return i
		}
	}
	return -1
}

// binCenter returns the midpoint coordinate of a's i-th bin.
func binCenter(a scattergram.Axis, i int) float64 {
	span := a.High() - a.Low()
	return a.Low() + (float64(i)+0.5)*span/float64(a.NumBins())
}

// decodeFlat recovers each axis's bin index from a flat, mixed-radix
// index built the way Scattergram.binIndex builds it: the first axis is
// the most significant digit, the last axis the least significant.
func decodeFlat(axes []scattergram.Axis, flat int) []int {
	idx := make([]int, len(axes))
	for i := len(axes) - 1; i >= 0; i-- {
		n := axes[i].NumBins()
		idx[i] = flat % n
		flat /= n
	}
	return idx
}

// totalBins returns the product of every axis's bin count.
func totalBins(axes []scattergram.Axis) int {
	n := 1
	for _, a := range axes {
		n *= a.NumBins()
	}
	return n
}

func printProjection1D(sg *scattergram.Scattergram, name string) {
	axes := sg.Axes()
	pos := axisIndex(axes, name)
	if pos < 0 {
		logrus.Fatalf("unknown axis %q", name)
	}
	a := axes[pos]

	trues := make([]int, a.NumBins())
	scatters := make([]int, a.NumBins())
	for flat := 0; flat < totalBins(axes); flat++ {
		idx := decodeFlat(axes, flat)
		trues[idx[pos]] += sg.TruesAt(flat)
		scatters[idx[pos]] += sg.ScattersAt(flat)
	}

	fmt.Printf("===== %s dependence =====\n", name)
	fmt.Printf("%10s %10s %10s %10s\n", name, "s/(t+s)", "trues", "scatters")
	for i := 0; i < a.NumBins(); i++ {
		t, s := trues[i], scatters[i]
		value := 0.0
		if t+s > 0 {
			value = float64(s) / float64(t+s)
		}
		fmt.Printf("%10.2f %10.4f %10d %10d\n", binCenter(a, i), value, t, s)
	}
}

func printProjection2D(sg *scattergram.Scattergram, rowName, colName string) {
	axes := sg.Axes()
	rowPos := axisIndex(axes, rowName)
	colPos := axisIndex(axes, colName)
	if rowPos < 0 {
		logrus.Fatalf("unknown axis %q", rowName)
	}
	if colPos < 0 {
		logrus.Fatalf("unknown axis %q", colName)
	}

	rowAxis, colAxis := axes[rowPos], axes[colPos]
	trues := make([][]int, rowAxis.NumBins())
	scatters := make([][]int, rowAxis.NumBins())
	for i := range trues {
		trues[i] = make([]int, colAxis.NumBins())
		scatters[i] = make([]int, colAxis.NumBins())
	}
	for flat := 0; flat < totalBins(axes); flat++ {
		idx := decodeFlat(axes, flat)
		r, c := idx[rowPos], idx[colPos]
		trues[r][c] += sg.TruesAt(flat)
		scatters[r][c] += sg.ScattersAt(flat)
	}

	fmt.Printf("===== %s and %s (value = s/(t+s)) =====\n", rowName, colName)
	fmt.Printf("%8s =", colName)
	for j := 0; j < colAxis.NumBins(); j++ {
		fmt.Printf("%8.1f", binCenter(colAxis, j))
	}
	fmt.Printf("\n%8s\n", rowName)
	for i := 0; i < rowAxis.NumBins(); i++ {
		fmt.Printf("%8.1f ", binCenter(rowAxis, i))
		for j := 0; j < colAxis.NumBins(); j++ {
			t, s := trues[i][j], scatters[i][j]
			value := 0.0
			if t+s > 0 {
				value = float64(s) / float64(t+s)
			}
			fmt.Printf("%8.2f", value)
		}
		fmt.Println()
	}
}
