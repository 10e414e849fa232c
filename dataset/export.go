package dataset

import (
	"bufio"
	"fmt"
	"os"

	"github.com/kshedden/gonpy"
)

// SaveFloatVector writes one value per line in %.6e format.
func SaveFloatVector(filename string, x []float64) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	for i := range x {
		fmt.Fprintf(writer, "%.6e\n", x[i])
	}
	return writer.Flush()
}

// WriteNpy exports the dense genotype matrix produced by ReadBed as a
// float64 .npy array, samples by markers, for downstream Python tooling.
func (d *Dataset) WriteNpy(filename string) error {
	if d.X == nil {
		return fmt.Errorf("%w: dense genotype matrix not loaded", ErrState)
	}

	rows, cols := d.X.Dims()
	out := make([]float64, rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			out[i*cols+j] = d.X.At(i, j)
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return err
	}

	npw, err := gonpy.NewWriter(file)
	if err != nil {
		file.Close()
		return err
	}
	npw.Shape = []int{rows, cols}
	return npw.WriteFloat64(out)
}
