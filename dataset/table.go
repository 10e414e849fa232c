package dataset

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.dedis.ch/onet/v3/log"
	"gonum.org/v1/gonum/mat"
)

// PhenoMissing is the sentinel for a missing phenotype value. Unlike
// genotypes, missing phenotypes are never imputed; their presence fails
// the load.
const PhenoMissing = -9

// Phenotype coding modes for ReadTable.
const (
	PhenoContinuous = iota
	PhenoBinary12
)

// ReadTable reads a whitespace-delimited numeric table such as a PLINK
// phenotype, FAM or covariate file:
//
//	FID IID pheno1 pheno2 ...
//
// firstcol is the 1-based index of the first data column; everything before
// it is skipped as identifiers. The column count is fixed by the first line
// and later lines must match it. In PhenoBinary12 mode the 1/2 case-control
// coding is remapped to -1/+1 and case/control counts are logged.
func ReadTable(filename string, firstcol, mode int) (*mat.Dense, error) {
	if firstcol < 1 {
		return nil, fmt.Errorf("%w: first data column %d is not 1-based", ErrFormat, firstcol)
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var (
		rows      [][]float64
		numfields int
	)

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	for lineno := 1; scanner.Scan(); lineno++ {
		tokens := strings.Fields(scanner.Text())
		if len(tokens) == 0 {
			continue
		}
		if len(tokens) < firstcol-1 {
			return nil, fmt.Errorf("%w: %s line %d: %d tokens but first data column is %d", ErrFormat, filename, lineno, len(tokens), firstcol)
		}

		if rows == nil {
			numfields = len(tokens) - firstcol + 1
			if numfields < 1 {
				return nil, fmt.Errorf("%w: %s: no data columns after skipping %d identifier columns", ErrFormat, filename, firstcol-1)
			}
		} else if len(tokens)-firstcol+1 != numfields {
			return nil, fmt.Errorf("%w: %s line %d: expected %d data columns, got %d", ErrFormat, filename, lineno, numfields, len(tokens)-firstcol+1)
		}

		y := make([]float64, numfields)
		for j := 0; j < numfields; j++ {
			v, err := strconv.ParseFloat(tokens[j+firstcol-1], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %s line %d: %v", ErrFormat, filename, lineno, err)
			}
			y[j] = v
		}
		rows = append(rows, y)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s: empty table", ErrFormat, filename)
	}

	log.LLvl1(">>> Detected pheno file", filename+",", len(rows), "samples,", numfields, "columns (ex. FAM+INDIV IDs)")

	z := mat.NewDense(len(rows), numfields, nil)
	for i, y := range rows {
		for _, v := range y {
			if v == PhenoMissing {
				return nil, fmt.Errorf("%w: %s: missing values in phenotype files not supported", ErrData, filename)
			}
		}
		z.SetRow(i, y)
	}

	if mode == PhenoBinary12 {
		cases, controls := 0, 0
		for i := 0; i < len(rows); i++ {
			for j := 0; j < numfields; j++ {
				switch z.At(i, j) {
				case 2:
					cases++
				case 1:
					controls++
				}
				z.Set(i, j, z.At(i, j)*2-3)
			}
		}
		log.LLvl1(">>>", cases, "cases and", controls, "controls")
	}

	return z, nil
}
