package dataset

import (
	"encoding/binary"
	"fmt"
	"os"
	"path"

	"github.com/aead/chacha20/chacha"
	"github.com/hhcho/frand"
	"go.dedis.ch/onet/v3/log"
	"gonum.org/v1/gonum/mat"
)

const prgBufferSize = 1024

// AssignFolds gives every sample a uniform-random fold id in
// [0, NumFolds). The draw is deterministic in the configured seed and the
// repetition index, and the assignment is written to folds_<rep>.txt for
// reproducibility.
func (d *Dataset) AssignFolds(rep int) error {
	if d.n == 0 {
		return fmt.Errorf("%w: phenotype not loaded, sample count unknown", ErrState)
	}
	nfolds := d.config.NumFolds
	if nfolds < 1 {
		return fmt.Errorf("%w: num_folds is %d, must be at least 1", ErrState, nfolds)
	}

	seed := make([]byte, chacha.KeySize)
	binary.LittleEndian.PutUint64(seed, d.config.FoldSeed)
	binary.LittleEndian.PutUint64(seed[8:], uint64(rep))
	rng := frand.NewCustom(seed, prgBufferSize, 20)

	folds := make([]int, d.n)
	for i := range folds {
		folds[i] = rng.Intn(nfolds)
	}
	d.folds = folds

	foldsd := make([]float64, d.n)
	for i, f := range folds {
		foldsd[i] = float64(f)
	}
	if d.config.OutDir != "" {
		if err := os.MkdirAll(d.config.OutDir, 0755); err != nil {
			return err
		}
	}
	fname := path.Join(d.config.OutDir, fmt.Sprintf("folds_%d.txt", rep))
	if err := SaveFloatVector(fname, foldsd); err != nil {
		return err
	}
	log.LLvl1(">>> Assigned", nfolds, "folds over", d.n, "samples, saved to", fname)

	return nil
}

// SelectFold makes fold k the test set and every other fold the training
// set, recomputes the partition counts, splits the phenotype rows and
// rebuilds the SNP column cache so no column from the previous partition
// survives.
func (d *Dataset) SelectFold(k int) error {
	if d.folds == nil {
		return fmt.Errorf("%w: folds not assigned", ErrState)
	}
	if k < 0 || k >= d.config.NumFolds {
		return fmt.Errorf("%w: fold %d outside [0, %d)", ErrIndex, k, d.config.NumFolds)
	}

	maskTrain := make([]bool, d.n)
	maskTest := make([]bool, d.n)
	ntest := 0
	for i, f := range d.folds {
		if f == k {
			maskTest[i] = true
			ntest++
		} else {
			maskTrain[i] = true
		}
	}
	d.maskTrain = maskTrain
	d.maskTest = maskTest
	d.ntest = ntest
	d.ntrain = d.n - ntest

	d.splitPheno()
	d.cache = newSnpCache(d.ntrain, d.nsnps, d.config.CacheMemory)
	d.applyMode()

	log.LLvl1(">>> SelectFold:", k, "Ntrain:", d.ntrain, "Ntest:", d.ntest)
	return nil
}

// splitPheno copies phenotype rows into the train/test sub-matrices
// according to the active masks.
func (d *Dataset) splitPheno() {
	_, cols := d.Y.Dims()
	d.Ytrain = zeroOrNil(d.ntrain, cols)
	d.Ytest = zeroOrNil(d.ntest, cols)

	itrain, itest := 0, 0
	for r := 0; r < d.n; r++ {
		if d.maskTrain[r] {
			d.Ytrain.SetRow(itrain, d.Y.RawRowView(r))
			itrain++
		} else {
			d.Ytest.SetRow(itest, d.Y.RawRowView(r))
			itest++
		}
	}
}

// SetMode switches which partition is current for the coordinate accessor
// and the genotype store. A lightweight toggle: masks and counts are
// precomputed by SelectFold.
func (d *Dataset) SetMode(mode Mode) error {
	if d.maskTrain == nil {
		return fmt.Errorf("%w: no fold selected", ErrState)
	}
	d.mode = mode
	d.applyMode()
	return nil
}

func (d *Dataset) applyMode() {
	if d.mode == ModeTrain {
		d.ncurr = d.ntrain
		d.maskCurr = d.maskTrain
	} else {
		d.ncurr = d.ntest
		d.maskCurr = d.maskTest
	}
	d.ones = make([]float64, d.ncurr)
	for i := range d.ones {
		d.ones[i] = 1
	}
	d.zeros = make([]float64, d.ncurr)
}

func zeroOrNil(r, c int) *mat.Dense {
	if r == 0 {
		return nil
	}
	return mat.NewDense(r, c, nil)
}

// Folds returns a copy of the per-sample fold assignment.
func (d *Dataset) Folds() []int {
	return append([]int(nil), d.folds...)
}
