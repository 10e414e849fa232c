// Package dataset exposes a PLINK dataset as a virtual design matrix for
// iterative PCA/SCCA solvers: column 0 is the intercept, columns 1..nsnps
// are standardized genotype markers loaded on demand, and the remaining
// columns are covariates subject to a train/test visibility policy. The
// genotype matrix is never materialized in full on this path; markers are
// decoded, imputed and standardized per column for the current
// cross-validation partition, with a bounded cache over the training
// partition.
package dataset

import (
	"fmt"
	"math"

	"github.com/hhcho/sparsecca/plink"
	"github.com/montanaflynn/stats"
	"go.dedis.ch/onet/v3/log"
	"gonum.org/v1/gonum/mat"
)

// Mode selects which partition is current for counts, masks and column
// retrieval.
type Mode int

const (
	ModeTrain Mode = iota
	ModeTest
)

// Dataset is the session object for one dataset: sample and marker counts,
// loaded tables, the open genotype file, fold state and the SNP column
// cache. The zero value is not usable; construct with NewDataset and load
// the phenotype before anything that depends on the sample count.
type Dataset struct {
	config *Config

	n      int
	nsnps  int
	ncovar int

	bed *plink.Bed

	X  *mat.Dense // dense genotype matrix, one-shot ReadBed path only
	Y  *mat.Dense // phenotypes, one row per sample
	X2 *mat.Dense // standardized covariates, one row per sample

	Ytrain, Ytest *mat.Dense

	covarActions []CovarAction

	folds     []int
	maskTrain []bool
	maskTest  []bool
	ntrain    int
	ntest     int

	mode     Mode
	maskCurr []bool
	ncurr    int
	ones     []float64
	zeros    []float64

	cache     *snpCache
	loadCount int

	packed []byte
	codes  []byte
}

func NewDataset(config *Config) *Dataset {
	return &Dataset{config: config, mode: ModeTrain}
}

// ReadPheno loads the phenotype table named in the config. This read
// defines the sample count N for the whole session; nothing is set if the
// load fails.
func (d *Dataset) ReadPheno() error {
	mode := PhenoContinuous
	if d.config.PhenoMode == "binary12" {
		mode = PhenoBinary12
	}

	y, err := ReadTable(d.config.PhenoFile, d.config.PhenoFirstCol, mode)
	if err != nil {
		return err
	}

	rows, _ := y.Dims()
	d.Y = y
	d.n = rows
	return nil
}

// ReadCovar loads and columnwise-standardizes the covariate table. The
// phenotype must be loaded first so the row count can be checked against N.
func (d *Dataset) ReadCovar() error {
	if d.n == 0 {
		return fmt.Errorf("%w: phenotype not loaded, sample count unknown", ErrState)
	}

	x2, err := ReadTable(d.config.CovarFile, d.config.CovarFirstCol, PhenoContinuous)
	if err != nil {
		return err
	}
	rows, cols := x2.Dims()
	if rows != d.n {
		return fmt.Errorf("%w: covariate file has %d rows but %d samples are known", ErrFormat, rows, d.n)
	}

	if err := standardizeColumns(x2); err != nil {
		return err
	}

	d.X2 = x2
	d.ncovar = cols
	return nil
}

// standardizeColumns rescales every column to zero mean and unit sample
// variance in place. Covariates have no missing-value convention, so the
// plain column statistics apply. A constant column becomes all zeros.
func standardizeColumns(x *mat.Dense) error {
	rows, cols := x.Dims()
	col := make([]float64, rows)
	for j := 0; j < cols; j++ {
		mat.Col(col, j, x)
		mean, err := stats.Mean(col)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrData, err)
		}
		sd, err := stats.StandardDeviationSample(col)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrData, err)
		}
		if sd == 0 {
			log.Warn("constant column", j, "standardized to zeros")
			for i := range col {
				col[i] = 0
			}
		} else {
			for i := range col {
				col[i] = (col[i] - mean) / sd
			}
		}
		x.SetCol(j, col)
	}
	return nil
}

// ReadBed decodes the whole BED file into a dense N x nsnps matrix with
// per-marker mean imputation of missing genotypes. This is the one-shot
// exploratory path; iterative access goes through AttachBed and
// GetCoordinate instead.
func (d *Dataset) ReadBed() error {
	if d.n == 0 {
		return fmt.Errorf("%w: haven't read a FAM/PHENO file so don't know what sample size is", ErrState)
	}

	stream, err := plink.NewBedStream(d.config.GenoFile, d.n)
	if err != nil {
		return err
	}
	defer stream.Close()

	nsnps := stream.NumSnps()
	log.LLvl1(">>> Detected BED file:", d.config.GenoFile, "with", d.n, "samples,", nsnps, "SNPs")

	x := mat.NewDense(d.n, nsnps, nil)
	for j := 0; j < nsnps; j++ {
		codes, err := stream.NextMarker()
		if err != nil {
			return err
		}

		sum, ngood := 0.0, 0
		for _, c := range codes {
			if c != plink.NA {
				sum += float64(c)
				ngood++
			}
		}
		avg := sum / float64(ngood)

		for i, c := range codes {
			if c != plink.NA {
				x.Set(i, j, float64(c))
			} else {
				x.Set(i, j, avg)
			}
		}
	}

	d.X = x
	d.nsnps = nsnps
	return nil
}

// AttachBed opens the BED file for per-marker random access without
// decoding anything upfront. The sample count must already be known.
func (d *Dataset) AttachBed() error {
	if d.n == 0 {
		return fmt.Errorf("%w: haven't read a FAM/PHENO file so don't know what sample size is", ErrState)
	}

	bed, err := plink.Open(d.config.GenoFile, d.n)
	if err != nil {
		return err
	}

	d.bed = bed
	d.nsnps = bed.NumSnps()
	d.packed = make([]byte, bed.BytesPerMarker())
	d.codes = make([]byte, d.n)

	log.LLvl1(d.config.GenoFile, "np:", bed.BytesPerMarker(), "nsnps:", d.nsnps)
	return nil
}

// LoadSnp reads marker j from disk for the current partition, imputes
// missing genotypes and standardizes to zero mean and unit sample variance
// (N-1 denominator) over the partition's non-missing values. A missing
// genotype becomes mean/sd. A marker that is constant within the partition,
// or has fewer than two genotyped samples, standardizes to all zeros.
func (d *Dataset) LoadSnp(j int) ([]float64, error) {
	if d.bed == nil {
		return nil, fmt.Errorf("%w: genotype file not attached", ErrState)
	}
	if d.maskCurr == nil {
		return nil, fmt.Errorf("%w: no fold selected", ErrState)
	}

	if err := d.bed.DecodeMarker(d.codes, d.packed, j); err != nil {
		return nil, err
	}
	d.loadCount++

	geno := make([]float64, d.ncurr)
	k, ngood := 0, 0
	sum := 0.0
	for i := 0; i < d.n; i++ {
		if !d.maskCurr[i] {
			continue
		}
		v := float64(d.codes[i])
		geno[k] = v
		if v != plink.NA {
			ngood++
			sum += v
		}
		k++
	}

	mean := sum / float64(ngood)
	sum2 := 0.0
	for _, v := range geno {
		if v != plink.NA {
			diff := v - mean
			sum2 += diff * diff
		}
	}

	if ngood < 2 {
		log.Warn("marker", j, "has", ngood, "genotyped samples in the current partition, standardized to zeros")
		for i := range geno {
			geno[i] = 0
		}
		return geno, nil
	}

	sd := math.Sqrt(sum2 / float64(ngood-1))
	if sd == 0 {
		log.Warn("marker", j, "is constant in the current partition, standardized to zeros")
		for i := range geno {
			geno[i] = 0
		}
		return geno, nil
	}

	if ngood == d.ncurr {
		for i := range geno {
			geno[i] = (geno[i] - mean) / sd
		}
	} else {
		meanSD := mean / sd
		for i, v := range geno {
			if v == plink.NA {
				geno[i] = meanSD
			} else {
				geno[i] = (v - mean) / sd
			}
		}
	}

	return geno, nil
}

// GetSnp returns the standardized column for marker j in the current
// partition. In train mode columns are served from the cache when present;
// test mode always reads fresh from disk so the training cache survives the
// whole fit.
func (d *Dataset) GetSnp(j int) ([]float64, error) {
	if d.mode == ModeTrain {
		if d.cache == nil {
			return nil, fmt.Errorf("%w: no fold selected", ErrState)
		}
		if col, ok := d.cache.get(j); ok {
			return col, nil
		}
		col, err := d.LoadSnp(j)
		if err != nil {
			return nil, err
		}
		d.cache.put(j, col)
		return col, nil
	}

	return d.LoadSnp(j)
}

// GetCoordinate returns column j of the augmented design matrix for the
// current partition: 0 is the intercept, 1..nsnps are genotype markers, the
// rest are covariates subject to their action policy. The returned slice is
// a fresh copy the caller may modify.
func (d *Dataset) GetCoordinate(j int) ([]float64, error) {
	if j < 0 || j >= 1+d.nsnps+d.ncovar {
		return nil, fmt.Errorf("%w: column %d outside [0, %d)", ErrIndex, j, 1+d.nsnps+d.ncovar)
	}
	if d.maskCurr == nil {
		return nil, fmt.Errorf("%w: no fold selected", ErrState)
	}

	if j == 0 {
		return append([]float64(nil), d.ones...), nil
	}

	if j <= d.nsnps {
		col, err := d.GetSnp(j - 1)
		if err != nil {
			return nil, err
		}
		return append([]float64(nil), col...), nil
	}

	cidx := j - d.nsnps - 1
	if d.mode == ModeTest && d.covarActions != nil && d.covarActions[cidx] == CovarTrainOnly {
		log.LLvl1(">>> Ignoring covariable", cidx, "(variable", j, ") in prediction")
		return append([]float64(nil), d.zeros...), nil
	}

	x := make([]float64, d.ncurr)
	k := 0
	for i := 0; i < d.n; i++ {
		if d.maskCurr[i] {
			x[k] = d.X2.At(i, cidx)
			k++
		}
	}
	return x, nil
}

// Close releases the genotype file handle.
func (d *Dataset) Close() error {
	if d.bed == nil {
		return nil
	}
	err := d.bed.Close()
	d.bed = nil
	return err
}

func (d *Dataset) N() int            { return d.n }
func (d *Dataset) NumSnps() int      { return d.nsnps }
func (d *Dataset) NumCovar() int     { return d.ncovar }
func (d *Dataset) TrainCount() int   { return d.ntrain }
func (d *Dataset) TestCount() int    { return d.ntest }
func (d *Dataset) CurrentCount() int { return d.ncurr }
func (d *Dataset) Mode() Mode        { return d.mode }

func (d *Dataset) Geno() *mat.Dense       { return d.X }
func (d *Dataset) Pheno() *mat.Dense      { return d.Y }
func (d *Dataset) TrainPheno() *mat.Dense { return d.Ytrain }
func (d *Dataset) TestPheno() *mat.Dense  { return d.Ytest }
func (d *Dataset) Covar() *mat.Dense      { return d.X2 }
func (d *Dataset) Config() *Config        { return d.config }

// LoadCount reports how many marker reads have hit the disk, for cache
// observability.
func (d *Dataset) LoadCount() int { return d.loadCount }
