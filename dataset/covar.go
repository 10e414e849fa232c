package dataset

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"go.dedis.ch/onet/v3/log"
)

// CovarAction controls a covariate's visibility at prediction time.
type CovarAction int

const (
	// CovarTrainTest keeps the covariate visible in both partitions.
	CovarTrainTest CovarAction = iota
	// CovarTrainOnly zeroes the covariate out in test mode.
	CovarTrainOnly
)

const (
	covarActionTrainOnlyStr = "train-only"
	covarActionTrainTestStr = "train+test"
)

// ReadCovarActions reads the per-covariate action file: one token per line,
// one line per covariate column. Tokens are matched case-insensitively;
// unknown tokens fall back to train+test with a warning. The row count must
// equal the covariate column count.
func (d *Dataset) ReadCovarActions(filename string) error {
	if d.ncovar == 0 {
		return fmt.Errorf("%w: covariates not loaded, cannot read actions", ErrState)
	}

	file, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		lines = append(lines, strings.ToLower(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	if len(lines) != d.ncovar {
		return fmt.Errorf("%w: wrong number of rows in covariable action file: got %d but expected %d", ErrState, len(lines), d.ncovar)
	}

	actions := make([]CovarAction, len(lines))
	numignore := 0
	for i, line := range lines {
		switch line {
		case covarActionTrainOnlyStr:
			actions[i] = CovarTrainOnly
			numignore++
		case covarActionTrainTestStr:
			actions[i] = CovarTrainTest
		default:
			log.Warn("unknown covariate action on line", i+1, ":", line)
			actions[i] = CovarTrainTest
		}
	}
	d.covarActions = actions

	log.LLvl1(">>> Will ignore", numignore, "variables in test time")
	return nil
}
