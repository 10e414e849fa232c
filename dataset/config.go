package dataset

// Config collects the inputs and knobs for one cross-validation session.
// Loaded from TOML, typically a global file plus per-run overrides.
type Config struct {
	GenoFile        string `toml:"geno_file"`
	PhenoFile       string `toml:"pheno_file"`
	CovarFile       string `toml:"covar_file"`
	CovarActionFile string `toml:"covar_action_file"`

	// 1-based index of the first data column: 3 for a phenotype file,
	// 6 for a FAM file ignoring sex, 5 with it.
	PhenoFirstCol int `toml:"pheno_first_col"`
	CovarFirstCol int `toml:"covar_first_col"`

	// "continuous" or "binary12" (1/2 case-control coding, remapped
	// to -1/+1 on load).
	PhenoMode string `toml:"pheno_mode"`

	NumFolds int    `toml:"num_folds"`
	FoldSeed uint64 `toml:"fold_seed"`

	// Byte budget for the standardized SNP column cache.
	CacheMemory uint64 `toml:"cache_memory"`

	// Process heap limit handed to the memory watchdog.
	MemoryLimit uint64 `toml:"memory_limit"`

	OutDir string `toml:"output_dir"`
}
