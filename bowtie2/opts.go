package bowtie2

import (
	"io"
	"os"
)

// Opts configures one mapping run. A zero Opts is not usable; start from
// DefaultOpts and override fields as needed.
type Opts struct {
	// Threads is the number of alignment threads passed to bowtie2. The sort
	// stage derives its own thread count from this value, capped at 4.
	Threads int
	// MaxInsert is the maximum fragment length for valid paired-end
	// alignments (bowtie2 -X).
	MaxInsert int
	// Preset is the bowtie2 sensitivity preset, e.g. "very-sensitive-local".
	// It is passed as "--<preset>".
	Preset string
	// Sort selects coordinate-sorting of the output BAM, followed by BAM
	// indexing.
	Sort bool
	// RemoveBothUnmapped drops read pairs in which neither mate mapped.
	// Pairs with exactly one unmapped mate are kept.
	RemoveBothUnmapped bool
	// CleanIndex deletes the bowtie2 index files after a successful run.
	CleanIndex bool
	// Bowtie2 is the aligner executable. The index builder is derived from
	// it by appending "-build".
	Bowtie2 string
	// Samtools is the SAM/BAM tool executable.
	Samtools string
	// Verbose echoes each composed command line to VerboseOut before it is
	// run.
	Verbose bool
	// VerboseOut receives the echoed command lines. Defaults to os.Stdout.
	VerboseOut io.Writer
}

// DefaultOpts are the default mapping options.
var DefaultOpts = Opts{
	Threads:    1,
	MaxInsert:  1000,
	Preset:     "very-sensitive-local",
	CleanIndex: true,
	Bowtie2:    "bowtie2",
	Samtools:   "samtools",
	VerboseOut: os.Stdout,
}
