// Copyright 2020 Grail Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package main

/*
bio-map aligns a pair of FASTQ files against a FASTA reference using bowtie2
and samtools, producing <outprefix>.bam (optionally coordinate-sorted and
indexed). The bowtie2 index is built next to the output if not already
present.
*/

import (
	"flag"
	"fmt"
	"os"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/mapping/bowtie2"
)

var (
	threads            = flag.Int("threads", bowtie2.DefaultOpts.Threads, "Number of bowtie2 alignment threads")
	maxInsert          = flag.Int("max-insert", bowtie2.DefaultOpts.MaxInsert, "Maximum fragment length for valid paired-end alignments")
	preset             = flag.String("preset", bowtie2.DefaultOpts.Preset, "bowtie2 sensitivity preset, passed as --<preset>")
	sortBam            = flag.Bool("sort", false, "Coordinate-sort and index the output BAM")
	removeBothUnmapped = flag.Bool("remove-both-unmapped", false, "Drop read pairs in which neither mate mapped")
	cleanIndex         = flag.Bool("clean-index", bowtie2.DefaultOpts.CleanIndex, "Delete the bowtie2 index files after a successful run")
	bowtie2Path        = flag.String("bowtie2", bowtie2.DefaultOpts.Bowtie2, "bowtie2 executable; <bowtie2>-build is used for indexing")
	samtoolsPath       = flag.String("samtools", bowtie2.DefaultOpts.Samtools, "samtools executable")
	verbose            = flag.Bool("v", false, "Echo each external command line before running it")
)

func bioMapUsage() {
	fmt.Printf("Usage: %s [OPTIONS] reads_1.fq reads_2.fq ref.fa outprefix\n", os.Args[0])
	fmt.Printf("Other options:\n")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = bioMapUsage
	shutdown := grail.Init()
	defer shutdown()

	args := flag.Args()
	if len(args) != 4 {
		log.Fatalf("Expected 4 positional arguments (reads_1 reads_2 ref.fa outprefix), got %d; please check flag syntax", len(args))
	}
	opts := bowtie2.Opts{
		Threads:            *threads,
		MaxInsert:          *maxInsert,
		Preset:             *preset,
		Sort:               *sortBam,
		RemoveBothUnmapped: *removeBothUnmapped,
		CleanIndex:         *cleanIndex,
		Bowtie2:            *bowtie2Path,
		Samtools:           *samtoolsPath,
		Verbose:            *verbose,
		VerboseOut:         os.Stdout,
	}
	if err := bowtie2.Map(args[0], args[1], args[2], args[3], &opts); err != nil {
		log.Fatalf("mapping %s/%s against %s: %v", args[0], args[1], args[2], err)
	}
}
