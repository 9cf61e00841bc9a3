// Package bowtie2 maps paired-end short reads against a reference with the
// bowtie2 aligner and samtools, both invoked as external processes. It
// covers index construction, the alignment pipeline itself (bowtie2 piped
// into samtools view, with an optional in-process unmapped-pair filter),
// optional coordinate sorting and BAM indexing, and cleanup of intermediate
// files.
//
// All orchestration is synchronous: each external invocation runs to
// completion before the next stage starts, and a failure anywhere aborts
// the run with no retry and no rollback of files already produced.
// Concurrent calls are safe as long as they use distinct output prefixes;
// calls sharing a prefix race on file creation and deletion.
package bowtie2

import (
	"bytes"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/grailbio/base/errors"
	pkgerrors "github.com/pkg/errors"
)

// Map aligns the paired reads in readsFwd/readsRev against refFa, writing
// the final BAM to outPrefix + ".bam". The bowtie2 index is built next to
// the output (outPrefix + ".map_index") unless already present. When
// opts.Sort is set the BAM is coordinate-sorted, a .bai companion index is
// written, and the unsorted intermediate is deleted. When opts.CleanIndex
// is set the six index files are deleted after a successful run.
func Map(readsFwd, readsRev, refFa, outPrefix string, opts *Opts) error {
	indexPrefix := outPrefix + ".map_index"
	if err := EnsureIndex(refFa, indexPrefix, opts); err != nil {
		return err
	}

	var cleanFiles []string
	if opts.CleanIndex {
		cleanFiles = IndexFiles(indexPrefix)
	}

	finalBam := outPrefix + ".bam"
	intermediateBam := finalBam
	if opts.Sort {
		intermediateBam = outPrefix + ".unsorted.bam"
	}

	align := exec.Command(opts.Bowtie2,
		"--threads", strconv.Itoa(opts.Threads),
		"--reorder",
		"--"+opts.Preset,
		"-X", strconv.Itoa(opts.MaxInsert),
		"-x", indexPrefix,
		"-1", readsFwd,
		"-2", readsRev,
	)
	convert := exec.Command(opts.Samtools, "view",
		"-b", "-S",
		"-T", refFa,
		"-o", intermediateBam,
		"-",
	)
	if err := runPipeline(opts, align, convert); err != nil {
		return err
	}

	if opts.Sort {
		threads := opts.Threads
		if threads > 4 {
			threads = 4
		}
		// 500MB total sort memory, split across at most 4 threads.
		threadMem := 500 / threads
		err := runTool(opts, opts.Samtools, "sort",
			"-@", strconv.Itoa(threads),
			"-m", strconv.Itoa(threadMem)+"M",
			"-o", finalBam,
			"-O", "bam",
			"-T", outPrefix+".tmp.samtool_sort",
			intermediateBam,
		)
		if err != nil {
			return err
		}
		if err := runTool(opts, opts.Samtools, "index", finalBam); err != nil {
			return err
		}
		cleanFiles = append(cleanFiles, intermediateBam)
	}

	for _, filename := range cleanFiles {
		if err := os.Remove(filename); err != nil {
			return pkgerrors.Wrap(err, "cleaning up mapping files")
		}
	}
	return nil
}

// runTool runs a single external command to completion, echoing it first
// when verbose. The tool's stderr is folded into the returned error.
func runTool(opts *Opts, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	stderr := new(bytes.Buffer)
	cmd.Stderr = stderr
	echo(opts, strings.Join(cmd.Args, " "))
	if err := cmd.Run(); err != nil {
		return pkgerrors.Wrapf(err, "%s: %s", name, strings.TrimSpace(stderr.String()))
	}
	return nil
}

// runPipeline connects align's stdout to convert's stdin, optionally
// through the unmapped-pair filter, and runs both stages to completion.
func runPipeline(opts *Opts, align, convert *exec.Cmd) error {
	alignErr := new(bytes.Buffer)
	align.Stderr = alignErr
	convertErr := new(bytes.Buffer)
	convert.Stderr = convertErr

	stages := []string{strings.Join(align.Args, " ")}
	alignOut, err := align.StdoutPipe()
	if err != nil {
		return err
	}
	filterErrC := make(chan error, 1)
	if opts.RemoveBothUnmapped {
		stages = append(stages, "drop-both-unmapped")
		convertIn, err := convert.StdinPipe()
		if err != nil {
			return err
		}
		go func() {
			err := dropBothUnmapped(convertIn, alignOut)
			if err != nil {
				// Keep draining so the aligner does not block writing to a
				// full pipe once the downstream stage is gone.
				io.Copy(ioutil.Discard, alignOut) // nolint: errcheck
			}
			if cerr := convertIn.Close(); err == nil {
				err = cerr
			}
			filterErrC <- err
		}()
	} else {
		convert.Stdin = alignOut
		filterErrC <- nil
	}
	stages = append(stages, strings.Join(convert.Args, " "))
	echo(opts, strings.Join(stages, " | "))

	if err := align.Start(); err != nil {
		return pkgerrors.Wrapf(err, "starting %s", align.Args[0])
	}
	if err := convert.Start(); err != nil {
		align.Process.Kill() // nolint: errcheck
		align.Wait()         // nolint: errcheck
		return pkgerrors.Wrapf(err, "starting %s", convert.Args[0])
	}

	// The filter goroutine reads align's stdout until EOF, so it must be
	// drained before align.Wait closes the pipe underneath it.
	filterErr := <-filterErrC
	e := errors.Once{}
	if err := align.Wait(); err != nil {
		e.Set(pkgerrors.Wrapf(err, "%s: %s", align.Args[0], strings.TrimSpace(alignErr.String())))
	}
	e.Set(filterErr)
	if err := convert.Wait(); err != nil {
		e.Set(pkgerrors.Wrapf(err, "%s: %s", convert.Args[0], strings.TrimSpace(convertErr.String())))
	}
	return e.Err()
}

func echo(opts *Opts, cmdline string) {
	if !opts.Verbose {
		return
	}
	w := opts.VerboseOut
	if w == nil {
		w = os.Stdout
	}
	fmt.Fprintln(w, cmdline)
}
