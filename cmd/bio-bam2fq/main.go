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
bio-bam2fq recovers the original FASTQ reads from a BAM file. Reads mapped
to the reverse strand are reverse-complemented back to sequencing
orientation, and names gain a /1 or /2 suffix from the pairing flags.
Secondary and supplementary alignments are skipped so each read is emitted
once. Output files ending in .gz are gzip-compressed.
*/

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	biogobam "github.com/grailbio/hts/bam"
	"github.com/grailbio/hts/sam"
	"github.com/grailbio/mapping/encoding/bam"
	"github.com/grailbio/mapping/encoding/fastq"
	"github.com/klauspost/compress/gzip"
)

var (
	out1        = flag.String("1", "", "Output FASTQ for first-of-pair reads; requires -2")
	out2        = flag.String("2", "", "Output FASTQ for second-of-pair reads; requires -1")
	interleaved = flag.String("o", "", "Interleaved output FASTQ; mutually exclusive with -1/-2")
)

func bam2fqUsage() {
	fmt.Printf("Usage: %s [-o out.fq | -1 out_1.fq -2 out_2.fq] in.bam\n", os.Args[0])
	fmt.Printf("Other options:\n")
	flag.PrintDefaults()
}

// openOutput creates path for writing, gzip-compressing when the name ends
// in .gz. The returned closer flushes everything.
func openOutput(ctx context.Context, path string) (io.Writer, func() error, error) {
	f, err := file.Create(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	w := f.Writer(ctx)
	if !strings.HasSuffix(path, ".gz") {
		return w, func() error { return f.Close(ctx) }, nil
	}
	gz := gzip.NewWriter(w)
	closer := func() error {
		err := gz.Close()
		if cerr := f.Close(ctx); err == nil {
			err = cerr
		}
		return err
	}
	return gz, closer, nil
}

func main() {
	flag.Usage = bam2fqUsage
	shutdown := grail.Init()
	defer shutdown()

	args := flag.Args()
	if len(args) != 1 {
		log.Fatalf("Expected 1 positional argument (in.bam), got %d", len(args))
	}
	paired := *out1 != "" || *out2 != ""
	if paired && (*out1 == "" || *out2 == "" || *interleaved != "") {
		log.Fatal("Specify either -o, or both -1 and -2")
	}
	if !paired && *interleaved == "" {
		log.Fatal("No output specified; use -o or -1/-2")
	}

	ctx := vcontext.Background()
	in, err := file.Open(ctx, args[0])
	if err != nil {
		log.Fatalf("%s: %v", args[0], err)
	}
	defer in.Close(ctx) // nolint: errcheck
	r, err := biogobam.NewReader(in.Reader(ctx), 1)
	if err != nil {
		log.Fatalf("%s: %v", args[0], err)
	}
	defer r.Close() // nolint: errcheck

	var w1, w2 *fastq.Writer
	if paired {
		out, closer, err := openOutput(ctx, *out1)
		if err != nil {
			log.Fatalf("%s: %v", *out1, err)
		}
		defer mustClose(*out1, closer)
		w1 = fastq.NewWriter(out)
		out, closer, err = openOutput(ctx, *out2)
		if err != nil {
			log.Fatalf("%s: %v", *out2, err)
		}
		defer mustClose(*out2, closer)
		w2 = fastq.NewWriter(out)
	} else {
		out, closer, err := openOutput(ctx, *interleaved)
		if err != nil {
			log.Fatalf("%s: %v", *interleaved, err)
		}
		defer mustClose(*interleaved, closer)
		w1 = fastq.NewWriter(out)
		w2 = w1
	}

	nRecs := 0
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Fatalf("%s: %v", args[0], err)
		}
		if rec.Flags&(sam.Secondary|sam.Supplementary) != 0 {
			sam.PutInFreePool(rec)
			continue
		}
		read, err := bam.RecordToFastq(rec)
		if err != nil {
			log.Fatalf("%s: %v", args[0], err)
		}
		w := w1
		if rec.Flags&sam.Read2 != 0 {
			w = w2
		}
		if err := w.Write(read); err != nil {
			log.Fatalf("writing read %s: %v", read.ID, err)
		}
		nRecs++
		sam.PutInFreePool(rec)
	}
	log.Debug.Printf("converted %d records", nRecs)
}

func mustClose(path string, closer func() error) {
	if err := closer(); err != nil {
		log.Fatalf("closing %s: %v", path, err)
	}
}
