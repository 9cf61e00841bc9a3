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
bio-alignment-score prints the sum of the AS (alignment score) aux tag over
all records of a BAM file. Records without the tag count as zero. The sum is
a cheap way to rank how well a read set maps against candidate references.
*/

import (
	"flag"
	"fmt"
	"os"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/mapping/encoding/bam"
)

func scoreUsage() {
	fmt.Printf("Usage: %s in.bam\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Usage = scoreUsage
	shutdown := grail.Init()
	defer shutdown()

	args := flag.Args()
	if len(args) != 1 {
		log.Fatalf("Expected 1 positional argument (in.bam), got %d", len(args))
	}
	total, err := bam.TotalAlignmentScore(args[0])
	if err != nil {
		log.Fatalf("%s: %v", args[0], err)
	}
	fmt.Println(total)
}
