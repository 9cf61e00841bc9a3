// Package bam provides record-level utilities on top of the grailbio/hts
// SAM/BAM implementation: alignment-score aggregation across a BAM file and
// conversion of individual alignment records back to FASTQ reads.
package bam

import (
	"io"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/vcontext"
	biogobam "github.com/grailbio/hts/bam"
	"github.com/grailbio/hts/sam"
)

var asTag = sam.NewTag("AS")

// TotalAlignmentScore returns the sum of the AS aux tag over every record
// in the BAM file at path. Records without the tag, or with a non-integer
// value in it, contribute zero; unmapped reads routinely carry no score and
// must not abort the aggregation.
func TotalAlignmentScore(path string) (int64, error) {
	ctx := vcontext.Background()
	in, err := file.Open(ctx, path)
	if err != nil {
		return 0, err
	}
	defer in.Close(ctx) // nolint: errcheck
	r, err := biogobam.NewReader(in.Reader(ctx), 1)
	if err != nil {
		return 0, err
	}
	defer r.Close() // nolint: errcheck

	var total int64
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, err
		}
		if aux := rec.AuxFields.Get(asTag); aux != nil {
			if v, ok := auxInt(aux); ok {
				total += v
			}
		}
		sam.PutInFreePool(rec)
	}
	return total, nil
}

// auxInt extracts an integer aux value regardless of the width the encoder
// chose for it.
func auxInt(aux sam.Aux) (int64, bool) {
	switch v := aux.Value().(type) {
	case int8:
		return int64(v), true
	case uint8:
		return int64(v), true
	case int16:
		return int64(v), true
	case uint16:
		return int64(v), true
	case int32:
		return int64(v), true
	case uint32:
		return int64(v), true
	case int:
		return int64(v), true
	default:
		return 0, false
	}
}
