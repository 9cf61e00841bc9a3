package bam

import (
	"github.com/grailbio/hts/sam"
	"github.com/grailbio/mapping/encoding/fastq"
	"github.com/pkg/errors"
)

// RecordToFastq converts one alignment record into the FASTQ read it came
// from. The read name gains a "/1" or "/2" suffix according to the
// first/second-of-pair flag; a record with neither flag set is an error,
// since a paired-end workflow cannot place it. Records mapped to the
// reverse strand are reverse-complemented back into sequencing orientation.
func RecordToFastq(r *sam.Record) (*fastq.Read, error) {
	var suffix string
	switch {
	case r.Flags&sam.Read1 != 0:
		suffix = "/1"
	case r.Flags&sam.Read2 != 0:
		suffix = "/2"
	default:
		return nil, errors.Errorf("read %s must be first or second of pair according to flag", r.Name)
	}

	qual := make([]byte, len(r.Qual))
	for i, q := range r.Qual {
		qual[i] = q + 33
	}
	read := &fastq.Read{
		ID:   r.Name + suffix,
		Seq:  string(r.Seq.Expand()),
		Qual: string(qual),
	}
	if r.Flags&sam.Reverse != 0 {
		read.ReverseComplement()
	}
	return read, nil
}
