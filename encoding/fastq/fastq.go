// Package fastq provides a FASTQ read value type along with scanning and
// writing support. Reads mapped to the reverse strand of a reference can be
// restored to their sequencing orientation with ReverseComplement.
package fastq

import (
	"github.com/grailbio/base/simd"
)

// A Read is one FASTQ record: an ID (without the leading '@'), bases, and a
// Sanger-encoded quality string. Seq and Qual are expected to be of equal
// length.
type Read struct {
	ID, Seq, Qual string
}

// Trim cuts the read and quality lengths to at most n.
func (r *Read) Trim(n int) {
	if len(r.Seq) > n {
		r.Seq = r.Seq[:n]
	}
	if len(r.Qual) > n {
		r.Qual = r.Qual[:n]
	}
}

// ReverseComplement replaces the read's bases with their reverse complement
// and reverses the quality string to match. Bases outside ACGT (either case)
// become 'N'.
func (r *Read) ReverseComplement() {
	seq := []byte(r.Seq)
	nByte := len(seq)
	nByteDiv2 := nByte >> 1
	for idx, invIdx := 0, nByte-1; idx != nByteDiv2; idx, invIdx = idx+1, invIdx-1 {
		seq[idx], seq[invIdx] = revComp8Table[seq[invIdx]], revComp8Table[seq[idx]]
	}
	if nByte&1 == 1 {
		seq[nByteDiv2] = revComp8Table[seq[nByteDiv2]]
	}
	qual := []byte(r.Qual)
	simd.Reverse8Inplace(qual)
	r.Seq = string(seq)
	r.Qual = string(qual)
}

// revComp8Table maps 'A'/'a' to 'T', 'C'/'c' to 'G', 'G'/'g' to 'C',
// 'T'/'t' to 'A', and everything else to 'N'.
var revComp8Table = [256]byte{
	'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N',
	'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N',
	'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N',
	'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N',
	'N', 'T', 'N', 'G', 'N', 'N', 'N', 'C', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N',
	'N', 'N', 'N', 'N', 'A', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N',
	'N', 'T', 'N', 'G', 'N', 'N', 'N', 'C', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N',
	'N', 'N', 'N', 'N', 'A', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N',
	'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N',
	'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N',
	'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N',
	'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N',
	'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N',
	'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N',
	'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N',
	'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N', 'N'}
