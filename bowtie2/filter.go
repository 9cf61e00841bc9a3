package bowtie2

import (
	"bufio"
	"bytes"
	"io"
	"strconv"

	"github.com/grailbio/hts/sam"
)

// maxSAMLineSize bounds a single SAM line in the filter. Plenty for short
// reads; long-read SAM can carry multi-megabyte sequences.
const maxSAMLineSize = 16 << 20

// bothMatesUnmapped reports whether the FLAG word marks both the record and
// its mate as unmapped.
func bothMatesUnmapped(flags sam.Flags) bool {
	return flags&sam.Unmapped != 0 && flags&sam.MateUnmapped != 0
}

// keepSAMLine decides whether a raw SAM line passes the unmapped-pair
// filter. Header lines and lines whose FLAG field cannot be parsed are
// passed through untouched; samtools view rejects genuinely malformed
// input downstream.
func keepSAMLine(line []byte) bool {
	if len(line) == 0 || line[0] == '@' {
		return true
	}
	// FLAG is the second tab-separated field.
	tab := bytes.IndexByte(line, '\t')
	if tab < 0 {
		return true
	}
	field := line[tab+1:]
	if end := bytes.IndexByte(field, '\t'); end >= 0 {
		field = field[:end]
	}
	flags, err := strconv.ParseUint(string(field), 10, 32)
	if err != nil {
		return true
	}
	return !bothMatesUnmapped(sam.Flags(flags))
}

// dropBothUnmapped copies SAM text from r to w, dropping alignment lines in
// which both the read and its mate are flagged unmapped. A pair with one
// mapped mate is kept in full because both of its lines keep at least one
// of the two unmapped bits clear.
func dropBothUnmapped(w io.Writer, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 1<<20), maxSAMLineSize)
	out := bufio.NewWriter(w)
	for scanner.Scan() {
		line := scanner.Bytes()
		if !keepSAMLine(line) {
			continue
		}
		if _, err := out.Write(line); err != nil {
			return err
		}
		if err := out.WriteByte('\n'); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return out.Flush()
}
