package bowtie2

import (
	"bytes"
	"strings"
	"testing"

	"github.com/grailbio/hts/sam"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBothMatesUnmapped(t *testing.T) {
	for _, test := range []struct {
		flags sam.Flags
		want  bool
	}{
		{sam.Paired | sam.Unmapped | sam.MateUnmapped, true},
		{sam.Paired | sam.Unmapped, false},
		{sam.Paired | sam.MateUnmapped, false},
		{sam.Paired, false},
		{sam.Paired | sam.Unmapped | sam.MateUnmapped | sam.Read1, true},
	} {
		assert.Equal(t, test.want, bothMatesUnmapped(test.flags), "flags %v", test.flags)
	}
}

func TestKeepSAMLine(t *testing.T) {
	for _, test := range []struct {
		line string
		want bool
	}{
		{"@SQ\tSN:ref1\tLN:1000", true},
		{"", true},
		{"r1\t99\tref1\t100\t42\t4M\t=\t300\t204\tACGT\tIIII", true},
		// One mate unmapped: kept.
		{"r2\t73\tref1\t100\t42\t4M\t*\t0\t0\tACGT\tIIII", true},
		// Both mates unmapped: dropped.
		{"r3\t77\t*\t0\t0\t*\t*\t0\t0\tACGT\tIIII", false},
		{"r3\t141\t*\t0\t0\t*\t*\t0\t0\tACGT\tIIII", false},
		// Unparseable flag field passes through.
		{"garbage line", true},
	} {
		assert.Equal(t, test.want, keepSAMLine([]byte(test.line)), "line %q", test.line)
	}
}

func TestDropBothUnmapped(t *testing.T) {
	in := strings.Join([]string{
		"@HD\tVN:1.0",
		"@SQ\tSN:ref1\tLN:1000",
		"keep\t99\tref1\t100\t42\t4M\t=\t300\t204\tACGT\tIIII",
		"drop\t77\t*\t0\t0\t*\t*\t0\t0\tACGT\tIIII",
		"drop\t141\t*\t0\t0\t*\t*\t0\t0\tACGT\tIIII",
		"keep\t147\tref1\t300\t42\t4M\t=\t100\t-204\tACGT\tIIII",
	}, "\n") + "\n"
	want := strings.Join([]string{
		"@HD\tVN:1.0",
		"@SQ\tSN:ref1\tLN:1000",
		"keep\t99\tref1\t100\t42\t4M\t=\t300\t204\tACGT\tIIII",
		"keep\t147\tref1\t300\t42\t4M\t=\t100\t-204\tACGT\tIIII",
	}, "\n") + "\n"

	out := new(bytes.Buffer)
	require.NoError(t, dropBothUnmapped(out, strings.NewReader(in)))
	assert.Equal(t, want, out.String())
}
