package bam_test

import (
	"os"
	"path/filepath"
	"testing"

	biogobam "github.com/grailbio/hts/bam"
	"github.com/grailbio/hts/sam"
	gbam "github.com/grailbio/mapping/encoding/bam"
	"github.com/grailbio/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cigar4M = []sam.CigarOp{sam.NewCigarOp(sam.CigarMatch, 4)}

func newTestHeader(t *testing.T) (*sam.Header, *sam.Reference) {
	ref, err := sam.NewReference("ref1", "", "", 1000, nil, nil)
	require.NoError(t, err)
	header, err := sam.NewHeader(nil, []*sam.Reference{ref})
	require.NoError(t, err)
	return header, ref
}

func newRecord(t *testing.T, name string, ref *sam.Reference, pos int, aux []sam.Aux) *sam.Record {
	rec, err := sam.NewRecord(name, ref, ref, pos, pos+200, 204, 42, cigar4M,
		[]byte("ACGT"), []byte{40, 40, 40, 40}, aux)
	require.NoError(t, err)
	return rec
}

func newAux(t *testing.T, name string, value interface{}) sam.Aux {
	aux, err := sam.NewAux(sam.NewTag(name), value)
	require.NoError(t, err)
	return aux
}

func writeBAM(t *testing.T, path string, header *sam.Header, recs []*sam.Record) {
	out, err := os.Create(path)
	require.NoError(t, err)
	w, err := biogobam.NewWriter(out, header, 1)
	require.NoError(t, err)
	for _, rec := range recs {
		require.NoError(t, w.Write(rec))
	}
	require.NoError(t, w.Close())
	require.NoError(t, out.Close())
}

func TestTotalAlignmentScore(t *testing.T) {
	tmpDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	header, ref := newTestHeader(t)

	recs := []*sam.Record{
		newRecord(t, "r1", ref, 100, []sam.Aux{newAux(t, "AS", 42)}),
		newRecord(t, "r2", ref, 150, []sam.Aux{newAux(t, "AS", 7)}),
		// No score tag at all.
		newRecord(t, "r3", ref, 200, nil),
		// A non-integer AS value contributes zero rather than failing.
		newRecord(t, "r4", ref, 250, []sam.Aux{newAux(t, "AS", "high")}),
		// An unrelated tag is ignored.
		newRecord(t, "r5", ref, 300, []sam.Aux{newAux(t, "NM", 3)}),
	}
	path := filepath.Join(tmpDir, "test.bam")
	writeBAM(t, path, header, recs)

	total, err := gbam.TotalAlignmentScore(path)
	require.NoError(t, err)
	assert.Equal(t, int64(49), total)
}

func TestTotalAlignmentScoreEmpty(t *testing.T) {
	tmpDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	header, _ := newTestHeader(t)

	path := filepath.Join(tmpDir, "empty.bam")
	writeBAM(t, path, header, nil)

	total, err := gbam.TotalAlignmentScore(path)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func TestTotalAlignmentScoreMissingFile(t *testing.T) {
	tmpDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	_, err := gbam.TotalAlignmentScore(filepath.Join(tmpDir, "no-such.bam"))
	require.Error(t, err)
}
