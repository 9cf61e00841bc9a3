package fastq

import (
	"bytes"
	"testing"
)

func TestReverseComplement(t *testing.T) {
	for _, test := range []struct {
		read Read
		want Read
	}{
		{Read{"r", "ACGG", "ABCD"}, Read{"r", "CCGT", "DCBA"}},
		{Read{"r", "AAAA", "IIII"}, Read{"r", "TTTT", "IIII"}},
		{Read{"r", "ACGTN", "ABCDE"}, Read{"r", "NACGT", "EDCBA"}},
		{Read{"r", "acgt", "!!!!"}, Read{"r", "ACGT", "!!!!"}},
		// Non-nucleotide bytes complement to N.
		{Read{"r", "AXGT", "ABCD"}, Read{"r", "ACNT", "DCBA"}},
		{Read{"r", "", ""}, Read{"r", "", ""}},
		{Read{"r", "G", "E"}, Read{"r", "C", "E"}},
	} {
		got := test.read
		got.ReverseComplement()
		if got != test.want {
			t.Errorf("ReverseComplement(%v): got %v, want %v", test.read, got, test.want)
		}
	}
}

func TestTrim(t *testing.T) {
	r := Read{"r", "ACGTACGT", "IIIIIIII"}
	r.Trim(4)
	if want := (Read{"r", "ACGT", "IIII"}); r != want {
		t.Errorf("got %v, want %v", r, want)
	}
	r.Trim(100)
	if want := (Read{"r", "ACGT", "IIII"}); r != want {
		t.Errorf("got %v, want %v", r, want)
	}
}

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	if err := w.Write(&Read{"read1/1", "ACGT", "IIII"}); err != nil {
		t.Fatal(err)
	}
	if err := w.Write(&Read{"read1/2", "TTTT", "ABCD"}); err != nil {
		t.Fatal(err)
	}
	want := "@read1/1\nACGT\n+\nIIII\n@read1/2\nTTTT\n+\nABCD\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestWriterScannerRoundTrip(t *testing.T) {
	reads := []Read{
		{"read1/1", "ACGT", "IIII"},
		{"read2/1", "GGCC", "AB#D"},
	}
	var buf bytes.Buffer
	w := NewWriter(&buf)
	for i := range reads {
		if err := w.Write(&reads[i]); err != nil {
			t.Fatal(err)
		}
	}
	s := NewScanner(&buf)
	var got Read
	for i := 0; s.Scan(&got); i++ {
		if got != reads[i] {
			t.Errorf("read %d: got %v, want %v", i, got, reads[i])
		}
	}
	if err := s.Err(); err != nil {
		t.Fatal(err)
	}
}
