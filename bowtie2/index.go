package bowtie2

import (
	"os"
)

var indexSuffixes = []string{"1", "2", "3", "4", "rev.1", "rev.2"}

// IndexFiles returns the six files bowtie2-build produces for prefix.
func IndexFiles(prefix string) []string {
	files := make([]string, 0, len(indexSuffixes))
	for _, suffix := range indexSuffixes {
		files = append(files, prefix+"."+suffix+".bt2")
	}
	return files
}

// EnsureIndex makes sure a bowtie2 index for refFa exists at prefix. If all
// six expected index files are already present it returns without invoking
// anything; the files' contents are not checked, so an existing index is
// trusted to match refFa. Otherwise bowtie2-build is run once. On failure no
// partially written index files are removed.
func EnsureIndex(refFa, prefix string, opts *Opts) error {
	missing := false
	for _, filename := range IndexFiles(prefix) {
		if _, err := os.Stat(filename); err != nil {
			missing = true
			break
		}
	}
	if !missing {
		return nil
	}
	return runTool(opts, opts.Bowtie2+"-build", "-q", refFa, prefix)
}
