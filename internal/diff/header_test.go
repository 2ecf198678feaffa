package diff_test

import (
	"testing"

	"github.com/postreview/svndiff/internal/diff"
)

func TestParseFilenameHeader(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantFile   string
		wantSuffix string
	}{
		{
			name:       "tab separated",
			input:      "foo.txt\t(revision 5)\n",
			wantFile:   "foo.txt",
			wantSuffix: "\t(revision 5)\n",
		},
		{
			name:       "multi space separated",
			input:      "foo bar.txt  (revision 5)\n",
			wantFile:   "foo bar.txt",
			wantSuffix: "\t(revision 5)\n",
		},
		{
			name:       "no metadata",
			input:      "plainname.txt\n",
			wantFile:   "plainname.txt",
			wantSuffix: "\n",
		},
		{
			name:       "tab wins over space run",
			input:      "dir name/foo.txt\t(working copy)  extra\n",
			wantFile:   "dir name/foo.txt",
			wantSuffix: "\t(working copy)  extra\n",
		},
		{
			name:       "single spaces belong to the filename",
			input:      "a b c.txt\t(revision 7)\n",
			wantFile:   "a b c.txt",
			wantSuffix: "\t(revision 7)\n",
		},
		{
			name:       "long space run consumed entirely",
			input:      "foo.txt     (revision 12)\n",
			wantFile:   "foo.txt",
			wantSuffix: "\t(revision 12)\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file, suffix := diff.ParseFilenameHeader(tt.input)
			if file != tt.wantFile {
				t.Errorf("filename = %q, want %q", file, tt.wantFile)
			}
			if suffix != tt.wantSuffix {
				t.Errorf("suffix = %q, want %q", suffix, tt.wantSuffix)
			}
		})
	}
}

func TestLineClassification(t *testing.T) {
	tests := []struct {
		line  string
		orig  bool
		new   bool
		index bool
	}{
		{line: "--- foo.py\t(revision 4)\n", orig: true},
		{line: "+++ foo.py\t(working copy)\n", new: true},
		{line: "Index: foo.py\n", index: true},
		{line: "--- just dashes without revision info\n"},
		{line: "+a context line that begins with plus\n"},
		{line: "=========\n"},
	}

	for _, tt := range tests {
		if got := diff.IsOrigFileLine(tt.line); got != tt.orig {
			t.Errorf("IsOrigFileLine(%q) = %v, want %v", tt.line, got, tt.orig)
		}
		if got := diff.IsNewFileLine(tt.line); got != tt.new {
			t.Errorf("IsNewFileLine(%q) = %v, want %v", tt.line, got, tt.new)
		}
		if got := diff.IsIndexLine(tt.line); got != tt.index {
			t.Errorf("IsIndexLine(%q) = %v, want %v", tt.line, got, tt.index)
		}
	}
}
