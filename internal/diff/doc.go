// Package diff classifies the control lines of `svn diff` output and
// splits file header content into filename and metadata components.
//
// The header format is ambiguous: a tab between the filename and the
// revision info is unambiguous, but some diffs separate them with runs
// of spaces, and a filename may itself contain single spaces. The
// parser resolves this with a fixed precedence (tab first, then a run
// of two or more spaces) and treats everything else as a filename with
// no metadata suffix.
package diff
