package svn

import (
	gogit "github.com/go-git/go-git/v5"
)

// looksLikeGitCheckout reports whether dir sits inside a git checkout.
// Used to sharpen the error message when repository discovery fails:
// pointing the tool at a git clone is a common mistake.
func looksLikeGitCheckout(dir string) bool {
	if dir == "" {
		dir = "."
	}
	_, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{DetectDotGit: true})
	return err == nil
}
