// Package preprocess implements the comment-stripping step that runs before
// the core lexer, kept outside the pipeline: a single regex removing line
// comments starting with "//".
package preprocess

import "regexp"

var lineComment = regexp.MustCompile(`//.*`)

// StripComments removes every `//` line comment (running to end of line)
// from src. There are no block comments and no string literals to worry
// about escaping into, so a single regex pass is sufficient.
func StripComments(src string) string {
	return lineComment.ReplaceAllString(src, "")
}
