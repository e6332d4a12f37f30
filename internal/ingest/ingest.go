// Package ingest holds what the local and git ingesters share.
package ingest

import "strings"

// InIgnoredDir reports whether any directory segment of a slash-separated
// file path is one of ignoreDirs. The file name itself is not checked.
func InIgnoredDir(name string, ignoreDirs []string) bool {
	segments := strings.Split(name, "/")
	for _, segment := range segments[:len(segments)-1] {
		for _, ignored := range ignoreDirs {
			if segment == ignored {
				return true
			}
		}
	}
	return false
}
