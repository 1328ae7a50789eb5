package core

import "strings"

// parseCommitLog aggregates the raw 'git log --pretty=format:%an|%ad' output
// for one quarter window into a commit count and a distinct author count.
func parseCommitLog(out []byte) (commits, contributors int) {
	authors := make(map[string]struct{})

	for _, l := range strings.Split(string(out), "\n") {
		l = strings.Trim(l, " \t\r'")
		if l == "" {
			continue
		}
		author, _, ok := strings.Cut(l, "|")
		if !ok {
			continue
		}
		commits++
		if author = strings.TrimSpace(author); author != "" {
			authors[author] = struct{}{}
		}
	}
	return commits, len(authors)
}
