// Package lcs finds the longest common substring of two strings.
package lcs

// Longest returns the longest contiguous run shared by a and b, compared
// rune by rune. When several runs share the maximal length, the one ending
// earliest in a is returned. The result is a substring of a, or "" when the
// strings share nothing.
//
// Runs in O(len(a)·len(b)) time and O(len(b)) space.
func Longest(a, b string) string {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 || len(rb) == 0 {
		return ""
	}

	// prev[j] and cur[j] hold the length of the common suffix of ra[:i] and
	// rb[:j] for the previous and current row.
	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	best, end := 0, 0

	for i := 1; i <= len(ra); i++ {
		for j := 1; j <= len(rb); j++ {
			if ra[i-1] != rb[j-1] {
				cur[j] = 0
				continue
			}
			cur[j] = prev[j-1] + 1
			if cur[j] > best {
				best = cur[j]
				end = i
			}
		}
		prev, cur = cur, prev
	}
	return string(ra[end-best : end])
}
