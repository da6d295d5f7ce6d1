package listing

import "path"

// MatchGlob reports whether name matches the shell glob pattern. Unlike
// path.Match it accepts "[!...]" for a negated class, as shells and fnmatch do.
func MatchGlob(pattern, name string) (bool, error) {
	return path.Match(globToMatch(pattern), name)
}

// globToMatch rewrites the leading '!' of each bracket expression to the '^'
// path.Match expects.
func globToMatch(pattern string) string {
	b := []byte(pattern)
	inClass := false
	for i := 0; i < len(b); i++ {
		switch b[i] {
		case '\\':
			i++
		case '[':
			if inClass {
				continue
			}
			inClass = true
			if i+1 < len(b) && b[i+1] == '!' {
				b[i+1] = '^'
				i++
			}
		case ']':
			inClass = false
		}
	}
	return string(b)
}
