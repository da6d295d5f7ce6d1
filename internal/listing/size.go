package listing

import "strconv"

const unit = 1024

var units = []string{"KB", "MB", "GB", "TB", "PB"}

// PrettySize renders size using the largest unit (up to PB) whose threshold
// it reaches. The quotient is truncated, not rounded: 1535 bytes is "1 KB".
func PrettySize(size int64) string {
	if size < unit {
		if size == 1 {
			return "1 byte"
		}
		return strconv.FormatInt(size, 10) + " bytes"
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit && exp < len(units)-1; n /= unit {
		div *= unit
		exp++
	}
	return strconv.FormatInt(size/div, 10) + " " + units[exp]
}
