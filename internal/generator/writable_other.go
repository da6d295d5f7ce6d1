//go:build !unix

package generator

import "os"

// canWrite falls back to the owner write bit where access(2) is unavailable.
func canWrite(dir string) bool {
	info, err := os.Stat(dir)
	return err == nil && info.Mode().Perm()&0o200 != 0
}
