//go:build !unix

package region

import "fmt"

// Reserve allocates n zeroed bytes from the Go heap on platforms
// without the anonymous-mapping fast path. Release is a no-op; the
// collector reclaims the region once unreferenced.
func Reserve(n int) ([]byte, func() error, error) {
	if n <= 0 {
		return nil, nil, fmt.Errorf("region: non-positive size %d", n)
	}
	buf := make([]byte, n)
	return buf, func() error { return nil }, nil
}
