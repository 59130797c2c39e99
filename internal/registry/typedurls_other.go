//go:build !windows

package registry

import "fmt"

type hkcuReader struct{}

func (hkcuReader) TypedURLs(key string) ([]TypedURL, error) {
	return nil, fmt.Errorf("%w: no registry on this platform", ErrNotFound)
}
