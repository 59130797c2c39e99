//go:build windows

package registry

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows/registry"
)

type hkcuReader struct{}

func (hkcuReader) TypedURLs(key string) ([]TypedURL, error) {
	k, err := registry.OpenKey(registry.CURRENT_USER, key, registry.QUERY_VALUE)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("open HKCU\\%s: %w", key, err)
	}
	defer k.Close()

	names, err := k.ReadValueNames(0)
	if err != nil {
		return nil, fmt.Errorf("list values: %w", err)
	}

	times := readTimes(timeKey(key))

	urls := make([]TypedURL, 0, len(names))
	for _, name := range names {
		val, _, err := k.GetStringValue(name)
		if err != nil {
			continue // not a string value
		}
		urls = append(urls, TypedURL{Name: name, URL: val, Filetime: times[name]})
	}

	sortByIndex(urls)
	return urls, nil
}

// readTimes returns FILETIMEs by value name; a missing key yields none.
func readTimes(key string) map[string]uint64 {
	times := map[string]uint64{}

	k, err := registry.OpenKey(registry.CURRENT_USER, key, registry.QUERY_VALUE)
	if err != nil {
		return times
	}
	defer k.Close()

	names, err := k.ReadValueNames(0)
	if err != nil {
		return times
	}
	for _, name := range names {
		b, _, err := k.GetBinaryValue(name)
		if err != nil {
			continue
		}
		if ft := parseFiletime(b); ft != 0 {
			times[name] = ft
		}
	}
	return times
}
