package loader

import "io"

// Loader is the interface for fetching signature files from any
// datasource; implement it to read signature databases from your own
// desired sources.
type Loader interface {
	LoadFile(fileName string) (io.ReadCloser, error)
}
