package blob

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// Environment variables consulted by Open. S3 specific variables are
// documented in s3.go.
const (
	envDriver = "RETAILCORE_BLOB_DRIVER"  // fs|s3|memory, default fs
	envFSRoot = "RETAILCORE_BLOB_FS_ROOT" // directory root when driver=fs
)

// Open selects a Store implementation from the environment. Export commands
// default to the filesystem driver so artifacts land next to the dataset
// without any configuration.
func Open(ctx context.Context) (Store, error) {
	name := strings.TrimSpace(os.Getenv(envDriver))
	switch Driver(name) {
	case DriverFilesystem, "":
		return NewFilesystem(os.Getenv(envFSRoot))
	case DriverS3:
		return OpenS3FromEnv(ctx)
	case DriverMemory:
		return NewMemory(), nil
	}
	return nil, fmt.Errorf("unknown blob driver %q", name)
}
