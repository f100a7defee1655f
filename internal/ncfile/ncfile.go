package ncfile

import (
	"bytes"
	"io"
	"os"
)

// Kind identifies the container variant of a netCDF file.
type Kind int

const (
	KindUnknown Kind = iota
	// KindClassic covers CDF-1, CDF-2 (64-bit offset) and CDF-5 files.
	KindClassic
	// KindNetCDF4 covers HDF5-backed netCDF-4 files.
	KindNetCDF4
)

var hdf5Signature = []byte{0x89, 'H', 'D', 'F', '\r', '\n', 0x1a, '\n'}

// DetectKind inspects the file signature and reports the container variant.
// Anything unreadable or unrecognized is KindUnknown; no error escapes.
func DetectKind(path string) Kind {
	file, err := os.Open(path)
	if err != nil {
		return KindUnknown
	}
	defer file.Close()

	header := make([]byte, 8)
	if _, err := io.ReadFull(file, header); err != nil {
		return KindUnknown
	}

	if bytes.Equal(header, hdf5Signature) {
		return KindNetCDF4
	}
	if bytes.HasPrefix(header, []byte("CDF")) {
		switch header[3] {
		case 0x01, 0x02, 0x05:
			return KindClassic
		}
	}
	return KindUnknown
}

// IsValid reports whether path looks like a netCDF file of any supported
// variant. Non-files and unreadable paths are simply not valid.
func IsValid(path string) bool {
	return DetectKind(path) != KindUnknown
}
