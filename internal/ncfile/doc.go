// Package ncfile classifies candidate files: whether a path is a netCDF
// container at all, which variant it is, and whether it already carries
// deflate compression.
//
// Classification reads only the 8-byte file signature; compression metadata
// comes from the external ncdump tool, consistent with the rest of the
// program delegating all format work to the netCDF utilities.
package ncfile
