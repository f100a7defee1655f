// Package converter invokes the external netCDF compression tools under a
// timing wrapper and reports per-file conversion results.
//
// Two interchangeable strategies exist, nccopy and nc2nc, sharing one
// contract: if the destination already exists the tool is not invoked and
// the result carries sentinel timings, making re-runs idempotent. A failed
// invocation produces no partial result; the caller decides what to skip.
package converter
