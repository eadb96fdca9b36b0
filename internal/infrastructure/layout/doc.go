// Package layout breaks text into lines that fit a width.
//
// Everything here is pure: widths come from a caller-supplied Measure, so the
// same input always yields the same lines and no font state is touched.
package layout
