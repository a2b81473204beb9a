// Command ncinfo prints the structure of a netCDF dataset: its dimensions
// with coordinate ranges, its variables with their attributes, and its
// global attributes.
//
// Usage:
//
//	ncinfo <datasetPath> [outputPath]
//
// The report goes to outputPath when given, otherwise to standard output.
// Paths ending in .yaml or .yml are read as dataset descriptors; anything
// else is opened as a netCDF-4 (HDF5) file. Diagnostics go to standard error
// at the level named by NCINFO_LOG_LEVEL.
package main

import "os"

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}
