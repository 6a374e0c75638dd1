// Package jsonmend holds build metadata for the jsonmend tool.
package jsonmend

// Version is the semantic version of the jsonmend binary.
const Version = "0.1.0"
