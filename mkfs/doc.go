// Package mkfs has the filesystem artefacts and operations used to lay out
// build output on disk.
package mkfs
