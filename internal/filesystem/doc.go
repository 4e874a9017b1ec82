// Package filesystem enumerates and reads the files the lint checks scan.
//
// FileSystem wraps an afero.Fs so the same code walks the operating system in
// production and an in-memory tree in tests. ExcludeFilter drops paths that
// match doublestar glob patterns relative to the walked root.
package filesystem
