// Package filesystem finds model documents on local disk and watches
// model and schema directories for changes.
//
// Discovery orders paths component by component, so "a/b.json" sorts before
// "a-b.json" regardless of separator byte values. Hidden files are included in
// discovery but ignored by the watcher, which only reacts to files with a
// configured extension.
package filesystem
