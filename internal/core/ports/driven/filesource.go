package driven

// FileEntry is one candidate file discovered under an import root.
type FileEntry struct {
	// Path is the file's filesystem path.
	Path string

	// Name is the base file name used for display.
	Name string
}

// FileSource enumerates and reads the text files of an import folder.
// The filesystem adapter implements it; tests inject in-memory fakes.
type FileSource interface {
	// List enumerates regular files under root whose extension matches
	// case-insensitively, recursing through symbolic links.
	List(root string) ([]FileEntry, error)

	// Read returns the file's content as text. A read or decode failure
	// is reported as an error; the import counts such files as skipped.
	Read(path string) (string, error)
}
