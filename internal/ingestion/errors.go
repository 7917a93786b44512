package ingestion

import "fmt"

// FileAccessError marks a whole input as failed: it could not be opened,
// had no usable header, or broke off mid-read.
type FileAccessError struct {
	Name string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("file %s: %v", e.Name, e.Err)
}

func (e *FileAccessError) Unwrap() error {
	return e.Err
}
