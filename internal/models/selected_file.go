// Package models contains domain types for the upload client and its reference endpoint.
package models

// SelectedFile is a local file chosen for upload.
type SelectedFile struct {
	Name        string
	Size        int64
	ContentType string
	Content     []byte
}

// IsZero reports whether no file is held.
func (f SelectedFile) IsZero() bool {
	return f.Name == "" && f.Content == nil
}
