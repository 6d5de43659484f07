package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
)

// ImageStore abstracts where uploaded images live, so the backend can be
// swapped without touching the handlers.
type ImageStore interface {
	Put(file *multipart.FileHeader, name string) error
	Remove(name string) error
	PublicPath(name string) string
}

// LocalImageStore keeps images on the local filesystem under Dir. The router
// serves Dir statically under URLPrefix.
type LocalImageStore struct {
	Dir       string
	URLPrefix string
}

func (s *LocalImageStore) Put(file *multipart.FileHeader, name string) error {
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.Dir, name))
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}

// Remove deletes the stored file. Removing a missing or empty name is not an
// error.
func (s *LocalImageStore) Remove(name string) error {
	if name == "" {
		return nil
	}
	if err := os.Remove(filepath.Join(s.Dir, name)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *LocalImageStore) PublicPath(name string) string {
	return s.URLPrefix + "/" + name
}
