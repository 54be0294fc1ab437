package mkfs

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// EnsureDir creates directory path along with missing parents.
func EnsureDir(path string, mode fs.FileMode) error {
	if mode == 0 {
		mode = 0777
	}
	return os.MkdirAll(path, mode)
}

// RemovePath makes sure that nothing exists at path, whatever it was. A
// directory is removed with all its content, a symlink is removed without
// following it. RemovePath on a path that does not exist is a no-op.
func RemovePath(path string) error {
	err := os.RemoveAll(path)
	if err == nil || errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Move renames src to dst, replacing whatever is at dst. For regular files
// this is one atomic rename. Only if dst is in the way, e.g. when it is a
// directory, it is removed first. Failing to remove dst is an error.
func Move(src, dst string) error {
	if _, err := os.Lstat(src); err != nil {
		return fmt.Errorf("move %s: %w", src, err)
	}
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	if _, serr := os.Lstat(dst); serr != nil {
		return err
	}
	if rerr := RemovePath(dst); rerr != nil {
		return fmt.Errorf("move %s: cannot replace %s: %w", src, dst, rerr)
	}
	return os.Rename(src, dst)
}

// Append copies the content of src to dst. If appending is false, dst is
// truncated first, otherwise the content is added to the end of dst. dst is
// created if needed.
func Append(src, dst string, appending bool) (err error) {
	flags := os.O_CREATE | os.O_WRONLY
	if appending {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	r, err := os.Open(src)
	if err != nil {
		return err
	}
	defer r.Close()
	w, err := os.OpenFile(dst, flags, 0666)
	if err != nil {
		return err
	}
	defer func() {
		if e := w.Close(); e != nil && err == nil {
			err = e
		}
	}()
	if _, err = io.Copy(w, r); err != nil {
		return fmt.Errorf("append %s to %s: %w", src, dst, err)
	}
	return nil
}
