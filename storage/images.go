// Package storage keeps uploaded menu images on local disk and hands back the
// reference path stored in menu_items.image_path.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"foodees-api/errs"

	"github.com/google/uuid"
)

// ImageStore saves an uploaded image and returns its reference path.
type ImageStore interface {
	Save(ctx context.Context, originalName string, r io.Reader) (string, error)
	Delete(ctx context.Context, ref string) error
}

var allowedExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

// LocalDisk writes files under root. References are prefix + "/" + filename,
// where prefix is the URL path the directory is served from.
type LocalDisk struct {
	root   string
	prefix string
}

func NewLocalDisk(root, prefix string) *LocalDisk {
	return &LocalDisk{root: root, prefix: strings.Trim(prefix, "/")}
}

func (d *LocalDisk) Root() string { return d.root }

// Save stores r as food_<uuid><ext>; the original name only contributes its
// extension.
func (d *LocalDisk) Save(ctx context.Context, originalName string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowedExt[ext] {
		return "", errs.NewValueIsInvalidErrorWithCause("image", fmt.Errorf("unsupported file type %q", ext))
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(d.root, 0o755); err != nil {
		return "", fmt.Errorf("storage/local: mkdir: %w", err)
	}

	name := "food_" + uuid.NewString() + ext
	full := filepath.Join(d.root, name)
	f, err := os.Create(full)
	if err != nil {
		return "", fmt.Errorf("storage/local: create %s: %w", name, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(full)
		return "", fmt.Errorf("storage/local: write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(full)
		return "", fmt.Errorf("storage/local: close %s: %w", name, err)
	}
	return path.Join(d.prefix, name), nil
}

// Delete removes a file by its reference. Missing files are not an error;
// references this store could not have issued are rejected.
func (d *LocalDisk) Delete(_ context.Context, ref string) error {
	name, ok := d.issued(ref)
	if !ok {
		return errs.NewValueIsInvalidErrorWithCause("image", fmt.Errorf("reference %q not issued by this store", ref))
	}
	err := os.Remove(filepath.Join(d.root, name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage/local: delete %s: %w", name, err)
	}
	return nil
}

// issued reports whether ref has the prefix/food_<uuid><ext> shape Save
// produces and returns the file name.
func (d *LocalDisk) issued(ref string) (string, bool) {
	name := path.Base(ref)
	if path.Join(d.prefix, name) != ref || !strings.HasPrefix(name, "food_") {
		return "", false
	}
	ext := strings.ToLower(path.Ext(name))
	if !allowedExt[ext] {
		return "", false
	}
	if _, err := uuid.Parse(strings.TrimSuffix(strings.TrimPrefix(name, "food_"), path.Ext(name))); err != nil {
		return "", false
	}
	return name, true
}
