package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"sort"

	"tamilsociety/internal/domain/service"
)

// LocalStore keeps files under root/<module>/<name>; they are served
// statically at baseURL.
type LocalStore struct {
	root    string
	baseURL string
}

func NewLocalStore(root, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %v", err)
	}
	return &LocalStore{root: root, baseURL: baseURL}, nil
}

func (s *LocalStore) Root() string {
	return s.root
}

func (s *LocalStore) Save(ctx context.Context, module, name, contentType string, r io.Reader) (*service.StoredFile, error) {
	if err := ValidateKey(module, name); err != nil {
		return nil, err
	}

	dir := filepath.Join(s.root, module)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create module dir: %v", err)
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %v", err)
	}

	// A partial file is removed on any failure below.
	size, err := io.Copy(f, r)
	if err != nil {
		f.Close()
		os.Remove(path)
		return nil, fmt.Errorf("failed to write file: %v", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		os.Remove(path)
		return nil, fmt.Errorf("failed to stat file: %v", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("failed to write file: %v", err)
	}

	return &service.StoredFile{
		Module:      module,
		Name:        name,
		URL:         s.URL(module, name),
		ContentType: contentType,
		Size:        size,
		ModifiedAt:  info.ModTime(),
	}, nil
}

func (s *LocalStore) List(ctx context.Context, module string) ([]service.StoredFile, error) {
	if !service.IsValidModule(module) {
		return nil, fmt.Errorf("unknown module %q", module)
	}

	entries, err := os.ReadDir(filepath.Join(s.root, module))
	if os.IsNotExist(err) {
		return []service.StoredFile{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read module dir: %v", err)
	}

	files := make([]service.StoredFile, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, service.StoredFile{
			Module:      module,
			Name:        entry.Name(),
			URL:         s.URL(module, entry.Name()),
			ContentType: mime.TypeByExtension(filepath.Ext(entry.Name())),
			Size:        info.Size(),
			ModifiedAt:  info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].ModifiedAt.After(files[j].ModifiedAt)
	})
	return files, nil
}

func (s *LocalStore) Delete(ctx context.Context, module, name string) error {
	if err := ValidateKey(module, name); err != nil {
		return err
	}
	err := os.Remove(filepath.Join(s.root, module, name))
	if os.IsNotExist(err) {
		return service.ErrFileNotFound
	}
	return err
}

func (s *LocalStore) URL(module, name string) string {
	return s.baseURL + "/" + module + "/" + name
}
