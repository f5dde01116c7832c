package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// BlobStore persists uploaded and static files. Save never overwrites: when the
// name is taken a short suffix is added and the stored name is returned.
type BlobStore interface {
	Save(ctx context.Context, name string, content io.Reader) (string, error)
	Exists(ctx context.Context, name string) (bool, error)
	URL(name string) string
	Delete(ctx context.Context, name string) error
	List(ctx context.Context, prefix string) ([]string, error)
}

// CleanBlobName normalises a slash separated name and rejects escapes out of the root.
func CleanBlobName(name string) (string, error) {
	name = strings.ReplaceAll(name, "\\", "/")
	clean := path.Clean("/" + name)[1:]
	if clean == "" || clean == "." || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("%w: invalid file name %q", ErrInvalidInput, name)
	}
	return clean, nil
}

// MediaName builds the stored name for an upload under the media prefix.
func MediaName(prefix, folder, filename string) string {
	base := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		base = uuid.NewString()
	}
	return path.Join(prefix, folder, base)
}

func withSuffix(name string) string {
	ext := path.Ext(name)
	return strings.TrimSuffix(name, ext) + "_" + uuid.NewString()[:8] + ext
}

type LocalStore struct {
	root    string
	baseURL string
}

func NewLocalStore(root, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create %s: %v", ErrStorage, root, err)
	}
	return &LocalStore{root: root, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

func (s *LocalStore) Root() string { return s.root }

func (s *LocalStore) Save(_ context.Context, name string, content io.Reader) (string, error) {
	clean, err := CleanBlobName(name)
	if err != nil {
		return "", err
	}
	target := clean
	for attempt := 0; attempt < 5; attempt++ {
		full := filepath.Join(s.root, filepath.FromSlash(target))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			return "", fmt.Errorf("%w: %v", ErrStorage, err)
		}
		f, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			target = withSuffix(clean)
			continue
		}
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrStorage, err)
		}
		if _, err := io.Copy(f, content); err != nil {
			f.Close()
			os.Remove(full)
			return "", fmt.Errorf("%w: write %s: %v", ErrStorage, target, err)
		}
		if err := f.Close(); err != nil {
			return "", fmt.Errorf("%w: %v", ErrStorage, err)
		}
		return target, nil
	}
	return "", fmt.Errorf("%w: no free name for %s", ErrStorage, clean)
}

func (s *LocalStore) Exists(_ context.Context, name string) (bool, error) {
	clean, err := CleanBlobName(name)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(filepath.Join(s.root, filepath.FromSlash(clean)))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return true, nil
}

func (s *LocalStore) URL(name string) string {
	if name == "" {
		return ""
	}
	return s.baseURL + "/" + strings.TrimPrefix(name, "/")
}

func (s *LocalStore) Delete(_ context.Context, name string) error {
	clean, err := CleanBlobName(name)
	if err != nil {
		return err
	}
	err = os.Remove(filepath.Join(s.root, filepath.FromSlash(clean)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return nil
}

func (s *LocalStore) List(_ context.Context, prefix string) ([]string, error) {
	var names []string
	err := filepath.WalkDir(s.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(s.root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if strings.HasPrefix(rel, prefix) {
			names = append(names, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	sort.Strings(names)
	return names, nil
}

// GCSStore keeps blobs in a Google Cloud Storage bucket.
type GCSStore struct {
	client  *storage.Client
	bucket  string
	baseURL string
}

func NewGCSStore(ctx context.Context, bucket, credentialsFile, baseURL string) (*GCSStore, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: gcs client: %v", ErrStorage, err)
	}
	if baseURL == "" || strings.HasPrefix(baseURL, "/") {
		baseURL = "https://storage.googleapis.com/" + bucket
	}
	return &GCSStore{client: client, bucket: bucket, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

func (s *GCSStore) Close() error { return s.client.Close() }

func (s *GCSStore) Save(ctx context.Context, name string, content io.Reader) (string, error) {
	clean, err := CleanBlobName(name)
	if err != nil {
		return "", err
	}
	target := clean
	exists, err := s.Exists(ctx, target)
	if err != nil {
		return "", err
	}
	if exists {
		target = withSuffix(clean)
	}

	w := s.client.Bucket(s.bucket).Object(target).
		If(storage.Conditions{DoesNotExist: true}).
		NewWriter(ctx)
	if _, err := io.Copy(w, content); err != nil {
		w.Close()
		return "", fmt.Errorf("%w: upload %s: %v", ErrStorage, target, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("%w: upload %s: %v", ErrStorage, target, err)
	}
	return target, nil
}

func (s *GCSStore) Exists(ctx context.Context, name string) (bool, error) {
	_, err := s.client.Bucket(s.bucket).Object(name).Attrs(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return true, nil
}

func (s *GCSStore) URL(name string) string {
	if name == "" {
		return ""
	}
	return s.baseURL + "/" + strings.TrimPrefix(name, "/")
}

func (s *GCSStore) Delete(ctx context.Context, name string) error {
	err := s.client.Bucket(s.bucket).Object(name).Delete(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return nil
}

func (s *GCSStore) List(ctx context.Context, prefix string) ([]string, error) {
	it := s.client.Bucket(s.bucket).Objects(ctx, &storage.Query{Prefix: prefix})
	var names []string
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: list %s: %v", ErrStorage, prefix, err)
		}
		names = append(names, attrs.Name)
	}
	return names, nil
}
