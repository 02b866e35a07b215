package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// ObjectStore stores uploaded objects and returns their public URL.
type ObjectStore interface {
	Put(ctx context.Context, name, contentType string, r io.Reader) (string, error)
}

// DriveStore keeps objects in a Google Drive folder shared with anyone who
// has the link.
type DriveStore struct {
	client   *drive.Service
	folderID string
}

func NewDriveStore(ctx context.Context, credentialsFile, folderID string) (*DriveStore, error) {
	svc, err := drive.NewService(ctx, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}
	return &DriveStore{client: svc, folderID: folderID}, nil
}

func (s *DriveStore) Put(ctx context.Context, name, contentType string, r io.Reader) (string, error) {
	meta := &drive.File{Name: name, MimeType: contentType}
	if s.folderID != "" {
		meta.Parents = []string{s.folderID}
	}
	f, err := s.client.Files.Create(meta).
		Media(r, googleapi.ContentType(contentType)).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", name, err)
	}
	_, err = s.client.Permissions.Create(f.Id, &drive.Permission{Type: "anyone", Role: "reader"}).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("share %s: %w", name, err)
	}
	return fmt.Sprintf("https://drive.google.com/uc?id=%s", f.Id), nil
}

// LocalStore writes objects below Dir. The HTTP server serves Dir under
// /uploads, so an object "uploads/x.png" is reachable at BaseURL/uploads/x.png.
type LocalStore struct {
	Dir     string
	BaseURL string
}

func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{Dir: dir, BaseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *LocalStore) Put(ctx context.Context, name, _ string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	rel := strings.TrimPrefix(path.Clean("/"+name), "/")
	rel = strings.TrimPrefix(rel, "uploads/")
	dst := filepath.Join(s.Dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", filepath.Dir(dst), err)
	}
	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", dst, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return "", fmt.Errorf("write %s: %w", dst, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", dst, err)
	}
	return s.BaseURL + "/uploads/" + rel, nil
}
