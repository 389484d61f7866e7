// Package storage keeps uploaded documents on the local filesystem.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Wetooa/mentara-sub026/internal/pkg/apperr"
	"github.com/Wetooa/mentara-sub026/internal/pkg/config"
	"github.com/Wetooa/mentara-sub026/internal/pkg/logger"

	"github.com/google/uuid"
)

// StoredFile describes a saved upload
type StoredFile struct {
	Path        string
	FileName    string
	ContentType string
	Size        int64
}

// DocumentStore saves and reads uploaded documents
type DocumentStore interface {
	Save(ctx context.Context, prefix string, header *multipart.FileHeader) (*StoredFile, error)
	Open(ctx context.Context, path string) ([]byte, error)
	Delete(ctx context.Context, path string) error
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

type localStore struct {
	basePath          string
	maxFileSize       int64
	allowedExtensions map[string]bool
	logger            logger.Logger
}

// NewLocalStore creates a store rooted at settings.BasePath, creating the directory when missing
func NewLocalStore(settings *config.StorageSettings, logger logger.Logger) (DocumentStore, error) {
	if settings == nil {
		return nil, fmt.Errorf("storage settings are required")
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(settings.BasePath, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	allowed := make(map[string]bool, len(settings.AllowedExtensions))
	for _, ext := range settings.AllowedExtensions {
		allowed[strings.ToLower(ext)] = true
	}
	return &localStore{
		basePath:          settings.BasePath,
		maxFileSize:       settings.MaxFileSizeBytes,
		allowedExtensions: allowed,
		logger:            logger,
	}, nil
}

// Save copies the upload to <prefix>/<uuid>-<sanitized name> under the base path
func (s *localStore) Save(ctx context.Context, prefix string, header *multipart.FileHeader) (*StoredFile, error) {
	if header == nil {
		return nil, apperr.Validation("validation failed: file is required", nil)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name := SanitizeFileName(header.Filename)
	ext := strings.ToLower(filepath.Ext(name))
	if !s.allowedExtensions[ext] {
		return nil, apperr.Validation(fmt.Sprintf("validation failed: file type %q is not allowed", ext), nil)
	}
	if header.Size > s.maxFileSize {
		return nil, apperr.Validation(fmt.Sprintf("validation failed: file %s exceeds %d bytes", name, s.maxFileSize), nil)
	}

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload %s: %w", name, err)
	}
	defer src.Close()

	prefix = SanitizePrefix(prefix)
	rel := filepath.ToSlash(filepath.Join(prefix, uuid.NewString()+"-"+name))
	full, err := s.resolve(rel)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create directory for %s: %w", rel, err)
	}

	dst, err := os.OpenFile(full, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o640)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", rel, err)
	}

	// one extra byte detects uploads whose header understates their size
	written, copyErr := io.Copy(dst, io.LimitReader(src, s.maxFileSize+1))
	closeErr := dst.Close()
	if copyErr == nil && written > s.maxFileSize {
		copyErr = apperr.Validation(fmt.Sprintf("validation failed: file %s exceeds %d bytes", name, s.maxFileSize), nil)
	}
	if copyErr != nil || closeErr != nil {
		_ = os.Remove(full)
		if copyErr != nil {
			if apperr.KindOf(copyErr) == apperr.KindValidation {
				return nil, copyErr
			}
			return nil, fmt.Errorf("failed to write %s: %w", rel, copyErr)
		}
		return nil, fmt.Errorf("failed to close %s: %w", rel, closeErr)
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	s.logger.Info(fmt.Sprintf("Stored document %s (%d bytes)", rel, written))
	return &StoredFile{
		Path:        rel,
		FileName:    name,
		ContentType: contentType,
		Size:        written,
	}, nil
}

func (s *localStore) Open(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	full, err := s.resolve(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperr.NotFound("File not found")
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

func (s *localStore) Delete(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	full, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete %s: %w", path, err)
	}
	s.logger.Info("Deleted document ", path)
	return nil
}

// resolve maps a store relative path to a filesystem path, rejecting paths that leave the base directory
func (s *localStore) resolve(rel string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(rel))
	if clean == "." || filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", apperr.Validation("validation failed: invalid file path", nil)
	}
	return filepath.Join(s.basePath, clean), nil
}

// SanitizeFileName keeps the base name and replaces characters outside [a-zA-Z0-9._-] with underscores
func SanitizeFileName(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	base = unsafeChars.ReplaceAllString(base, "_")
	base = strings.Trim(base, "._")
	if base == "" {
		return "file"
	}
	if len(base) > 200 {
		ext := filepath.Ext(base)
		base = base[:200-len(ext)] + ext
	}
	return base
}

// SanitizePrefix cleans each segment of a slash separated prefix
func SanitizePrefix(prefix string) string {
	segments := strings.Split(strings.ReplaceAll(prefix, "\\", "/"), "/")
	kept := make([]string, 0, len(segments))
	for _, segment := range segments {
		segment = unsafeChars.ReplaceAllString(segment, "_")
		segment = strings.Trim(segment, "._")
		if segment != "" {
			kept = append(kept, segment)
		}
	}
	if len(kept) == 0 {
		return "misc"
	}
	return strings.Join(kept, "/")
}
