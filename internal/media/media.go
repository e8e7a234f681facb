// Copyright (c) 2026 Majalla. All rights reserved.
// Author: eng@majalla.net

/*
Package media stores uploaded images in object storage.

Uploads are validated against a size ceiling and an extension/MIME allow-list
before any bytes leave the process. Stored objects are keyed by UUIDv7 plus
the original extension, so object names sort by upload time.
*/
package media

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"time"
)

// Validation failures for uploaded files. The submission pipeline maps these
// to the localized form messages.
var (
	ErrFileTooLarge    = errors.New("media: file exceeds size limit")
	ErrUnsupportedType = errors.New("media: file type not allowed")
)

// Record describes a stored media object.
type Record struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type"`
	URL         string    `json:"url"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// Upload is an in-memory file pending storage.
type Upload struct {
	Name        string
	ContentType string
	Size        int64
	Data        []byte
}

// Storage persists uploads.
type Storage interface {
	Upload(ctx context.Context, upload Upload) (*Record, error)
}

// imageContentTypes maps allowed extensions to their canonical MIME types.
var imageContentTypes = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"webp": "image/webp",
}

// CheckFile validates an upload against the size ceiling (bytes) and the
// configured extension allow-list. Both the filename extension and the
// declared content type must agree with an allowed image type.
func CheckFile(name, contentType string, size, maxBytes int64, allowedExtensions []string) error {
	if size <= 0 || size > maxBytes {
		return ErrFileTooLarge
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	allowed := false
	for _, a := range allowedExtensions {
		if ext == strings.ToLower(a) {
			allowed = true
			break
		}
	}
	if !allowed {
		return ErrUnsupportedType
	}

	canonical, known := imageContentTypes[ext]
	if !known {
		return ErrUnsupportedType
	}
	if contentType != "" && !strings.EqualFold(contentType, canonical) {
		// jpg/jpeg share a MIME type; anything else must match exactly.
		return ErrUnsupportedType
	}

	return nil
}
