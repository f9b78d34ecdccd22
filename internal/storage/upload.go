package storage

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"path"
	"strings"
	"time"

	"paxala/internal/apperr"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

var allowedTypes = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/gif":       ".gif",
	"image/webp":      ".webp",
	"video/mp4":       ".mp4",
	"video/webm":      ".webm",
	"application/pdf": ".pdf",
}

// Uploader validates multipart files and hands them to a Storage.
type Uploader struct {
	store    Storage
	maxBytes int64
	now      func() time.Time
}

func NewUploader(store Storage, maxMB int64) *Uploader {
	return &Uploader{store: store, maxBytes: maxMB << 20, now: time.Now}
}

// Save sniffs the file's content type, rejects anything not on the allow
// list or over the size limit, and stores it under YYYY/MM/.
func (u *Uploader) Save(ctx context.Context, fh *multipart.FileHeader) (*Object, error) {
	if fh.Size > u.maxBytes {
		return nil, apperr.Validation("file exceeds the %d MB limit", u.maxBytes>>20)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, apperr.Internal("Failed to open upload", err)
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, apperr.Internal("Failed to read upload", err)
	}
	head = head[:n]

	contentType := sniff(head)
	ext, ok := allowedTypes[contentType]
	if !ok {
		return nil, apperr.Validation("file type %s is not allowed", contentType)
	}

	key := path.Join(u.now().UTC().Format("2006/01"), uuid.NewString()+ext)
	body := io.MultiReader(bytes.NewReader(head), f)

	obj, err := u.store.Put(ctx, key, body, fh.Size, contentType)
	if err != nil {
		return nil, apperr.Internal("Failed to store upload", err)
	}
	return obj, nil
}

func sniff(head []byte) string {
	ct := mimetype.Detect(head).String()
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = ct[:i]
	}
	return strings.TrimSpace(ct)
}
