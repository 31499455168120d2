package middleware

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrFileTooLarge = errors.New("file too large")
	ErrNotAnImage   = errors.New("only image files (JPEG, JPG, PNG, GIF, WebP) are allowed")
	ErrNoFile       = errors.New("image file is required")
)

var allowedImageExts = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Uploader stores product images on disk under a static-served directory.
type Uploader struct {
	dir     string
	maxSize int64
}

func NewUploader(dir string, maxSize int64) (*Uploader, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Uploader{dir: dir, maxSize: maxSize}, nil
}

func (u *Uploader) Dir() string {
	return u.dir
}

// SaveImage reads the named multipart file from the request, validates type
// and size and writes it out as <uuid>_<unix><ext>. It returns the public
// URL path of the stored file.
func (u *Uploader) SaveImage(r *http.Request, field string) (string, error) {
	if err := r.ParseMultipartForm(u.maxSize); err != nil {
		return "", ErrFileTooLarge
	}
	file, header, err := r.FormFile(field)
	if err != nil {
		return "", ErrNoFile
	}
	defer file.Close()

	if header.Size > u.maxSize {
		return "", ErrFileTooLarge
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExts[ext] {
		return "", ErrNotAnImage
	}
	if err := sniffImage(file); err != nil {
		return "", err
	}

	name := fmt.Sprintf("%s_%d%s", uuid.NewString(), time.Now().Unix(), ext)
	dst, err := os.Create(filepath.Join(u.dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, io.LimitReader(file, u.maxSize)); err != nil {
		return "", err
	}
	return "/uploads/" + name, nil
}

// sniffImage checks the leading bytes, not just the extension.
func sniffImage(file multipart.File) error {
	head := make([]byte, 512)
	n, err := file.Read(head)
	if err != nil && err != io.EOF {
		return err
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return err
	}
	contentType := http.DetectContentType(head[:n])
	switch contentType {
	case "image/jpeg", "image/png", "image/gif", "image/webp":
		return nil
	}
	return ErrNotAnImage
}
