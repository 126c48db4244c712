package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

var SupportedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}

// SaveUpload writes an uploaded file under folder with a fresh uuid name
// and returns the stored filename.
func SaveUpload(file multipart.File, header *multipart.FileHeader, folder string) (string, error) {
	ext, ok := SupportedImageTypes[header.Header.Get("Content-Type")]
	if !ok {
		return "", fmt.Errorf("unsupported image type %q", header.Header.Get("Content-Type"))
	}

	if err := EnsureDir(folder); err != nil {
		return "", err
	}

	filename := uuid.New().String() + ext
	out, err := os.Create(filepath.Join(folder, filename))
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		return "", err
	}
	return filename, nil
}

// CreateThumb renders a resized copy next to the original, under a thumb
// subdirectory. Best-effort; callers ignore the error on purpose.
func CreateThumb(filename, folder string, width int) error {
	img, err := imaging.Open(filepath.Join(folder, filename))
	if err != nil {
		return err
	}

	thumbDir := filepath.Join(folder, "thumb")
	if err := EnsureDir(thumbDir); err != nil {
		return err
	}

	thumb := imaging.Resize(img, width, 0, imaging.Lanczos)
	return imaging.Save(thumb, filepath.Join(thumbDir, filename))
}
