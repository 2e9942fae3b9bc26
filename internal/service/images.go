package service

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/nfnt/resize"
)

// ImageStore saves product pictures under the public directory and hands
// back the URL path they are served from.
type ImageStore interface {
	Save(fh *multipart.FileHeader) (string, error)
	Discard(url string)
}

const productImageDir = "img/products"

type diskImages struct {
	publicDir string
	maxWidth  uint
}

func NewImageStore(publicDir string, maxWidth uint) ImageStore {
	return &diskImages{publicDir: publicDir, maxWidth: maxWidth}
}

func (s *diskImages) Save(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dir := filepath.Join(s.publicDir, filepath.FromSlash(productImageDir))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	ctype := fh.Header.Get("Content-Type")
	var img image.Image
	switch ctype {
	case "image/png":
		img, err = png.Decode(src)
	case "image/jpeg", "image/jpg":
		img, err = jpeg.Decode(src)
	}
	if err != nil {
		return "", invalid("unreadable image %s: %v", fh.Filename, err)
	}

	if img == nil {
		// not something we can resize, keep the upload as is
		name := fmt.Sprintf("product_%s%s", uuid.New().String(), extension(ctype, fh.Filename))
		out, err := os.Create(filepath.Join(dir, name))
		if err != nil {
			return "", err
		}
		defer out.Close()
		if _, err := io.Copy(out, src); err != nil {
			return "", err
		}
		return "/" + path.Join(productImageDir, name), nil
	}

	if s.maxWidth > 0 && uint(img.Bounds().Dx()) > s.maxWidth {
		img = resize.Resize(s.maxWidth, 0, img, resize.Lanczos3)
	}
	name := fmt.Sprintf("product_%s.jpg", uuid.New().String())
	out, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}
	defer out.Close()
	if err := jpeg.Encode(out, img, &jpeg.Options{Quality: 80}); err != nil {
		return "", err
	}
	return "/" + path.Join(productImageDir, name), nil
}

// Discard removes an image saved by Save. Other URLs are left alone.
func (s *diskImages) Discard(url string) {
	if !strings.HasPrefix(url, "/"+productImageDir+"/") {
		return
	}
	p := filepath.Join(s.publicDir, filepath.FromSlash(strings.TrimPrefix(url, "/")))
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		slog.Warn("discard image", "path", p, "error", err)
	}
}

func extension(ctype, filename string) string {
	if _, sub, ok := strings.Cut(ctype, "/"); ok && sub != "" && !strings.ContainsAny(sub, "/.;") {
		return "." + sub
	}
	if ext := filepath.Ext(filename); ext != "" {
		return strings.ToLower(ext)
	}
	return ".bin"
}
