package service

import (
	"bytes"
	"fmt"
	"image/png"
	"path/filepath"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// prepareBillImage returns image bytes and a MIME type ready to send to the
// vision model. JPEG and PNG bills pass through unchanged; PDF bills get
// their first page rendered to PNG, since most paper bills are single page.
func prepareBillImage(fileData []byte, path string) ([]byte, string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return fileData, "image/jpeg", nil
	case ".png":
		return fileData, "image/png", nil
	case ".pdf":
		pngData, err := pdfToImage(fileData)
		if err != nil {
			return nil, "", err
		}
		return pngData, "image/png", nil
	default:
		return nil, "", fmt.Errorf("unsupported bill format: %s (supported: jpg, jpeg, png, pdf)", filepath.Ext(path))
	}
}

// pdfToImage renders the first page of a PDF as a PNG image.
func pdfToImage(pdfData []byte) ([]byte, error) {
	doc, err := fitz.NewFromMemory(pdfData)
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}
	defer doc.Close()

	img, err := doc.Image(0)
	if err != nil {
		return nil, fmt.Errorf("rendering PDF page: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding PNG: %w", err)
	}

	return buf.Bytes(), nil
}
