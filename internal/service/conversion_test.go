package service

import (
	"bytes"
	"testing"
)

func TestPrepareBillImage(t *testing.T) {
	jpegData := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10}

	t.Run("jpeg passes through", func(t *testing.T) {
		data, mimeType, err := prepareBillImage(jpegData, "bill.jpg")
		if err != nil {
			t.Fatalf("prepareBillImage failed: %v", err)
		}
		if mimeType != "image/jpeg" {
			t.Errorf("mime type = %q, want image/jpeg", mimeType)
		}
		if !bytes.Equal(data, jpegData) {
			t.Error("jpeg bytes were modified")
		}
	})

	t.Run("png passes through", func(t *testing.T) {
		pngData := []byte{0x89, 'P', 'N', 'G'}
		data, mimeType, err := prepareBillImage(pngData, "bill.PNG")
		if err != nil {
			t.Fatalf("prepareBillImage failed: %v", err)
		}
		if mimeType != "image/png" {
			t.Errorf("mime type = %q, want image/png", mimeType)
		}
		if !bytes.Equal(data, pngData) {
			t.Error("png bytes were modified")
		}
	})

	t.Run("unsupported extension", func(t *testing.T) {
		if _, _, err := prepareBillImage([]byte("GIF89a"), "bill.gif"); err == nil {
			t.Error("expected unsupported format error")
		}
	})
}
