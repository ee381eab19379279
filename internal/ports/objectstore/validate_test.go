package objectstore

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidateFiles(t *testing.T) {
	ok := func(name string) File {
		return File{Name: name, Content: []byte("x")}
	}

	if err := ValidateFiles(nil); err != nil {
		t.Fatalf("empty batch must pass: %v", err)
	}
	if err := ValidateFiles([]File{ok("a.jpg"), ok("B.JPEG"), ok("c.png"), ok("d.gif")}); err != nil {
		t.Fatalf("valid batch rejected: %v", err)
	}

	bad := []struct {
		name  string
		files []File
	}{
		{"extension", []File{ok("malware.exe")}},
		{"no extension", []File{ok("noext")}},
		{"oversize", []File{{Name: "big.jpg", Content: make([]byte, MaxFileSize+1)}}},
	}
	for _, tc := range bad {
		if err := ValidateFiles(tc.files); !errors.Is(err, ErrInvalidFile) {
			t.Fatalf("%s: expected ErrInvalidFile, got %v", tc.name, err)
		}
	}

	many := make([]File, MaxFiles+1)
	for i := range many {
		many[i] = ok(fmt.Sprintf("f%d.jpg", i))
	}
	if err := ValidateFiles(many); !errors.Is(err, ErrInvalidFile) {
		t.Fatalf("too many files: expected ErrInvalidFile, got %v", err)
	}
	if err := ValidateFiles(many[:MaxFiles]); err != nil {
		t.Fatalf("exactly MaxFiles must pass: %v", err)
	}

	// El lote se rechaza entero aunque solo un archivo sea inválido.
	if err := ValidateFiles([]File{ok("a.jpg"), ok("b.txt")}); !errors.Is(err, ErrInvalidFile) {
		t.Fatalf("mixed batch: expected ErrInvalidFile, got %v", err)
	}
}
