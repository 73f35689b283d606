package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetFileExtension(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"photo.jpg", "jpg"},
		{"photo.JPG", "jpg"},
		{"path/to/photo.png", "png"},
		{"archive.tar.gz", "gz"},
		{"noextension", ""},
	}

	for _, test := range tests {
		result := GetFileExtension(test.input)
		if result != test.expected {
			t.Errorf("GetFileExtension(%s) = %s, expected %s",
				test.input, result, test.expected)
		}
	}
}

func TestIsImageFile(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"photo.jpg", true},
		{"photo.jpeg", true},
		{"photo.PNG", true},
		{"photo.webp", true},
		{"photo.bmp", true},
		{"photo.tiff", true},
		{"animation.gif", false},
		{"document.pdf", false},
		{"noextension", false},
	}

	for _, test := range tests {
		result := IsImageFile(test.input)
		if result != test.expected {
			t.Errorf("IsImageFile(%s) = %v, expected %v",
				test.input, result, test.expected)
		}
	}
}

func TestOutputFilename(t *testing.T) {
	tests := []struct {
		input    string
		format   string
		expected string
	}{
		{"/photos/beach.jpg", "png", "beach_framed.png"},
		{"/photos/beach.sunset.jpg", "jpg", "beach.sunset_framed.jpg"},
		{"beach.webp", "JPEG", "beach_framed.jpeg"},
	}

	for _, test := range tests {
		result := OutputFilename(test.input, "/out", "_framed", test.format)
		expected := filepath.Join("/out", test.expected)
		if result != expected {
			t.Errorf("OutputFilename(%s) = %s, expected %s",
				test.input, result, expected)
		}
	}
}

func TestListImages(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"c.png", "a.jpg", "b.webp", "skip.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	// Subdirectories are not recursed into.
	if err := os.MkdirAll(filepath.Join(dir, "nested"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "nested", "d.png"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	files, err := ListImages(dir)
	if err != nil {
		t.Fatalf("ListImages failed: %v", err)
	}

	if len(files) != 3 {
		t.Fatalf("Expected 3 files, got %d: %v", len(files), files)
	}
	// Sorted by name.
	expected := []string{"a.jpg", "b.webp", "c.png"}
	for i, file := range files {
		if filepath.Base(file) != expected[i] {
			t.Errorf("File %d is %s, expected %s", i, filepath.Base(file), expected[i])
		}
	}
}

func TestListImagesMissingDir(t *testing.T) {
	if _, err := ListImages("/nonexistent/dir"); err == nil {
		t.Error("Expected error for missing directory")
	}
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "c")

	if err := EnsureDir(dir); err != nil {
		t.Fatalf("EnsureDir failed: %v", err)
	}
	if !DirExists(dir) {
		t.Error("Directory should exist after EnsureDir")
	}

	// Idempotent.
	if err := EnsureDir(dir); err != nil {
		t.Errorf("EnsureDir on existing dir failed: %v", err)
	}
}

func TestFileExistsAndDirExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f.txt")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if !FileExists(file) {
		t.Error("FileExists should report an existing file")
	}
	if FileExists(dir) {
		t.Error("FileExists should reject a directory")
	}
	if !DirExists(dir) {
		t.Error("DirExists should report an existing directory")
	}
	if DirExists(file) {
		t.Error("DirExists should reject a file")
	}
	if FileExists(filepath.Join(dir, "missing")) {
		t.Error("FileExists should reject a missing path")
	}
}
