package service

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"

	"social-system/config"

	"github.com/gin-gonic/gin"
)

func newFileService(t *testing.T) *FileService {
	t.Helper()
	svc, err := NewFileService(config.UploadConfig{
		Dir:     t.TempDir(),
		MaxSize: 1024,
		AllowedTypes: []string{
			"image/jpeg",
			"image/png",
			"image/gif",
			"application/pdf",
		},
	})
	if err != nil {
		t.Fatalf("new file service: %v", err)
	}
	return svc
}

// uploadContext 构造带multipart文件的gin测试上下文
func uploadContext(t *testing.T, filename, contentType string, content []byte) (*gin.Context, *multipart.FileHeader) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	writer.Close()

	req := httptest.NewRequest("POST", "/files/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req

	file, err := c.FormFile("file")
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	return c, file
}

func TestFileSaveAndResolve(t *testing.T) {
	svc := newFileService(t)
	c, file := uploadContext(t, "avatar.png", "image/png", []byte("fake png bytes"))

	stored, err := svc.Save(c, file)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if stored.OriginalName != "avatar.png" {
		t.Fatalf("original name = %q", stored.OriginalName)
	}
	if filepath.Ext(stored.Filename) != ".png" {
		t.Fatalf("stored filename lost extension: %q", stored.Filename)
	}
	if stored.Filename == "avatar.png" {
		t.Fatal("stored filename must not reuse the client-supplied name")
	}

	path, err := svc.Resolve(stored.Filename)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if string(data) != "fake png bytes" {
		t.Fatalf("stored content mismatch: %q", data)
	}
}

func TestFileSaveRejectsOversize(t *testing.T) {
	svc := newFileService(t)
	c, file := uploadContext(t, "big.png", "image/png", bytes.Repeat([]byte("x"), 2048))

	if _, err := svc.Save(c, file); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for oversize file, got %v", err)
	}
}

func TestFileSaveRejectsBadMime(t *testing.T) {
	svc := newFileService(t)
	c, file := uploadContext(t, "script.sh", "application/x-sh", []byte("#!/bin/sh"))

	if _, err := svc.Save(c, file); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for disallowed mime, got %v", err)
	}
}

func TestFileResolveTraversal(t *testing.T) {
	svc := newFileService(t)

	// 路径穿越被basename清洗拦下，表现为文件不存在
	if _, err := svc.Resolve("../../etc/passwd"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFileDelete(t *testing.T) {
	svc := newFileService(t)
	c, file := uploadContext(t, "temp.pdf", "application/pdf", []byte("%PDF-1.4"))

	stored, err := svc.Save(c, file)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := svc.Delete(stored.Filename); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(stored.Filename); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete: expected ErrNotFound, got %v", err)
	}
}
