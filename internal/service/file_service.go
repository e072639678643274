package service

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"

	"social-system/config"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// FileService 文件存储服务
// 磁盘存储，文件名使用uuid保证唯一，按MIME类型与大小过滤
type FileService struct {
	cfg config.UploadConfig
}

// NewFileService 创建FileService实例并确保上传目录存在
func NewFileService(cfg config.UploadConfig) (*FileService, error) {
	if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
		return nil, fmt.Errorf("创建上传目录失败: %w", err)
	}
	return &FileService{cfg: cfg}, nil
}

// StoredFile 已保存文件的描述
type StoredFile struct {
	Filename     string
	OriginalName string
	MimeType     string
	Size         int64
	Path         string
}

// Save 校验并保存上传文件
func (s *FileService) Save(c *gin.Context, file *multipart.FileHeader) (*StoredFile, error) {
	if file == nil {
		return nil, fmt.Errorf("%w: no file uploaded", ErrValidation)
	}
	if file.Size > s.cfg.MaxSize {
		return nil, fmt.Errorf("%w: file exceeds maximum size of %d bytes", ErrValidation, s.cfg.MaxSize)
	}

	mimeType := file.Header.Get("Content-Type")
	if !s.allowedType(mimeType) {
		return nil, fmt.Errorf("%w: invalid file type, only JPG, PNG, GIF and PDF files are allowed", ErrValidation)
	}

	filename := uuid.NewString() + filepath.Ext(file.Filename)
	dst := filepath.Join(s.cfg.Dir, filename)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		return nil, fmt.Errorf("保存上传文件失败: %w", err)
	}

	return &StoredFile{
		Filename:     filename,
		OriginalName: file.Filename,
		MimeType:     mimeType,
		Size:         file.Size,
		Path:         dst,
	}, nil
}

// Resolve 返回文件的磁盘路径，不存在时返回 ErrNotFound
// 文件名先做basename清洗，防止路径穿越
func (s *FileService) Resolve(filename string) (string, error) {
	path := filepath.Join(s.cfg.Dir, filepath.Base(filename))
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: file", ErrNotFound)
		}
		return "", err
	}
	return path, nil
}

// Delete 删除文件，不存在时返回 ErrNotFound
func (s *FileService) Delete(filename string) error {
	path, err := s.Resolve(filename)
	if err != nil {
		return err
	}
	return os.Remove(path)
}

func (s *FileService) allowedType(mimeType string) bool {
	for _, t := range s.cfg.AllowedTypes {
		if t == mimeType {
			return true
		}
	}
	return false
}
