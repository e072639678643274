package handler

import (
	"social-system/internal/service"
	"social-system/pkg/logger"
	"social-system/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FileHandler 文件上传下载HTTP处理器
type FileHandler struct {
	fileService *service.FileService
}

// NewFileHandler 创建FileHandler实例
func NewFileHandler(fileService *service.FileService) *FileHandler {
	return &FileHandler{fileService: fileService}
}

// Upload 上传文件
// POST /files/upload（multipart字段名：file）
func (h *FileHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "no file uploaded")
		return
	}

	stored, err := h.fileService.Save(c, file)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	logger.Info("文件上传成功",
		zap.String("filename", stored.Filename),
		zap.String("mime_type", stored.MimeType),
		zap.Int64("size", stored.Size))
	response.Created(c, "上传成功", response.UploadResponse{
		Filename:     stored.Filename,
		OriginalName: stored.OriginalName,
		MimeType:     stored.MimeType,
		Size:         stored.Size,
		Path:         stored.Path,
	})
}

// Download 下载文件
// GET /files/:filename
func (h *FileHandler) Download(c *gin.Context) {
	path, err := h.fileService.Resolve(c.Param("filename"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.File(path)
}

// Delete 删除文件
// DELETE /files/:filename
func (h *FileHandler) Delete(c *gin.Context) {
	if err := h.fileService.Delete(c.Param("filename")); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SuccessWithMessage(c, "删除成功", nil)
}
