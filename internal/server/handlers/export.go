package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"gypsumplanner/internal/logger"
	"gypsumplanner/internal/service/excel"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type exportRequest struct {
	View     string `json:"view"`
	FileName string `json:"fileName"`
}

// Export 导出当前报表或看板为 xlsx，返回一次性下载链接
// POST /api/export
func (h *Handler) Export(c *gin.Context) {
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "请求格式错误")
		return
	}
	kind, err := excel.ParseKind(req.View)
	if err != nil {
		respondError(c, err)
		return
	}

	// 导出前提交待提交编辑，保证导出内容与页面一致
	h.editor.Flush()

	wb, err := h.buildWorkbook(kind)
	if err != nil {
		respondError(c, err)
		return
	}
	defer wb.Close()

	fileName := excel.NormalizeFileName(req.FileName, kind.DefaultFileName())
	dir := filepath.Join(h.exportDir, uuid.NewString())
	path, err := excel.SaveAs(wb, dir, fileName)
	if err != nil {
		respondError(c, err)
		return
	}

	token := h.exports.issue(path, fileName)
	logger.WithField("view", kind).Infof("导出完成: %s", path)
	c.JSON(http.StatusOK, gin.H{
		"fileName":    fileName,
		"downloadUrl": fmt.Sprintf("/api/export/download/%s", token),
	})
}

func (h *Handler) buildWorkbook(kind excel.Kind) (*excelize.File, error) {
	if kind == excel.KindDashboard {
		d, err := h.currentDashboard()
		if err != nil {
			return nil, err
		}
		return h.exporter.ExportDashboard(d)
	}
	return h.exporter.ExportReport(h.currentReport())
}

// DownloadExport 下载导出的工作簿（一次性）
// GET /api/export/download/:token
func (h *Handler) DownloadExport(c *gin.Context) {
	token := c.Param("token")
	item, ok := h.exports.take(token)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "下载链接已失效"})
		return
	}

	if _, err := os.Stat(item.path); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "导出文件不存在"})
		return
	}

	c.Header("Content-Disposition", contentDisposition(item.name))
	c.Header("Content-Type", xlsxContentType)
	c.File(item.path)

	removeExports([]exportTicket{item})
}

// contentDisposition 同时给出 ASCII 文件名与 RFC 5987 编码的原始文件名
func contentDisposition(fileName string) string {
	ascii := make([]rune, 0, len(fileName))
	for _, r := range fileName {
		if r < 0x20 || r > 0x7e || r == '"' || r == '\\' {
			r = '_'
		}
		ascii = append(ascii, r)
	}
	return fmt.Sprintf("attachment; filename=\"%s\"; filename*=UTF-8''%s", string(ascii), url.PathEscape(fileName))
}
