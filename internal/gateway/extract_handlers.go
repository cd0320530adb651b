package gateway

import (
	"fmt"
	"io"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/venusai/venus-services/internal/extract"
	"github.com/venusai/venus-services/internal/models"
	"go.uber.org/zap"
)

// acceptFunc decides whether an upload's declared content type (and,
// for formats that allow it, filename) is admissible.
type acceptFunc func(contentType, filename string) bool

func acceptPDF(contentType, _ string) bool {
	return contentType == "application/pdf" || contentType == "application/x-pdf"
}

func acceptDocx(contentType, filename string) bool {
	switch contentType {
	case "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"application/octet-stream":
		return true
	}
	return strings.HasSuffix(strings.ToLower(filename), ".docx")
}

func acceptCSV(contentType, filename string) bool {
	switch contentType {
	case "text/csv", "application/csv", "application/vnd.ms-excel", "application/octet-stream":
		return true
	}
	return strings.HasSuffix(strings.ToLower(filename), ".csv")
}

func (s *Server) extractPDF(c *gin.Context) {
	s.handleExtract(c, "pdf", s.pdf, acceptPDF)
}

func (s *Server) extractDocx(c *gin.Context) {
	s.handleExtract(c, "docx", s.docx, acceptDocx)
}

func (s *Server) extractCSV(c *gin.Context) {
	s.handleExtract(c, "csv", s.csv, acceptCSV)
}

// handleExtract runs one stateless extraction pass over an uploaded
// file. Extraction blocks the request until complete.
func (s *Server) handleExtract(c *gin.Context, format string, ex extract.Extractor, accept acceptFunc) {
	if ex == nil {
		c.JSON(503, gin.H{"error": fmt.Sprintf("%s extraction not available", format)})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(400, gin.H{"error": "missing file upload: " + err.Error()})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !accept(contentType, fileHeader.Filename) {
		c.JSON(400, gin.H{"error": fmt.Sprintf("Unsupported content type: %s", contentType)})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(500, gin.H{"error": "failed to open upload: " + err.Error()})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(500, gin.H{"error": "failed to read upload: " + err.Error()})
		return
	}

	text, err := ex.Extract(data)
	if err != nil {
		s.logger.Error("Extraction failed",
			zap.String("format", format),
			zap.String("filename", fileHeader.Filename),
			zap.Error(err))
		c.JSON(500, gin.H{"error": fmt.Sprintf("Failed to extract %s text: %v", format, err)})
		return
	}

	resp := models.ExtractResponse{}
	if text != "" {
		resp.Text = &text
	}
	c.JSON(200, resp)
}
