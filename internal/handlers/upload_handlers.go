package handlers

import (
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"time"

	"snapshot-qa/internal/utils"
)

const (
	maxUploadBytes    = 32 << 20 // whole multipart form
	maxQuestionImages = 6
)

// uploadQuestionImages pushes every attached image to object storage and
// returns their public URLs, in form order.
func (s *Server) uploadQuestionImages(r *http.Request) ([]string, *utils.AppError) {
	if r.MultipartForm == nil {
		return nil, nil
	}

	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		return nil, nil
	}
	if len(files) > maxQuestionImages {
		return nil, utils.NewAppError(utils.ErrInvalidInput,
			fmt.Sprintf("At most %d images per question", maxQuestionImages), nil)
	}
	if s.Uploader == nil {
		return nil, utils.NewAppError(utils.ErrUploadFailed, "Image uploads are not configured", nil)
	}

	urls := make([]string, 0, len(files))
	for _, header := range files {
		url, appErr := s.uploadOne(r, header, "questions")
		if appErr != nil {
			return nil, appErr
		}
		urls = append(urls, url)
	}
	return urls, nil
}

// uploadFormFile stores a single file field and returns its public URL.
func (s *Server) uploadFormFile(r *http.Request, field, prefix string) (string, *utils.AppError) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return "", utils.NewAppError(utils.ErrInvalidInput, "Invalid multipart form", err)
	}

	if s.Uploader == nil {
		return "", utils.NewAppError(utils.ErrUploadFailed, "Image uploads are not configured", nil)
	}

	_, header, err := r.FormFile(field)
	if err != nil {
		return "", utils.NewAppError(utils.ErrInvalidInput,
			fmt.Sprintf("Missing %q file field", field), err)
	}

	return s.uploadOne(r, header, prefix)
}

func (s *Server) uploadOne(r *http.Request, header *multipart.FileHeader, prefix string) (string, *utils.AppError) {
	file, err := header.Open()
	if err != nil {
		return "", utils.NewAppError(utils.ErrUploadFailed, "Failed to read uploaded file", err)
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	objectPath := fmt.Sprintf("%s/%d%s", prefix, time.Now().UnixNano(), filepath.Ext(header.Filename))
	url, err := s.Uploader.Upload(r.Context(), objectPath, contentType, file)
	if err != nil {
		log.Printf("Upload of %s failed: %v", objectPath, err)
		return "", utils.NewAppError(utils.ErrUploadFailed, "Failed to store uploaded file", err)
	}
	return url, nil
}
