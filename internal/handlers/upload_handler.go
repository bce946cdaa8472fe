package handlers

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/ats-checker/internal/models"
	"alfredoptarigan/ats-checker/internal/repositories"
	"alfredoptarigan/ats-checker/internal/services"
)

const unsupportedFormatMessage = "Unsupported resume file format. Please provide a PDF or DOCX file."

type UploadHandler struct {
	atsService     services.ATSService
	storageService services.StorageService
	// docRepo is nil when the database is disabled.
	docRepo     repositories.DocumentRepository
	logger      *zap.Logger
	maxFileSize int64
	keepUploads bool
}

func NewUploadHandler(
	atsService services.ATSService,
	storageService services.StorageService,
	docRepo repositories.DocumentRepository,
	logger *zap.Logger,
	maxFileSize int64,
	keepUploads bool,
) *UploadHandler {
	return &UploadHandler{
		atsService:     atsService,
		storageService: storageService,
		docRepo:        docRepo,
		logger:         logger,
		maxFileSize:    maxFileSize,
		keepUploads:    keepUploads,
	}
}

// HandleUpload handles POST /upload
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return badRequest(c, "No file part")
	}

	resumeFiles, exists := form.File["resume"]
	if !exists || len(resumeFiles) == 0 {
		return badRequest(c, "No file part")
	}

	resumeFile := resumeFiles[0]
	if resumeFile.Filename == "" {
		return badRequest(c, "No selected file")
	}

	if !h.atsService.IsSupported(resumeFile.Filename) {
		return badRequest(c, "Invalid file type")
	}

	if resumeFile.Size > h.maxFileSize {
		return badRequest(c, fmt.Sprintf("Resume file too large. Max size: %d bytes", h.maxFileSize))
	}

	src, err := resumeFile.Open()
	if err != nil {
		return badRequest(c, "failed to open uploaded file")
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return badRequest(c, "failed to read uploaded file")
	}

	if h.keepUploads {
		if err := h.keepUpload(resumeFile.Filename, data); err != nil {
			h.logger.Error("storing upload", zap.String("file", resumeFile.Filename), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
				Error: "failed to store resume",
			})
		}
	}

	var jobDescription string
	if values := form.Value["job_desc"]; len(values) > 0 {
		jobDescription = values[0]
	}

	report, err := h.atsService.ScoreDocument(resumeFile.Filename, data, jobDescription)
	if err != nil {
		h.logger.Warn("extracting resume", zap.String("file", resumeFile.Filename), zap.Error(err))
		if errors.Is(err, services.ErrUnsupportedFormat) {
			return badRequest(c, unsupportedFormatMessage)
		}
		return badRequest(c, fmt.Sprintf("Failed to read resume: %v", err))
	}

	h.logger.Info("calculated ATS score",
		zap.String("file", resumeFile.Filename),
		zap.Float64("ats_score", report.Score),
		zap.Bool("job_description", jobDescription != ""),
	)

	response := models.ScoreResponse{ATSScore: report.Score}
	if c.QueryBool("breakdown") {
		for _, criterion := range report.Criteria {
			response.Criteria = append(response.Criteria, models.CriterionData{
				Name:    criterion.Name,
				Weight:  criterion.Weight,
				Awarded: criterion.Awarded,
				Detail:  criterion.Detail,
			})
		}
	}

	return c.Status(fiber.StatusOK).JSON(response)
}

func (h *UploadHandler) keepUpload(originalName string, data []byte) error {
	filename, filePath, err := h.storageService.SaveFile(originalName, data)
	if err != nil {
		return err
	}

	if h.docRepo == nil {
		return nil
	}

	doc := models.Document{
		ID:               uuid.New(),
		Filename:         filename,
		OriginalFileName: originalName,
		Format:           string(services.FormatFromFilename(originalName)),
		FilePath:         filePath,
		SizeBytes:        int64(len(data)),
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	if err := h.docRepo.Create(&doc); err != nil {
		// Cleanup uploaded file if database insert fails
		h.storageService.DeleteFile(filename)
		return err
	}

	return nil
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: message})
}
