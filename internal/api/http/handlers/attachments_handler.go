package handlers

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/soporteit/helpdesk-service/internal/api/dto"
	"github.com/soporteit/helpdesk-service/internal/service"
	apperrors "github.com/soporteit/helpdesk-service/pkg/util"
)

// AttachmentsHandler exposes the multipart upload and delete endpoints.
type AttachmentsHandler struct {
	attachments *service.AttachmentService
}

// NewAttachmentsHandler constructs the handler.
func NewAttachmentsHandler(attachments *service.AttachmentService) *AttachmentsHandler {
	return &AttachmentsHandler{attachments: attachments}
}

// Upload POST /tickets/:id/attachments. Accepts up to MaxBatchFiles files in
// the "files" multipart field; each file is validated independently and the
// response reports a per-file outcome.
func (h *AttachmentsHandler) Upload(c *fiber.Ctx) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	ticketID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	form, err := c.MultipartForm()
	if err != nil {
		return apperrors.NewValidationError("multipart form required", nil)
	}
	files := form.File["files"]
	if len(files) == 0 {
		return apperrors.NewValidationError("no files provided", nil)
	}
	if len(files) > service.MaxBatchFiles {
		return apperrors.NewValidationError("too many files in one request",
			map[string]any{"file_count": len(files), "max": service.MaxBatchFiles})
	}

	inputs := make([]service.UploadInput, 0, len(files))
	for _, fileHeader := range files {
		input := service.UploadInput{
			FileName: fileHeader.Filename,
			MimeType: fileHeader.Header.Get("Content-Type"),
			Size:     fileHeader.Size,
		}
		// Only read the body once the cheap gates can still pass; an
		// oversized or unsupported file is rejected on metadata alone.
		if validationErr := service.Validate(input); validationErr == nil {
			file, openErr := fileHeader.Open()
			if openErr != nil {
				return apperrors.NewInternalError(openErr)
			}
			content, readErr := io.ReadAll(file)
			_ = file.Close()
			if readErr != nil {
				return apperrors.NewInternalError(readErr)
			}
			input.Content = content
		}
		inputs = append(inputs, input)
	}

	results, err := h.attachments.UploadBatch(c.UserContext(), actor, ticketID, inputs)
	if err != nil {
		return err
	}

	status := fiber.StatusCreated
	allRejected := true
	for _, result := range results {
		if result.Err == nil {
			allRejected = false
			break
		}
	}
	if allRejected {
		status = fiber.StatusUnprocessableEntity
	}
	return c.Status(status).JSON(fiber.Map{"data": dto.NewUploadResultsResponse(results)})
}

// Delete DELETE /attachments/:id.
func (h *AttachmentsHandler) Delete(c *fiber.Ctx) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	attachmentID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.attachments.Delete(c.UserContext(), actor, attachmentID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
