package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"notehub/internal/http/middleware"
	"notehub/internal/model"
	"notehub/internal/service"
)

type messageResponse struct {
	Message string `json:"message"`
}

type likeResponse struct {
	IsLiked bool `json:"isLiked"`
}

type rateRequest struct {
	Rating int `json:"rating"`
}

// requireUser returns the authenticated user id; ok is false for anonymous requests.
func requireUser(c *fiber.Ctx) (string, bool) {
	id := middleware.GetUserID(c)
	return id, id != ""
}

func unauthorized(c *fiber.Ctx) error {
	return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
}

// ListNotes godoc
// @Summary List public notes
// @Tags notes
// @Produce json
// @Param subject query string false "exact subject"
// @Param search query string false "substring of title, description, course or tags"
// @Param limit query int false "page size" default(50)
// @Param offset query int false "rows to skip" default(0)
// @Success 200 {array} model.NoteWithUploader
// @Router /api/notes [get]
func ListNotes(svc service.NoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		notes, err := svc.List(c.UserContext(), model.NoteFilter{
			Subject: c.Query("subject"),
			Search:  c.Query("search"),
			Limit:   limit,
			Offset:  offset,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(notes)
	}
}

// GetNote godoc
// @Summary Get a note with its uploader
// @Tags notes
// @Produce json
// @Param id path string true "note id"
// @Success 200 {object} model.NoteWithUploader
// @Failure 404 {object} errorPayload
// @Router /api/notes/{id} [get]
func GetNote(svc service.NoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		note, err := svc.Get(c.UserContext(), c.Params("id"), middleware.GetUserID(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(note)
	}
}

// UploadNote godoc
// @Summary Upload a note (multipart/form-data)
// @Tags notes
// @Accept mpfd
// @Produce json
// @Param file formData file true "document"
// @Param title formData string true "title"
// @Param subject formData string true "subject"
// @Param description formData string false "description"
// @Param course formData string false "course"
// @Param university formData string false "university"
// @Param tags formData string false "comma separated tags"
// @Param isPublic formData string false "true for public notes"
// @Success 201 {object} model.Note
// @Failure 400 {object} errorPayload
// @Security BearerAuth
// @Router /api/notes [post]
func UploadNote(svc service.NoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := requireUser(c)
		if !ok {
			return unauthorized(c)
		}

		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "no file uploaded")
		}
		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get(fiber.HeaderContentType)
		if ct == "" {
			ct = "application/octet-stream"
		}

		note, err := svc.Upload(c.UserContext(), service.UploadInput{
			File:        f,
			FileName:    fh.Filename,
			ContentType: ct,
			Size:        fh.Size,
			Title:       c.FormValue("title"),
			Description: c.FormValue("description"),
			Subject:     c.FormValue("subject"),
			Course:      c.FormValue("course"),
			University:  c.FormValue("university"),
			Tags:        service.ParseTags(c.FormValue("tags")),
			IsPublic:    c.FormValue("isPublic") == "true",
			UploaderID:  userID,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(note)
	}
}

// DownloadNote godoc
// @Summary Download the note file
// @Tags notes
// @Produce octet-stream
// @Param id path string true "note id"
// @Success 200 {file} file
// @Failure 404 {object} errorPayload
// @Router /api/notes/{id}/download [get]
func DownloadNote(svc service.NoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		dl, err := svc.Download(c.UserContext(), c.Params("id"))
		if err != nil {
			return writeServiceError(c, err)
		}

		c.Attachment(dl.Note.FileName)
		c.Set(fiber.HeaderContentType, dl.Note.FileType)
		size := int(dl.Info.Size)
		if size <= 0 {
			size = -1
		}
		// fasthttp closes the body once streamed.
		return c.SendStream(dl.Body, size)
	}
}

// DeleteNote godoc
// @Summary Delete a note and its file
// @Tags notes
// @Produce json
// @Param id path string true "note id"
// @Success 200 {object} messageResponse
// @Failure 403 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Security BearerAuth
// @Router /api/notes/{id} [delete]
func DeleteNote(svc service.NoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := requireUser(c)
		if !ok {
			return unauthorized(c)
		}
		if err := svc.Delete(c.UserContext(), c.Params("id"), userID); err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(messageResponse{Message: "Note deleted successfully"})
	}
}

// ToggleLike godoc
// @Summary Like or unlike a note
// @Tags notes
// @Produce json
// @Param id path string true "note id"
// @Success 200 {object} likeResponse
// @Security BearerAuth
// @Router /api/notes/{id}/like [post]
func ToggleLike(svc service.NoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := requireUser(c)
		if !ok {
			return unauthorized(c)
		}
		liked, err := svc.ToggleLike(c.UserContext(), c.Params("id"), userID)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(likeResponse{IsLiked: liked})
	}
}

// RateNote godoc
// @Summary Rate a note from 1 to 5
// @Tags notes
// @Accept json
// @Produce json
// @Param id path string true "note id"
// @Param body body rateRequest true "rating"
// @Success 200 {object} messageResponse
// @Failure 400 {object} errorPayload
// @Security BearerAuth
// @Router /api/notes/{id}/rate [post]
func RateNote(svc service.NoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := requireUser(c)
		if !ok {
			return unauthorized(c)
		}
		var req rateRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		if err := svc.Rate(c.UserContext(), c.Params("id"), userID, req.Rating); err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(messageResponse{Message: "Note rated successfully"})
	}
}
