package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ceylonstyle/salon-backend/internal/config"
	domain "github.com/ceylonstyle/salon-backend/internal/domain/tryon"
	"github.com/ceylonstyle/salon-backend/internal/httperr"
	"github.com/ceylonstyle/salon-backend/internal/httpresp"
	"github.com/ceylonstyle/salon-backend/internal/storage"
	tryonuc "github.com/ceylonstyle/salon-backend/internal/usecase/tryon"
)

const maxUploadBytes = 10 << 20

type TryOnHandler struct {
	config *config.Config
	store  *storage.Client

	create     *tryonuc.CreateTryOn
	share      *tryonuc.ShareTryOn
	viewShared *tryonuc.ViewSharedTryOn
	sessions   *tryonuc.ListSessions
	get        *tryonuc.GetSession
	save       *tryonuc.SaveSession
	hairstyles *tryonuc.ListHairstyles
}

func NewTryOnHandler(
	cfg *config.Config,
	store *storage.Client,
	create *tryonuc.CreateTryOn,
	share *tryonuc.ShareTryOn,
	viewShared *tryonuc.ViewSharedTryOn,
	sessions *tryonuc.ListSessions,
	get *tryonuc.GetSession,
	save *tryonuc.SaveSession,
	hairstyles *tryonuc.ListHairstyles,
) *TryOnHandler {
	return &TryOnHandler{
		config:     cfg,
		store:      store,
		create:     create,
		share:      share,
		viewShared: viewShared,
		sessions:   sessions,
		get:        get,
		save:       save,
		hairstyles: hairstyles,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateTryOnRequest struct {
	HairstyleID      uint   `json:"hairstyle_id" binding:"required"`
	OriginalImageURL string `json:"original_image_url" binding:"required,url"`
}

type PresignUploadRequest struct {
	Filename string `json:"filename" binding:"required"`
}

// ======================================================
// SESSIONS
// ======================================================

func (h *TryOnHandler) Create(c *gin.Context) {
	var req CreateTryOnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	session, err := h.create.Execute(c.Request.Context(), tryonuc.CreateTryOnInput{
		UserID:           currentUserID(c),
		HairstyleID:      req.HairstyleID,
		OriginalImageURL: req.OriginalImageURL,
	})
	if err != nil {
		httperr.WriteBusiness(c, err, "Could not start try-on.")
		return
	}

	httpresp.Created(c, session)
}

func (h *TryOnHandler) List(c *gin.Context) {
	sessions, err := h.sessions.Execute(c.Request.Context(), currentUserID(c))
	if err != nil {
		httperr.Internal(c, "failed_to_list_sessions", "Could not list try-on sessions.")
		return
	}
	httpresp.List(c, sessions)
}

func (h *TryOnHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Session id must be numeric.")
		return
	}

	session, err := h.get.Execute(c.Request.Context(), tryonuc.GetSessionInput{
		SessionID: uint(id),
		UserID:    currentUserID(c),
	})
	if err != nil {
		httperr.WriteBusiness(c, err, "Could not load try-on session.")
		return
	}

	httpresp.OK(c, session)
}

func (h *TryOnHandler) Save(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Session id must be numeric.")
		return
	}

	session, err := h.save.Execute(c.Request.Context(), tryonuc.GetSessionInput{
		SessionID: uint(id),
		UserID:    currentUserID(c),
	})
	if err != nil {
		httperr.WriteBusiness(c, err, "Could not save try-on session.")
		return
	}

	httpresp.OK(c, session)
}

func (h *TryOnHandler) Share(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Session id must be numeric.")
		return
	}

	token, err := h.share.Execute(c.Request.Context(), tryonuc.ShareTryOnInput{
		SessionID: uint(id),
		UserID:    currentUserID(c),
	})
	if err != nil {
		httperr.WriteBusiness(c, err, "Could not share try-on session.")
		return
	}

	httpresp.OK(c, gin.H{
		"share_token": token,
		"share_url":   fmt.Sprintf("%s/share/%s", h.config.AppURL, token),
	})
}

// ViewShared is the public share-link endpoint.
func (h *TryOnHandler) ViewShared(c *gin.Context) {
	session, err := h.viewShared.Execute(c.Request.Context(), c.Param("token"))
	if err != nil {
		httperr.WriteBusiness(c, err, "Shared try-on not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"hairstyle_name":     session.HairstyleName,
		"original_image_url": session.OriginalImageURL,
		"result_image_url":   session.ResultImageURL,
		"view_count":         session.ViewCount,
		"created_at":         session.CreatedAt,
	})
}

// ======================================================
// HAIRSTYLES
// ======================================================

func (h *TryOnHandler) ListHairstyles(c *gin.Context) {
	filters := domain.HairstyleFilters{
		Category: c.Query("category"),
		Gender:   c.Query("gender"),
	}
	if premium := c.Query("premium"); premium != "" {
		isPremium := premium == "true"
		filters.IsPremium = &isPremium
	}

	hairstyles, err := h.hairstyles.Execute(c.Request.Context(), filters)
	if err != nil {
		httperr.Internal(c, "failed_to_list_hairstyles", "Could not list hairstyles.")
		return
	}

	httpresp.List(c, hairstyles)
}

// ======================================================
// UPLOADS
// ======================================================

// Upload accepts a multipart photo, stores it and a webp thumbnail, and
// returns both URLs for use in a try-on or portfolio entry.
func (h *TryOnHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		httperr.BadRequest(c, "missing_image", "An image file is required.")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		httperr.Internal(c, "failed_to_read_image", "Could not read uploaded image.")
		return
	}
	if len(data) > maxUploadBytes {
		httperr.BadRequest(c, "image_too_large", "Images are limited to 10 MB.")
		return
	}

	contentType := header.Header.Get("Content-Type")
	key := storage.NewObjectKey("uploads", header.Filename)

	url, err := h.store.Upload(c.Request.Context(), key, data, contentType)
	if err != nil {
		httperr.Internal(c, "failed_to_store_image", "Could not store uploaded image.")
		return
	}

	resp := gin.H{"url": url}

	if thumb, err := storage.Thumbnail(data); err == nil {
		thumbKey := storage.NewObjectKey("uploads/thumbs", "thumb.webp")
		if thumbURL, err := h.store.Upload(c.Request.Context(), thumbKey, thumb, "image/webp"); err == nil {
			resp["thumbnail_url"] = thumbURL
		}
	}

	httpresp.Created(c, resp)
}

// Presign hands out a direct-to-bucket upload URL for photos above the
// API body limit, plus a time-limited download URL for previewing the
// uploaded object.
func (h *TryOnHandler) Presign(c *gin.Context) {
	var req PresignUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	key := storage.NewObjectKey("uploads", req.Filename)

	uploadURL, err := h.store.PresignUpload(c.Request.Context(), key)
	if err != nil {
		httperr.Internal(c, "failed_to_presign_upload", "Could not prepare upload.")
		return
	}

	previewURL, err := h.store.PresignGet(c.Request.Context(), key, time.Hour)
	if err != nil {
		httperr.Internal(c, "failed_to_presign_upload", "Could not prepare upload.")
		return
	}

	httpresp.OK(c, gin.H{
		"key":         key,
		"upload_url":  uploadURL,
		"preview_url": previewURL,
		"url":         h.store.ObjectURL(key),
	})
}
