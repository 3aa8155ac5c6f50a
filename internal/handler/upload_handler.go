package handler

import (
	"net/http"
	"strconv"
	"strings"

	"attendly/internal/middleware"
	"attendly/internal/repository"
	"attendly/pkg/cloudinary"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UploadHandler struct {
	cloud    cloudinary.Client
	userRepo *repository.UserRepository
}

func NewUploadHandler(cloud cloudinary.Client, userRepo *repository.UserRepository) *UploadHandler {
	return &UploadHandler{cloud: cloud, userRepo: userRepo}
}

// UploadAvatar stores a profile photo for the authenticated user and saves
// its URL on the profile.
func (h *UploadHandler) UploadAvatar(c *gin.Context) {
	userID := middleware.GetUserID(c)
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file required"})
		return
	}
	folder := "Attendly/avatars/" + strconv.FormatUint(uint64(userID), 10)
	publicID := "img_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:16]

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read file"})
		return
	}
	defer f.Close()

	url, _, err := h.cloud.UploadImage(c.Request.Context(), f, folder, publicID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
		return
	}
	u, err := h.userRepo.GetByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	u.AvatarURL = url
	if err := h.userRepo.Update(u); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "profile update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
