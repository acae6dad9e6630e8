// Package controllers holds the few plain-HTTP endpoints that live next to
// the GraphQL surface: image upload and health.
package controllers

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/shashiranjanraj/storefront/pkg/ctx"
	"github.com/shashiranjanraj/storefront/pkg/middleware"
	"github.com/shashiranjanraj/storefront/pkg/storage"
)

// maxUploadBytes caps item images at 5 MB.
const maxUploadBytes = 5 << 20

var allowedImageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".gif": true,
}

// UploadImage stores an item image on the configured disk (local or S3) and
// returns its public URL for use in createItem.
func UploadImage(c *ctx.Context) {
	if _, ok := middleware.UserID(c.Context()); !ok {
		c.Unauthorized("You must be signed in to upload images")
		return
	}

	c.R.Body = http.MaxBytesReader(c.W, c.R.Body, maxUploadBytes)
	file, header, err := c.R.FormFile("file")
	if err != nil {
		c.Error(http.StatusBadRequest, "expected a multipart 'file' field")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExts[ext] {
		c.Error(http.StatusUnprocessableEntity, "unsupported image type")
		return
	}

	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		c.Error(http.StatusInternalServerError, "could not name upload")
		return
	}
	path := fmt.Sprintf("items/%s%s", hex.EncodeToString(buf), ext)

	if err := storage.PutStream(path, file); err != nil {
		c.Error(http.StatusInternalServerError, "could not store upload")
		return
	}

	c.Created(map[string]string{
		"path": path,
		"url":  storage.URL(path),
	})
}

// Health answers liveness probes.
func Health(c *ctx.Context) {
	c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
