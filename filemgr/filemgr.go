package filemgr

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"foodgram/utils"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

type EntityType string

const (
	EntityUser   EntityType = "user"
	EntityRecipe EntityType = "recipe"
)

var (
	ErrInvalidImage = errors.New("invalid image payload")

	uploadRoot = "./static"

	entityDirs = map[EntityType]string{
		EntityUser:   "userpic",
		EntityRecipe: "recipepic",
	}

	extByFormat = map[string]string{
		"jpeg": ".jpg",
		"png":  ".png",
		"gif":  ".gif",
		"webp": ".webp",
	}

	dataURIRe = regexp.MustCompile(`^data:image/[a-z+.\-]+;base64,`)
)

// SaveBase64Image decodes a base64 image payload (with or without a data-URI
// prefix), stores the original under static/<entity dir>/ and writes a JPEG
// thumbnail of the given width next to it. Returns the two web paths.
func SaveBase64Image(payload string, entity EntityType, thumbWidth int) (string, string, error) {
	if payload == "" {
		return "", "", ErrInvalidImage
	}
	payload = dataURIRe.ReplaceAllString(payload, "")

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	ext, ok := extByFormat[format]
	if !ok {
		return "", "", fmt.Errorf("%w: unsupported format %s", ErrInvalidImage, format)
	}

	dir := filepath.Join(uploadRoot, entityDirs[entity])
	if err := utils.EnsureDir(dir); err != nil {
		return "", "", err
	}
	thumbDir := filepath.Join(dir, "thumb")
	if err := utils.EnsureDir(thumbDir); err != nil {
		return "", "", err
	}

	name := utils.GetUUID()
	origPath := filepath.Join(dir, name+ext)
	if err := os.WriteFile(origPath, raw, 0644); err != nil {
		return "", "", err
	}

	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		os.Remove(origPath)
		return "", "", fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	thumb := imaging.Resize(img, thumbWidth, 0, imaging.Lanczos)
	thumbPath := filepath.Join(thumbDir, name+".jpg")
	if err := imaging.Save(thumb, thumbPath); err != nil {
		os.Remove(origPath)
		return "", "", err
	}

	return webPath(origPath), webPath(thumbPath), nil
}

// RemoveImage deletes a previously saved image and its thumbnail, ignoring
// files that are already gone.
func RemoveImage(webp string) {
	if webp == "" {
		return
	}
	p := strings.TrimPrefix(webp, "/")
	if !strings.HasPrefix(p, "static/") {
		return
	}
	os.Remove(filepath.FromSlash("./" + p))

	dir, name := filepath.Split(filepath.FromSlash(p))
	base := strings.TrimSuffix(name, filepath.Ext(name))
	os.Remove(filepath.Join(".", dir, "thumb", base+".jpg"))
}

func webPath(p string) string {
	return "/" + filepath.ToSlash(filepath.Clean(strings.TrimPrefix(p, "./")))
}
