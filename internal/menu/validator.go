package menu

import (
	"errors"
	"path/filepath"
	"strings"
)

var allowedIconExt = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
	".svg":  true,
}

func ValidateIconExtension(filename string) error {
	ext := strings.ToLower(filepath.Ext(filename))

	if ext == "" {
		return errors.New("file extension missing")
	}

	if !allowedIconExt[ext] {
		return errors.New("file type not allowed")
	}

	return nil
}
