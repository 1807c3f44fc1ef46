package storage

import (
	"fmt"
	"path"
	"strings"
)

// variantSegment is the fixed revision directory every asset lives under.
const variantSegment = "1"

// BuildAssetPath composes the object key "<folderID>/1/<filename>" for an asset.
func BuildAssetPath(folderID, filename string) (string, error) {
	folder, err := validateSegment("folderID", folderID)
	if err != nil {
		return "", err
	}
	name, err := validateSegment("filename", filename)
	if err != nil {
		return "", err
	}
	return path.Join(folder, variantSegment, name), nil
}

func validateSegment(name, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("storage: %s is required", name)
	}
	if strings.ContainsAny(value, "/\\") {
		return "", fmt.Errorf("storage: %s contains invalid path characters", name)
	}
	if value == "." || value == ".." {
		return "", fmt.Errorf("storage: %s must not be a relative path element", name)
	}
	return value, nil
}
