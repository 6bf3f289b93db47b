package aasx

import (
	"path"
	"strings"

	"github.com/industrial-twin/aas-package-manager/lib/model"
)

// FormatFromLocation derives the package format from the lowercased
// trailing extension. Anything unrecognized yields FormatUnknown.
func FormatFromLocation(location string) model.Format {
	switch strings.ToLower(path.Ext(strings.ReplaceAll(location, "\\", "/"))) {
	case ".aasx":
		return model.FormatAASX
	case ".xml":
		return model.FormatXML
	case ".json":
		return model.FormatJSON
	default:
		return model.FormatUnknown
	}
}

// Extension returns the canonical file extension for a format, dot
// included.
func Extension(f model.Format) string {
	switch f {
	case model.FormatAASX:
		return ".aasx"
	case model.FormatXML:
		return ".xml"
	case model.FormatJSON:
		return ".json"
	default:
		return ""
	}
}

// IsArchive reports whether the format requires container buffering.
func IsArchive(f model.Format) bool {
	return f == model.FormatAASX
}
