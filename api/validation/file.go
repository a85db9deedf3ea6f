package validation

import (
	"bytes"
	"mime"
	"net/http"
	"strings"
)

type FileType string

const (
	FileTypePNG  FileType = "png"
	FileTypeJPEG FileType = "jpeg"
	FileTypeGIF  FileType = "gif"
	FileTypeWEBP FileType = "webp"
	FileTypeBMP  FileType = "bmp"
	FileTypeTIFF FileType = "tiff"
)

var magicBytes = map[FileType][][]byte{
	FileTypePNG:  {{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}},
	FileTypeJPEG: {{0xFF, 0xD8, 0xFF}},
	FileTypeGIF:  {{0x47, 0x49, 0x46, 0x38}},
	FileTypeBMP:  {{0x42, 0x4D}},
	FileTypeTIFF: {{0x49, 0x49, 0x2A, 0x00}, {0x4D, 0x4D, 0x00, 0x2A}},
}

// DetectFileType identifies an image by its leading bytes.
func DetectFileType(data []byte) (FileType, error) {
	// RIFF container with a WEBP form type at offset 8
	if len(data) >= 12 && bytes.Equal(data[:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WEBP")) {
		return FileTypeWEBP, nil
	}

	for fileType, signatures := range magicBytes {
		for _, signature := range signatures {
			if bytes.HasPrefix(data, signature) {
				return fileType, nil
			}
		}
	}

	return "", ErrInvalidFileType
}

func (f FileType) MediaType() string {
	return "image/" + string(f)
}

// IsImageMediaType reports whether a declared media type is an image/* type.
// Parameters such as charset are ignored.
func IsImageMediaType(mediaType string) bool {
	mt, _, err := mime.ParseMediaType(mediaType)
	if err != nil {
		return false
	}
	return strings.HasPrefix(mt, "image/")
}

// ResolveMediaType returns the declared media type, or one sniffed from data
// when the client declared nothing useful.
func ResolveMediaType(declared string, data []byte) string {
	declared = strings.TrimSpace(declared)
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	if fileType, err := DetectFileType(data); err == nil {
		return fileType.MediaType()
	}
	return http.DetectContentType(data)
}

// CheckUpload validates an uploaded image body against the declared media
// type and a hard size cap. It returns the media type to record.
func CheckUpload(declared string, data []byte, maxSize int64) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyFile
	}
	if maxSize > 0 && int64(len(data)) > maxSize {
		return "", ErrFileTooLarge
	}

	mediaType := ResolveMediaType(declared, data)
	if !IsImageMediaType(mediaType) {
		return "", ErrNotAnImage
	}
	return mediaType, nil
}
