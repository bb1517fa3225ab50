package security

import (
	"bytes"
	"mime"
	"path/filepath"
	"strings"
)

// SniffLen is how much of a stored file ServedContentType needs to see.
const SniffLen = 16

// Magic byte signatures of the types a browser may render inline.
var inlineSignatures = map[string][][]byte{
	".jpg":  {{0xFF, 0xD8, 0xFF}},
	".jpeg": {{0xFF, 0xD8, 0xFF}},
	".png":  {{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}},
	".gif":  {[]byte("GIF87a"), []byte("GIF89a")},
	".webp": {[]byte("RIFF")},
	".pdf":  {[]byte("%PDF")},
}

// ServedContentType picks the Content-Type for a stored upload and whether it
// may be shown inline. Uploads are not type-checked when stored, so a file is
// only inline when its leading bytes match what its extension claims.
func ServedContentType(name string, head []byte) (contentType string, inline bool) {
	ext := strings.ToLower(filepath.Ext(name))
	contentType = mime.TypeByExtension(ext)
	if contentType == "" {
		return "application/octet-stream", false
	}

	for _, sig := range inlineSignatures[ext] {
		if bytes.HasPrefix(head, sig) {
			return contentType, true
		}
	}
	return contentType, false
}
