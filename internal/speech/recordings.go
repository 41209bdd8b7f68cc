package speech

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// RecordingStore persists learner voice recordings on disk
type RecordingStore struct {
	dir string
}

// NewRecordingStore creates a store writing recordings into dir
func NewRecordingStore(dir string) *RecordingStore {
	return &RecordingStore{dir: dir}
}

// extensions maps upload content types to file extensions
var extensions = map[string]string{
	"audio/webm": ".webm",
	"audio/ogg":  ".ogg",
	"audio/mpeg": ".mp3",
	"audio/mp4":  ".m4a",
	"audio/wav":  ".wav",
}

// Save writes one recording and returns its filename. The name embeds the
// learner identity and a timestamp so recordings never collide.
func (rs *RecordingStore) Save(identity string, r io.Reader, contentType string) (string, error) {
	ext, ok := extensions[contentType]
	if !ok {
		ext = ".bin"
	}

	if err := os.MkdirAll(rs.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create recordings directory: %w", err)
	}

	filename := fmt.Sprintf("%s_%d%s", sanitizeIdentity(identity), time.Now().UnixNano(), ext)
	path := filepath.Join(rs.dir, filename)

	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create recording file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write recording: %w", err)
	}

	return filename, nil
}

// sanitizeIdentity makes a learner identity safe to embed in a filename.
// Identities like "google:108234" carry separators that must not reach
// the filesystem.
func sanitizeIdentity(identity string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, identity)
}
