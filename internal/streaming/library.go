package streaming

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrNotFound is returned when the requested media file does not exist.
var ErrNotFound = errors.New("media file not found")

var audioTypes = map[string]string{
	".mp3":  "audio/mpeg",
	".m4a":  "audio/mp4",
	".aac":  "audio/aac",
	".ogg":  "audio/ogg",
	".oga":  "audio/ogg",
	".opus": "audio/opus",
	".wav":  "audio/wav",
	".flac": "audio/flac",
	".webm": "audio/webm",
}

// Library serves audio files from a single media directory.
type Library struct {
	dir string
}

// NewLibrary creates a Library rooted at dir.
func NewLibrary(dir string) *Library {
	return &Library{dir: dir}
}

// ContentType maps a filename to its media type.
func ContentType(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if t, ok := audioTypes[ext]; ok {
		return t
	}
	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}
	return "application/octet-stream"
}

// Open resolves a client-supplied filename inside the media directory. Names
// carrying any path component are rejected.
func (l *Library) Open(name string) (*os.File, os.FileInfo, error) {
	if name == "" || name == "." || name == ".." || name != filepath.Base(name) || strings.ContainsAny(name, `/\`) {
		return nil, nil, ErrNotFound
	}

	f, err := os.Open(filepath.Join(l.dir, name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("open media file: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("stat media file: %w", err)
	}
	if info.IsDir() {
		f.Close()
		return nil, nil, ErrNotFound
	}

	return f, info, nil
}

// Serve writes the named file to w, honouring a single byte Range. On
// ErrNotFound and ErrRangeNotSatisfiable nothing but headers has been written
// and the caller renders the error body.
func (l *Library) Serve(w http.ResponseWriter, r *http.Request, name string) error {
	f, info, err := l.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()

	size := info.Size()
	h := w.Header()
	h.Set("Accept-Ranges", "bytes")
	h.Set("Content-Type", ContentType(name))

	header := r.Header.Get("Range")
	if header == "" {
		h.Set("Content-Length", strconv.FormatInt(size, 10))
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodHead {
			return nil
		}
		_, err = io.Copy(w, f)
		return err
	}

	br, err := ParseRange(header, size)
	if err != nil {
		h.Del("Content-Type")
		h.Set("Content-Range", fmt.Sprintf("bytes */%d", size))
		return err
	}

	if _, err := f.Seek(br.Start, io.SeekStart); err != nil {
		return fmt.Errorf("seek media file: %w", err)
	}

	h.Set("Content-Range", fmt.Sprintf("bytes %d-%d/%d", br.Start, br.End, size))
	h.Set("Content-Length", strconv.FormatInt(br.Length(), 10))
	w.WriteHeader(http.StatusPartialContent)
	if r.Method == http.MethodHead {
		return nil
	}
	_, err = io.CopyN(w, f, br.Length())
	return err
}
