// Package dataurl reads uploads into base64 data URLs and back.
package dataurl

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/valyala/bytebufferpool"
)

const DefaultMimeType = "application/octet-stream"

var ErrMalformed = errors.New("malformed data url")

// MimeTypeFor prefers the declared content type, then the file extension.
func MimeTypeFor(fileName, contentType string) string {
	if mt, _, err := mime.ParseMediaType(strings.TrimSpace(contentType)); err == nil && mt != "" {
		return mt
	}
	if mt := mime.TypeByExtension(filepath.Ext(fileName)); mt != "" {
		if parsed, _, err := mime.ParseMediaType(mt); err == nil {
			return parsed
		}
	}
	return DefaultMimeType
}

// Encode streams r into "data:<mimeType>;base64,<payload>".
func Encode(mimeType string, r io.Reader) (string, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString("data:")
	_, _ = buf.WriteString(mimeType)
	_, _ = buf.WriteString(";base64,")

	enc := base64.NewEncoder(base64.StdEncoding, buf)
	if _, err := io.Copy(enc, r); err != nil {
		return "", fmt.Errorf("read content: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("flush encoder: %w", err)
	}

	return buf.String(), nil
}

// Decode splits a base64 data URL into its media type and bytes.
func Decode(raw string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(raw, "data:")
	if !ok {
		return "", nil, fmt.Errorf("%w: missing data: prefix", ErrMalformed)
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("%w: missing payload separator", ErrMalformed)
	}
	mimeType, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", nil, fmt.Errorf("%w: only base64 payloads are supported", ErrMalformed)
	}
	if mimeType == "" {
		mimeType = DefaultMimeType
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return mimeType, data, nil
}
