// Package multipart assembles multipart/form-data request bodies by hand.
//
// The upload endpoint receives the whole body in one buffered request, so the
// encoder builds the body in memory and reports the exact byte length along
// with the content type. Fields are emitted in caller order, then files, to
// keep the output deterministic for a given input.
package multipart

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"mime"
	"os"
	"path/filepath"
)

// Field is a scalar form value.
type Field struct {
	Name  string
	Value string
}

// File is a form part whose content is read from a local file. The part's
// filename is the base name of Path.
type File struct {
	Name string
	Path string
}

// Header carries the two headers the encoded body requires.
type Header struct {
	ContentType   string
	ContentLength int
}

const (
	boundaryLength   = 30
	boundaryAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Encode builds a multipart/form-data body from fields and files.
//
// File bytes are read with os.ReadFile, so the handle is closed on every
// exit path. Header.ContentLength always equals len(body) exactly.
func Encode(fields []Field, files []File) ([]byte, Header, error) {
	boundary, err := randomBoundary()
	if err != nil {
		return nil, Header{}, fmt.Errorf("generate boundary: %w", err)
	}

	var buf bytes.Buffer
	for _, f := range fields {
		fmt.Fprintf(&buf, "--%s\r\n", boundary)
		fmt.Fprintf(&buf, "Content-Disposition: form-data; name=%q\r\n\r\n", f.Name)
		buf.WriteString(f.Value)
		buf.WriteString("\r\n")
	}
	for _, f := range files {
		data, err := os.ReadFile(f.Path)
		if err != nil {
			return nil, Header{}, fmt.Errorf("read %s: %w", f.Path, err)
		}
		filename := filepath.Base(f.Path)
		fmt.Fprintf(&buf, "--%s\r\n", boundary)
		fmt.Fprintf(&buf, "Content-Disposition: form-data; name=%q; filename=%q\r\n", f.Name, filename)
		fmt.Fprintf(&buf, "Content-Type: %s\r\n\r\n", contentType(filename))
		buf.Write(data)
		buf.WriteString("\r\n")
	}
	fmt.Fprintf(&buf, "--%s--\r\n", boundary)

	body := buf.Bytes()
	header := Header{
		ContentType:   "multipart/form-data; boundary=" + boundary,
		ContentLength: len(body),
	}
	return body, header, nil
}

// contentType guesses a part's media type from the file extension.
func contentType(filename string) string {
	if t := mime.TypeByExtension(filepath.Ext(filename)); t != "" {
		return t
	}
	return "application/octet-stream"
}

// randomBoundary returns a token long enough that a collision with encoded
// content is operationally impossible. The alphabet never appears in the
// CRLF framing itself.
func randomBoundary() (string, error) {
	raw := make([]byte, boundaryLength)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	out := make([]byte, boundaryLength)
	for i, b := range raw {
		out[i] = boundaryAlphabet[int(b)%len(boundaryAlphabet)]
	}
	return string(out), nil
}
