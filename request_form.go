package relay

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"

	"github.com/corewired/relay/types"
)

// boundary is reused across every multipart form this process builds.
var boundary = randomBoundary()

func randomBoundary() string {
	var buf [30]byte
	if _, err := io.ReadFull(rand.Reader, buf[:]); err != nil {
		panic(err)
	}

	return fmt.Sprintf("%x", buf[:])
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

const (
	contentTypeJSONString        = "application/json"
	contentTypeOctetStreamString = "application/octet-stream"
)

// createMultipartForm builds a Discord-compatible multipart/form-data body:
// a `payload_json` part carrying the JSON request body, followed by one
// `files[n]` part per attachment (spec.md §1's file-upload requirement).
//
// Ported directly from the teacher's wrapper/request_form.go, unchanged in
// structure — only the File type it reads attachments from moved to
// types.File.
func createMultipartForm(payload []byte, files ...*types.File) (contentType string, body []byte, err error) {
	form := bytes.NewBuffer(nil)

	mw := multipart.NewWriter(form)
	if err := mw.SetBoundary(boundary); err != nil {
		return "", nil, fmt.Errorf("relay: setting multipart boundary: %w", err)
	}

	payloadPart, err := createPayloadJSONPart(mw)
	if err != nil {
		return "", nil, fmt.Errorf("relay: adding payload_json part: %w", err)
	}

	if _, err := payloadPart.Write(payload); err != nil {
		return "", nil, fmt.Errorf("relay: writing payload_json part: %w", err)
	}

	for i, file := range files {
		name := fmt.Sprintf("files[%d]", i)

		filePart, err := createFormFilePart(mw, name, file.Name, file.ContentType)
		if err != nil {
			return "", nil, fmt.Errorf("relay: adding file %q part: %w", file.Name, err)
		}

		if _, err := filePart.Write(file.Data); err != nil {
			return "", nil, fmt.Errorf("relay: writing file %q part: %w", file.Name, err)
		}
	}

	if err := mw.Close(); err != nil {
		return "", nil, fmt.Errorf("relay: closing multipart form: %w", err)
	}

	return mw.FormDataContentType(), form.Bytes(), nil
}

func createPayloadJSONPart(mw *multipart.Writer) (io.Writer, error) {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="payload_json"`)
	h.Set("Content-Type", contentTypeJSONString)

	return mw.CreatePart(h)
}

func createFormFilePart(mw *multipart.Writer, name, filename, contentType string) (io.Writer, error) {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="%s"; filename="%s"`, name, quoteEscaper.Replace(filename)))

	if contentType == "" {
		contentType = contentTypeOctetStreamString
	}

	h.Set("Content-Type", contentType)

	return mw.CreatePart(h)
}
