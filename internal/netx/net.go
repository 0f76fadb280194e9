// Package netx holds HTTP helpers shared by the story API transport.
package netx

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strings"
)

// Bearer formats token as an Authorization header value.
func Bearer(token string) string {
	return "Bearer " + token
}

// Field is one part of a multipart/form-data body. Filename is set only for
// file parts.
type Field struct {
	Name        string
	Filename    string
	ContentType string
	Value       []byte
}

// EncodeMultipart writes fields as a multipart/form-data body and returns it
// with the matching Content-Type header value.
func EncodeMultipart(fields []Field) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	for _, f := range fields {
		h := make(textproto.MIMEHeader)
		disposition := fmt.Sprintf(`form-data; name="%s"`, escapeQuotes(f.Name))
		if f.Filename != "" {
			disposition += fmt.Sprintf(`; filename="%s"`, escapeQuotes(f.Filename))
		}
		h.Set("Content-Disposition", disposition)
		if f.ContentType != "" {
			h.Set("Content-Type", f.ContentType)
		}

		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("create part %s: %w", f.Name, err)
		}
		if _, err := part.Write(f.Value); err != nil {
			return nil, "", fmt.Errorf("write part %s: %w", f.Name, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return body, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
