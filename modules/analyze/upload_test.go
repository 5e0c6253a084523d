package analyze

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
)

type uploadPart struct {
	field    string
	filename string
	mimeType string
	data     []byte
}

func newUploadRequest(t *testing.T, parts ...uploadPart) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for _, p := range parts {
		hdr := textproto.MIMEHeader{}
		hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, p.field, p.filename))
		hdr.Set("Content-Type", p.mimeType)
		w, err := mw.CreatePart(hdr)
		if err != nil {
			t.Fatalf("CreatePart() error: %v", err)
		}
		if _, err := w.Write(p.data); err != nil {
			t.Fatalf("Write() error: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/analyze-skin", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestExtractUploadedImage_Accepts(t *testing.T) {
	data := bytes.Repeat([]byte{0xAB}, 2<<20) // 2 MiB
	req := newUploadRequest(t, uploadPart{field: PhotoFieldName, filename: "face.jpg", mimeType: "image/jpeg", data: data})

	img, perr := ExtractUploadedImage(httptest.NewRecorder(), req)
	if perr != nil {
		t.Fatalf("ExtractUploadedImage() error: %v", perr)
	}
	if img.MIMEType != "image/jpeg" {
		t.Errorf("MIMEType = %q, want image/jpeg", img.MIMEType)
	}
	if len(img.Data) != len(data) {
		t.Errorf("Data length = %d, want %d", len(img.Data), len(data))
	}
}

func TestExtractUploadedImage_Rejects(t *testing.T) {
	tests := []struct {
		name     string
		parts    []uploadPart
		wantCode string
	}{
		{
			name:     "no attachment",
			parts:    nil,
			wantCode: ErrCodeMissingInput,
		},
		{
			name: "wrong field name",
			parts: []uploadPart{
				{field: "image", filename: "face.jpg", mimeType: "image/jpeg", data: []byte("x")},
			},
			wantCode: ErrCodeMissingInput,
		},
		{
			name: "gif is rejected regardless of size",
			parts: []uploadPart{
				{field: PhotoFieldName, filename: "face.gif", mimeType: "image/gif", data: []byte("tiny")},
			},
			wantCode: ErrCodeUnsupportedMediaType,
		},
		{
			name: "missing content type",
			parts: []uploadPart{
				{field: PhotoFieldName, filename: "face.jpg", mimeType: "", data: []byte("x")},
			},
			wantCode: ErrCodeUnsupportedMediaType,
		},
		{
			name: "png over the size cap",
			parts: []uploadPart{
				{field: PhotoFieldName, filename: "big.png", mimeType: "image/png", data: bytes.Repeat([]byte{0x01}, 11<<20)},
			},
			wantCode: ErrCodePayloadTooLarge,
		},
		{
			name: "empty file",
			parts: []uploadPart{
				{field: PhotoFieldName, filename: "face.png", mimeType: "image/png", data: nil},
			},
			wantCode: ErrCodeMissingInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newUploadRequest(t, tt.parts...)

			img, perr := ExtractUploadedImage(httptest.NewRecorder(), req)
			if perr == nil {
				t.Fatalf("ExtractUploadedImage() = %+v, want %s", img, tt.wantCode)
			}
			if perr.Code != tt.wantCode {
				t.Errorf("Code = %s, want %s", perr.Code, tt.wantCode)
			}
		})
	}
}

// Multiple parts under the photo field: the first one wins, deterministically.
func TestExtractUploadedImage_FirstAttachmentWins(t *testing.T) {
	req := newUploadRequest(t,
		uploadPart{field: PhotoFieldName, filename: "first.png", mimeType: "image/png", data: []byte("first")},
		uploadPart{field: PhotoFieldName, filename: "second.jpg", mimeType: "image/jpeg", data: []byte("second")},
	)

	img, perr := ExtractUploadedImage(httptest.NewRecorder(), req)
	if perr != nil {
		t.Fatalf("ExtractUploadedImage() error: %v", perr)
	}
	if img.MIMEType != "image/png" || string(img.Data) != "first" {
		t.Errorf("got %s %q, want the first attachment", img.MIMEType, img.Data)
	}
}

func TestExtractUploadedImage_ContentTypeParameters(t *testing.T) {
	req := newUploadRequest(t, uploadPart{
		field: PhotoFieldName, filename: "face.jpg", mimeType: "image/jpeg; charset=binary", data: []byte("x"),
	})

	img, perr := ExtractUploadedImage(httptest.NewRecorder(), req)
	if perr != nil {
		t.Fatalf("ExtractUploadedImage() error: %v", perr)
	}
	if img.MIMEType != "image/jpeg" {
		t.Errorf("MIMEType = %q, want image/jpeg", img.MIMEType)
	}
}
