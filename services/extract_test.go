package services

import (
	"mime/multipart"
	"testing"
)

func TestExtractAttachmentTextSkipsNonPDF(t *testing.T) {
	for _, name := range []string{"photo.jpg", "notes.docx", "clip.mp4", "noext"} {
		header := &multipart.FileHeader{Filename: name}
		text, err := ExtractAttachmentText(header)
		if err != nil {
			t.Errorf("%s: unexpected error %v", name, err)
		}
		if text != "" {
			t.Errorf("%s: non-PDF files must yield empty text", name)
		}
	}
}
