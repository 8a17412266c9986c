package utils

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	storage "github.com/supabase-community/storage-go"
)

func storageClient() *storage.Client {
	supabaseURL := os.Getenv("SUPABASE_URL")
	supabaseKey := os.Getenv("SUPABASE_KEY")
	return storage.NewClient(supabaseURL+"/storage/v1", supabaseKey, nil)
}

func publicURL(objectPath string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/uploads/%s", os.Getenv("SUPABASE_URL"), objectPath)
}

// UploadFileToSupabase uploads a document (.pdf, .docx, ...) to Supabase
// Storage under uploads/documents/<fileID>.<ext> and returns the public URL.
func UploadFileToSupabase(fileHeader *multipart.FileHeader, fileID string) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	ext := filepath.Ext(fileHeader.Filename)
	objectPath := fmt.Sprintf("documents/%s%s", fileID, ext)

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		return "", err
	}

	contentType := fileHeader.Header.Get("Content-Type")
	options := storage.FileOptions{ContentType: &contentType}

	if _, err := storageClient().UploadFile("uploads", objectPath, &buf, options); err != nil {
		return "", err
	}
	return publicURL(objectPath), nil
}

// UploadImageToSupabase uploads an image under uploads/images/<fileID>.<ext>.
func UploadImageToSupabase(fileHeader *multipart.FileHeader, fileID string) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	ext := filepath.Ext(fileHeader.Filename)
	objectPath := fmt.Sprintf("images/%s%s", fileID, ext)

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		return "", err
	}

	contentType := fileHeader.Header.Get("Content-Type")
	options := storage.FileOptions{ContentType: &contentType}

	if _, err := storageClient().UploadFile("uploads", objectPath, &buf, options); err != nil {
		return "", err
	}
	return publicURL(objectPath), nil
}

// UploadBytesToSupabase uploads raw bytes (generated PDFs, thumbnails) under
// uploads/<folder>/<filename>.
func UploadBytesToSupabase(data []byte, folder, filename, contentType string) (string, error) {
	objectPath := fmt.Sprintf("%s/%s", folder, filename)
	options := storage.FileOptions{ContentType: &contentType}

	if _, err := storageClient().UploadFile("uploads", objectPath, bytes.NewBuffer(data), options); err != nil {
		return "", err
	}
	return publicURL(objectPath), nil
}

// DeleteFileFromSupabase takes a public URL produced by the upload helpers
// and removes the underlying object. Empty URLs are a no-op.
func DeleteFileFromSupabase(fileURL string) error {
	if fileURL == "" {
		return nil
	}

	supabaseURL := os.Getenv("SUPABASE_URL")
	supabaseKey := os.Getenv("SUPABASE_KEY")
	if supabaseURL == "" || supabaseKey == "" {
		return fmt.Errorf("SUPABASE_URL or SUPABASE_KEY not configured")
	}

	idx := strings.Index(fileURL, "/storage/v1/object/")
	if idx == -1 {
		return fmt.Errorf("cannot locate object path in URL: %s", fileURL)
	}

	rest := fileURL[idx+len("/storage/v1/object/"):]
	rest = strings.TrimPrefix(rest, "public/")

	parts := strings.SplitN(rest, "/", 2)
	if len(parts) < 2 {
		return fmt.Errorf("cannot parse bucket/object from URL: %s", fileURL)
	}
	bucket := parts[0]
	object := parts[1]
	if qIdx := strings.Index(object, "?"); qIdx != -1 {
		object = object[:qIdx]
	}
	if u, err := url.PathUnescape(object); err == nil {
		object = u
	}

	deleteURL := fmt.Sprintf("%s/storage/v1/object/%s/%s", strings.TrimRight(supabaseURL, "/"), bucket, object)

	req, err := http.NewRequest(http.MethodDelete, deleteURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+supabaseKey)
	req.Header.Set("apikey", supabaseKey)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("delete failed (%d): %s", resp.StatusCode, string(body))
	}
	return nil
}
