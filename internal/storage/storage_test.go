package storage

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func uploadFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	return req.MultipartForm.File["file"][0]
}

func TestDiskStore_SaveAndDelete(t *testing.T) {
	root := t.TempDir()
	store := NewDiskStore(root, "/uploads")

	header := uploadFileHeader(t, "logo.PNG", []byte("image-bytes"))

	url, err := store.Save("clubs", header)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "/uploads/clubs/"))
	require.True(t, strings.HasSuffix(url, ".png"), "extension should be lowercased: %s", url)

	// The file landed under root/kind with the stored name.
	rel := strings.TrimPrefix(url, "/uploads/")
	data, err := os.ReadFile(filepath.Join(root, rel))
	require.NoError(t, err)
	require.Equal(t, []byte("image-bytes"), data)

	require.NoError(t, store.Delete(url))
	_, err = os.Stat(filepath.Join(root, rel))
	require.True(t, os.IsNotExist(err))

	// Deleting again is a no-op.
	require.NoError(t, store.Delete(url))
}

func TestDiskStore_UniqueNames(t *testing.T) {
	store := NewDiskStore(t.TempDir(), "/uploads")

	first, err := store.Save("events", uploadFileHeader(t, "poster.jpg", []byte("a")))
	require.NoError(t, err)
	second, err := store.Save("events", uploadFileHeader(t, "poster.jpg", []byte("b")))
	require.NoError(t, err)

	require.NotEqual(t, first, second)
}

func TestDiskStore_DeleteRejectsEscapes(t *testing.T) {
	store := NewDiskStore(t.TempDir(), "/uploads")

	require.Error(t, store.Delete("/elsewhere/file.png"))
	require.Error(t, store.Delete("/uploads/../../etc/passwd"))
}
