package storage

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["file"][0]
}

func TestLocalStorageSaveAndDelete(t *testing.T) {
	dir := t.TempDir()
	ls := NewLocalStorage(dir)

	fh := uploadHeader(t, "poster.PNG", "fake image bytes")
	filename, url, err := ls.SaveFile(fh, DirContent)
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(filename, ".png"), "extension is kept lowercased")
	assert.NotContains(t, filename, "poster", "original name is replaced")
	assert.Equal(t, "/uploads/content/"+filename, url)

	data, err := os.ReadFile(filepath.Join(dir, DirContent, filename))
	require.NoError(t, err)
	assert.Equal(t, "fake image bytes", string(data))

	require.NoError(t, ls.DeleteFile(DirContent, filename))
	_, err = os.Stat(filepath.Join(dir, DirContent, filename))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStorageDeleteMissingIsNoError(t *testing.T) {
	ls := NewLocalStorage(t.TempDir())
	assert.NoError(t, ls.DeleteFile(DirContent, "never-existed.png"))
}

func TestUniqueFilenameCollisions(t *testing.T) {
	a := uniqueFilename("same.jpg")
	b := uniqueFilename("same.jpg")
	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasSuffix(a, ".jpg"))
}

func TestGetContentType(t *testing.T) {
	assert.Equal(t, "image/jpeg", getContentType("a.JPG"))
	assert.Equal(t, "video/mp4", getContentType("clip.mp4"))
	assert.Equal(t, "application/octet-stream", getContentType("archive.zip"))
}
