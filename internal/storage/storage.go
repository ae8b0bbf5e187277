package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Subdirectories media is filed under.
const (
	DirContent     = "content"
	DirLogos       = "logos"
	DirBackgrounds = "backgrounds"
)

// Storage persists uploaded media and serves back a URL the player can fetch.
type Storage interface {
	// SaveFile stores the upload under dir and returns (stored filename, URL).
	SaveFile(fileHeader *multipart.FileHeader, dir string) (string, string, error)
	// DeleteFile removes a previously stored file; missing files are not an error.
	DeleteFile(dir, filename string) error
}

type LocalStorage struct {
	uploadDir string
}

type SpacesStorage struct {
	client *s3.S3
	bucket string
	cdnURL string
}

func NewLocalStorage(uploadDir string) *LocalStorage {
	return &LocalStorage{uploadDir: uploadDir}
}

func NewSpacesStorage(endpoint, region, bucket, cdnURL, accessKey, secretKey string) (*SpacesStorage, error) {
	config := &aws.Config{
		Credentials:      credentials.NewStaticCredentials(accessKey, secretKey, ""),
		Endpoint:         aws.String(endpoint),
		Region:           aws.String(region),
		S3ForcePathStyle: aws.Bool(false),
	}

	sess, err := session.NewSession(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &SpacesStorage{
		client: s3.New(sess),
		bucket: bucket,
		cdnURL: cdnURL,
	}, nil
}

// uniqueFilename keeps the extension and replaces the rest with a random hex
// id, so uploads never collide and player caches never see a stale name.
func uniqueFilename(originalFilename string) string {
	ext := strings.ToLower(filepath.Ext(originalFilename))
	return fmt.Sprintf("%s%s", strings.ReplaceAll(uuid.NewString(), "-", ""), ext)
}

func (ls *LocalStorage) SaveFile(fileHeader *multipart.FileHeader, dir string) (string, string, error) {
	filename := uniqueFilename(fileHeader.Filename)
	targetDir := filepath.Join(ls.uploadDir, dir)
	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return "", "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer func(src multipart.File) {
		if err := src.Close(); err != nil {
			return
		}
	}(src)

	dst, err := os.Create(filepath.Join(targetDir, filename))
	if err != nil {
		return "", "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer func(dst *os.File) {
		if err := dst.Close(); err != nil {
			return
		}
	}(dst)

	if _, err := io.Copy(dst, src); err != nil {
		return "", "", fmt.Errorf("failed to save file: %w", err)
	}

	log.Debug().Str("original", fileHeader.Filename).Str("stored", filename).Msg("file saved locally")
	return filename, fmt.Sprintf("/uploads/%s/%s", dir, filename), nil
}

func (ls *LocalStorage) DeleteFile(dir, filename string) error {
	err := os.Remove(filepath.Join(ls.uploadDir, dir, filename))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (ss *SpacesStorage) SaveFile(fileHeader *multipart.FileHeader, dir string) (string, string, error) {
	filename := uniqueFilename(fileHeader.Filename)

	src, err := fileHeader.Open()
	if err != nil {
		return "", "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer func(src multipart.File) {
		if err := src.Close(); err != nil {
			return
		}
	}(src)

	key := fmt.Sprintf("uploads/%s/%s", dir, filename)

	_, err = ss.client.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(ss.bucket),
		Key:         aws.String(key),
		Body:        src,
		ContentType: aws.String(getContentType(filename)),
		ACL:         aws.String("public-read"),
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to upload file to Spaces")
		return "", "", fmt.Errorf("failed to upload to Spaces: %w", err)
	}

	cdnURL := fmt.Sprintf("%s/%s", strings.TrimSuffix(ss.cdnURL, "/"), key)
	return filename, cdnURL, nil
}

func (ss *SpacesStorage) DeleteFile(dir, filename string) error {
	key := fmt.Sprintf("uploads/%s/%s", dir, filename)
	_, err := ss.client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(ss.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to delete file from Spaces")
	}
	return err
}

func getContentType(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".mp4":
		return "video/mp4"
	case ".webm":
		return "video/webm"
	case ".avi":
		return "video/x-msvideo"
	case ".mov":
		return "video/quicktime"
	default:
		return "application/octet-stream"
	}
}
