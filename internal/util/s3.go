package util

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"time"

	filestorage "github.com/SeakMengs/ConfPortal/internal/file_storage"
	"github.com/minio/minio-go/v7"
)

const PaperFileURLExpiry = 15 * time.Minute

func GetPaperDirectoryPath(authorId string) string {
	return fmt.Sprintf("papers/%s", authorId)
}

// ToPaperObjectName builds a collision free object name for an uploaded
// paper, e.g. "papers/<authorId>/4f1k9x2m0q7rz3c8v6b5n_paper.pdf".
func ToPaperObjectName(authorId string, filename string) (string, error) {
	id, err := GenerateObjectID(21)
	if err != nil {
		return "", err
	}

	return path.Join(GetPaperDirectoryPath(authorId), id+"_"+path.Base(filename)), nil
}

type FileUploadOptions struct {
	ObjectName  string
	ContentType string
	Bucket      string
	S3          filestorage.ObjectStore
}

func UploadFileToS3(ctx context.Context, r io.Reader, size int64, fuo *FileUploadOptions) (minio.UploadInfo, error) {
	info, err := fuo.S3.PutObject(ctx, fuo.Bucket, fuo.ObjectName, r, size, minio.PutObjectOptions{
		ContentType: fuo.ContentType,
	})
	if err != nil {
		return minio.UploadInfo{}, fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return info, nil
}

// PresignedFileURL returns a short lived download link for objectName.
func PresignedFileURL(ctx context.Context, s3 filestorage.ObjectStore, bucket, objectName, downloadName string) (*url.URL, error) {
	params := url.Values{}
	if downloadName != "" {
		params.Set("response-content-disposition", fmt.Sprintf("attachment; filename=%q", downloadName))
	}

	return s3.PresignedGetObject(ctx, bucket, objectName, PaperFileURLExpiry, params)
}

func RemoveFileFromS3(ctx context.Context, s3 filestorage.ObjectStore, bucket, objectName string) error {
	if err := s3.RemoveObject(ctx, bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove file from S3: %w", err)
	}

	return nil
}
