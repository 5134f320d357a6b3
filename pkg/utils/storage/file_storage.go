package storage

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"imovia_backend/pkg/utils/image"
	"imovia_backend/pkg/utils/validation"
)

var (
	s3Client   *s3.Client
	bucketName string
	region     string
)

func InitStorage(bucket, awsRegion string) error {
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(awsRegion),
	)
	if err != nil {
		return fmt.Errorf("unable to load SDK config: %v", err)
	}

	s3Client = s3.NewFromConfig(cfg)
	bucketName = bucket
	region = awsRegion
	return nil
}

// BaseURL returns the public prefix every uploaded object URL starts with.
func BaseURL() string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucketName, region)
}

var extByContentType = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// objectKey builds the bucket key for a processed image. The extension
// comes from the re-encoded content type, never the client filename.
func objectKey(listingID uint, contentType string) string {
	return fmt.Sprintf("listings/%d/%s%s", listingID, uuid.NewString(), extByContentType[contentType])
}

// UploadListingImage validates, re-encodes and uploads one image, returning
// its stable public URL. Keys are listings/<listing_id>/<uuid>.<ext>.
func UploadListingImage(ctx context.Context, file *multipart.FileHeader, listingID uint) (string, error) {
	if err := validation.ValidateImage(file); err != nil {
		return "", err
	}

	buf, contentType, err := image.ProcessImage(file)
	if err != nil {
		return "", err
	}

	key := objectKey(listingID, contentType)

	_, err = s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("could not upload to S3: %v", err)
	}

	return fmt.Sprintf("%s/%s", BaseURL(), key), nil
}

// DeleteImage removes the object behind a previously returned URL.
func DeleteImage(ctx context.Context, imageURL string) error {
	base := BaseURL() + "/"
	if !strings.HasPrefix(imageURL, base) {
		return fmt.Errorf("URL does not belong to this bucket: %s", imageURL)
	}
	key := strings.TrimPrefix(imageURL, base)

	_, err := s3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucketName),
		Key:    aws.String(key),
	})

	return err
}
