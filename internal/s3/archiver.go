// server/internal/s3/archiver.go
package s3

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"five-whys-api-server/config"
)

const workbookContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Archiver stores each imported MES workbook so a questioned import can be
// traced back to the exact file that produced it.
type Archiver struct {
	Client *s3.Client
	Bucket string
	Region string
}

func NewArchiver(cfg config.S3Config) (*Archiver, error) {
	sdkConfig, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &Archiver{
		Client: s3.NewFromConfig(sdkConfig),
		Bucket: cfg.Bucket,
		Region: cfg.Region,
	}, nil
}

// ArchiveWorkbook uploads the workbook under the import batch ID and
// returns its URL.
func (a *Archiver) ArchiveWorkbook(ctx context.Context, workbook io.Reader, batchID string) (string, error) {
	objectKey := fmt.Sprintf("mes-imports/%s.xlsx", batchID)

	_, err := a.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.Bucket),
		Key:         aws.String(objectKey),
		Body:        workbook,
		ContentType: aws.String(workbookContentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to archive workbook to S3: %w", err)
	}

	url := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", a.Bucket, a.Region, objectKey)
	return url, nil
}
