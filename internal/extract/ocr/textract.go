package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/textract"
	"github.com/aws/aws-sdk-go-v2/service/textract/types"

	"docbrief/pkg/logger"
)

// Textract recognizes text with the AWS Textract service.
type Textract struct {
	log    logger.Logger
	client *textract.Client
}

// NewTextract builds a Textract client for the given region. Static
// credentials are used when provided, otherwise the default AWS chain
// applies.
func NewTextract(ctx context.Context, log logger.Logger, region, accessKeyID, secretAccessKey string) (*Textract, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
	}
	if accessKeyID != "" && secretAccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &Textract{
		log:    log.Named("textract"),
		client: textract.NewFromConfig(awsCfg),
	}, nil
}

// Recognize submits one page image and joins the detected lines.
func (t *Textract) Recognize(ctx context.Context, image []byte) (string, error) {
	out, err := t.client.DetectDocumentText(ctx, &textract.DetectDocumentTextInput{
		Document: &types.Document{Bytes: image},
	})
	if err != nil {
		return "", fmt.Errorf("detect document text: %w", err)
	}

	var sb strings.Builder
	for _, block := range out.Blocks {
		if block.BlockType != types.BlockTypeLine {
			continue
		}
		line := aws.ToString(block.Text)
		if line == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(line)
	}

	t.log.Debug("textract page recognized",
		logger.Int("blocks", len(out.Blocks)),
		logger.Int("chars", sb.Len()))

	return sb.String(), nil
}
