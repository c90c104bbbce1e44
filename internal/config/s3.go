package config

import (
	"context"
	"os"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config holds the client and bucket used for campaign image assets.
type S3Config struct {
	Client *s3.Client
	Bucket string

	// PublicBaseURL is the origin images are served from (CDN or the bucket
	// website endpoint). Uploaded asset URLs are built from it.
	PublicBaseURL string
}

func NewS3Config() (*S3Config, error) {
	region := getEnv("AWS_REGION", "us-east-1")
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			os.Getenv("AWS_ACCESS_KEY_ID"),
			os.Getenv("AWS_SECRET_ACCESS_KEY"),
			"",
		)),
	)
	if err != nil {
		return nil, err
	}

	bucket := os.Getenv("S3_BUCKET_NAME")
	return &S3Config{
		Client:        s3.NewFromConfig(cfg),
		Bucket:        bucket,
		PublicBaseURL: getEnv("S3_PUBLIC_BASE_URL", "https://"+bucket+".s3."+region+".amazonaws.com"),
	}, nil
}
