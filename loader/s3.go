package loader

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/goamz/goamz/aws"
	"github.com/goamz/goamz/s3"
	"github.com/spf13/viper"
)

// An S3 loader fetches signature files from an S3 bucket, so a fleet of
// sensors can share one curated database.
type S3 struct {
	configFileName string
	bucket         *s3.Bucket
}

// NewS3Instance returns an S3 loader configured from the named TOML
// file, which must provide AccessKey, SecretKey, S3Endpoint,
// S3BucketEndpoint and BucketName.
func NewS3Instance(configFileName string) (S3, error) {
	var s3Instance S3

	viper.SetConfigType("toml")
	// Viper expects config names without their extension.
	viper.SetConfigName(strings.Replace(configFileName, ".toml", "", -1))
	viper.AddConfigPath("./")
	err := viper.ReadInConfig()
	if err != nil {
		return s3Instance, fmt.Errorf("fatal error config file: %s", err)
	}

	accessKey := viper.GetString("AccessKey")
	secretKey := viper.GetString("SecretKey")

	auth, err := aws.GetAuth(strings.TrimSpace(accessKey), strings.TrimSpace(secretKey), "", time.Time{})
	if err != nil {
		return s3Instance, fmt.Errorf("could not be authorized by S3 server: %s", err)
	}

	region := aws.Region{
		S3Endpoint:       viper.GetString("S3Endpoint"),
		S3BucketEndpoint: viper.GetString("S3BucketEndpoint"),
	}

	bucketName := viper.GetString("BucketName")
	bucket := s3.New(auth, region).Bucket(bucketName)
	if bucket == nil {
		return s3Instance, fmt.Errorf("no bucket \"%s\" found at bucket endpoint %s", bucketName, region.S3BucketEndpoint)
	}
	return S3{
		configFileName: configFileName,
		bucket:         bucket,
	}, nil
}

// LoadFile fetches fileName from the configured bucket.
func (s S3) LoadFile(fileName string) (io.ReadCloser, error) {
	reader, err := s.bucket.GetReader(fileName)
	if err != nil {
		return nil, fmt.Errorf("could not read %s: %s", fileName, err)
	}
	return reader, nil
}
