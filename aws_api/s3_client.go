package aws_api

import (
	"bytes"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"

	"github.com/AlexeyBeley/go_ranker/common_utils"
)

type S3API struct {
	svc         s3iface.S3API
	region      *string
	profileName *string
}

func S3APINew(region *string, profileName *string) *S3API {
	if profileName == nil {
		profileName = common_utils.StrPTR("default")
	}

	sess := session.Must(session.NewSessionWithOptions(session.Options{
		SharedConfigState: session.SharedConfigEnable,
		Config:            aws.Config{Region: region},
		Profile:           *profileName,
	}))

	lg.Infof("AWS profile: %s\n", *profileName)
	return S3APIFromClient(s3.New(sess), region, profileName)
}

// S3APIFromClient wraps an existing client, e.g. one pointed at a local endpoint.
func S3APIFromClient(svc s3iface.S3API, region *string, profileName *string) *S3API {
	return &S3API{svc: svc, region: region, profileName: profileName}
}

// PutRanking uploads a serialized ranking as a JSON object.
func (api *S3API) PutRanking(bucket, key string, data []byte) error {
	_, err := api.svc.PutObject(&s3.PutObjectInput{
		Bucket:      common_utils.StrPTR(bucket),
		Key:         common_utils.StrPTR(key),
		Body:        bytes.NewReader(data),
		ContentType: common_utils.StrPTR("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload s3://%s/%s: %w", bucket, key, err)
	}
	lg.Infof("Uploaded ranking to s3://%s/%s (%d bytes)", bucket, key, len(data))
	return nil
}

func (api *S3API) GetRanking(bucket, key string) ([]byte, error) {
	output, err := api.svc.GetObject(&s3.GetObjectInput{
		Bucket: common_utils.StrPTR(bucket),
		Key:    common_utils.StrPTR(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch s3://%s/%s: %w", bucket, key, err)
	}
	defer output.Body.Close()

	data, err := io.ReadAll(output.Body)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: s3://%s/%s", ErrEmptyObject, bucket, key)
	}
	return data, nil
}

// ListRankings returns the object keys under prefix.
func (api *S3API) ListRankings(bucket, prefix string) ([]string, error) {
	keys := []string{}
	err := api.svc.ListObjectsV2Pages(&s3.ListObjectsV2Input{
		Bucket: common_utils.StrPTR(bucket),
		Prefix: common_utils.StrPTR(prefix),
	}, func(page *s3.ListObjectsV2Output, lastPage bool) bool {
		for _, object := range page.Contents {
			keys = append(keys, aws.StringValue(object.Key))
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}
