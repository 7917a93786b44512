package ingestion

import (
	"context"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// maxS3Keys is the page size for list requests.
const maxS3Keys = 1000

// S3Source lists cost export objects under a bucket prefix.
// Pattern is matched against the base name of each key.
type S3Source struct {
	s3API   s3iface.S3API
	bucket  string
	prefix  string
	pattern string
}

// NewS3Source creates an S3Source using the default credential chain.
func NewS3Source(region, bucket, prefix, pattern string) *S3Source {
	awsSession := session.Must(session.NewSession())
	client := s3.New(awsSession, aws.NewConfig().WithRegion(region))
	return newS3SourceWithClient(client, bucket, prefix, pattern)
}

func newS3SourceWithClient(client s3iface.S3API, bucket, prefix, pattern string) *S3Source {
	return &S3Source{
		s3API:   client,
		bucket:  bucket,
		prefix:  prefix,
		pattern: pattern,
	}
}

func (s *S3Source) List(ctx context.Context) ([]string, error) {
	var (
		keys     []string
		matchErr error
	)
	pageFn := func(out *s3.ListObjectsV2Output, lastPage bool) bool {
		for _, obj := range out.Contents {
			key := aws.StringValue(obj.Key)
			if strings.HasSuffix(key, "/") {
				continue
			}
			ok, err := path.Match(s.pattern, path.Base(key))
			if err != nil {
				matchErr = fmt.Errorf("match %q: %w", s.pattern, err)
				return false
			}
			if ok {
				keys = append(keys, key)
			}
		}
		return true
	}

	err := s.s3API.ListObjectsV2PagesWithContext(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(s.bucket),
		Prefix:  aws.String(s.prefix),
		MaxKeys: aws.Int64(maxS3Keys),
	}, pageFn)
	if err != nil {
		return nil, fmt.Errorf("list s3://%s/%s: %w", s.bucket, s.prefix, err)
	}
	if matchErr != nil {
		return nil, matchErr
	}

	sort.Strings(keys)
	return keys, nil
}

func (s *S3Source) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	obj, err := s.s3API.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("get s3://%s/%s: %w", s.bucket, key, err)
	}
	return obj.Body, nil
}

func (s *S3Source) String() string {
	return fmt.Sprintf("s3://%s/%s (%s)", s.bucket, s.prefix, s.pattern)
}
