package registry

import (
	"context"
	"errors"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	terrors "github.com/go-tabular/tabular/errors"
	"github.com/go-tabular/tabular/schema"
	"github.com/go-tabular/tabular/schema/reader"
)

// S3API is the subset of the S3 client the registry uses. The concrete
// client satisfies it; tests inject fakes.
type S3API interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(ctx context.Context, in *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// S3Conf configures an S3 registry.
type S3Conf struct {
	Bucket  string // The bucket containing schema documents.
	Prefix  string // The root folder inside the bucket.
	Version string // A version sub-folder under Prefix. Defaults to "latest".
	Suffix  string // The object suffix of schema documents. Defaults to "xlsx".

	// Client is the S3 client to use. When nil, a client is constructed
	// from the remaining fields.
	Client S3API

	Region    string // AWS region for the constructed client.
	KeyID     string // Static credential key ID for the constructed client.
	Secret    string // Static credential secret for the constructed client.
	Endpoint  string // Optional custom endpoint for S3-compatible stores.
	PathStyle bool   // Use path-style addressing (required by some stores).
}

// S3 is a Registry backed by a (bucket, prefix, version) location in S3 or
// an S3-compatible object store. Keys are object paths relative to that
// location.
type S3 struct {
	conf   *S3Conf
	client S3API
	reader reader.Reader
}

// CreateS3 returns a Registry rooted at s3://bucket/prefix/version.
func CreateS3(conf *S3Conf) (*S3, error) {
	if conf.Version == "" {
		conf.Version = "latest"
	}
	if conf.Suffix == "" {
		conf.Suffix = "xlsx"
	}
	r, err := reader.ForSuffix(conf.Suffix)
	if err != nil {
		return nil, err
	}
	client := conf.Client
	if client == nil {
		opts := s3.Options{
			Region: conf.Region,
			Credentials: credentials.NewStaticCredentialsProvider(
				conf.KeyID, conf.Secret, "",
			),
			UsePathStyle: conf.PathStyle,
		}
		if conf.Endpoint != "" {
			opts.BaseEndpoint = aws.String(conf.Endpoint)
		}
		client = s3.New(opts)
	}
	return &S3{conf: conf, client: client, reader: r}, nil
}

// Root returns the object prefix all keys resolve under.
func (r *S3) Root() string {
	return path.Join(r.conf.Prefix, r.conf.Version)
}

func (r *S3) objectKey(key string) string {
	return path.Join(r.Root(), strings.TrimPrefix(key, "./"))
}

// Exists reports whether key resolves to a stored object.
func (r *S3) Exists(ctx context.Context, key string) (bool, error) {
	_, err := r.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(r.conf.Bucket),
		Key:    aws.String(r.objectKey(key)),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Keys lists the keys of all schema documents under the registry root.
func (r *S3) Keys(ctx context.Context) ([]string, error) {
	root := r.Root()
	prefix := root
	if prefix != "" {
		prefix += "/"
	}

	var keys []string
	in := &s3.ListObjectsV2Input{
		Bucket: aws.String(r.conf.Bucket),
		Prefix: aws.String(prefix),
	}
	for {
		out, err := r.client.ListObjectsV2(ctx, in)
		if err != nil {
			return nil, err
		}
		for _, obj := range out.Contents {
			key := aws.ToString(obj.Key)
			if !strings.HasSuffix(key, "."+r.conf.Suffix) {
				continue
			}
			keys = append(keys, strings.TrimPrefix(key, prefix))
		}
		if !aws.ToBool(out.IsTruncated) {
			break
		}
		in.ContinuationToken = out.NextContinuationToken
	}
	return keys, nil
}

// Get fetches and parses the schema document stored under key. The object is
// re-fetched on every call.
func (r *S3) Get(ctx context.Context, key string) (*schema.Spec, error) {
	out, err := r.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.conf.Bucket),
		Key:    aws.String(r.objectKey(key)),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, terrors.KeyNotFoundError{Key: key}
		}
		return nil, err
	}
	defer out.Body.Close()

	spec, err := r.reader.Read(out.Body)
	if err != nil {
		return nil, terrors.SchemaParseError{Path: r.objectKey(key), Err: err}
	}
	return spec, nil
}
