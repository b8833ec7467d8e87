// Package media materializes remote or uploaded media as local temp files
// for the analysis pipelines. Supports http(s) URLs, s3:// references, and
// multipart upload bodies.
package media

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"

	"github.com/chirp-app/chirp-ai/internal/config"
	"github.com/chirp-app/chirp-ai/internal/metrics"
)

// Fetcher downloads media to temporary files.
type Fetcher struct {
	client   *http.Client
	s3client *s3.Client
	maxBytes int64
	log      zerolog.Logger
}

// NewFetcher creates a media fetcher. s3:// URLs work only when cfg.S3 is
// configured; otherwise they are rejected at fetch time.
func NewFetcher(cfg *config.Config, log zerolog.Logger) (*Fetcher, error) {
	f := &Fetcher{
		client:   &http.Client{Timeout: cfg.FetchTimeout},
		maxBytes: cfg.MaxFetchBytes,
		log:      log.With().Str("component", "media-fetcher").Logger(),
	}

	if cfg.S3.Enabled() {
		opts := []func(*awsconfig.LoadOptions) error{
			awsconfig.WithRegion(cfg.S3.Region),
			awsconfig.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(cfg.S3.AccessKey, cfg.S3.SecretKey, ""),
			),
		}

		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
		if err != nil {
			return nil, fmt.Errorf("aws config: %w", err)
		}

		var s3Opts []func(*s3.Options)
		if cfg.S3.Endpoint != "" {
			s3Opts = append(s3Opts, func(o *s3.Options) {
				o.BaseEndpoint = aws.String(cfg.S3.Endpoint)
				o.UsePathStyle = true
			})
		}
		f.s3client = s3.NewFromConfig(awsCfg, s3Opts...)
	}

	return f, nil
}

// Fetch downloads the media at rawURL to a temp file and returns its path
// with a cleanup that removes it. Supported schemes: http, https, s3.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, func(), error) {
	noop := func() {}

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", noop, fmt.Errorf("parse media url: %w", err)
	}

	switch u.Scheme {
	case "http", "https":
		return f.fetchHTTP(ctx, rawURL)
	case "s3":
		return f.fetchS3(ctx, u.Host, strings.TrimPrefix(u.Path, "/"))
	default:
		return "", noop, fmt.Errorf("unsupported media url scheme %q", u.Scheme)
	}
}

func (f *Fetcher) fetchHTTP(ctx context.Context, rawURL string) (string, func(), error) {
	noop := func() {}
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", noop, fmt.Errorf("create request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", noop, fmt.Errorf("fetch media: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", noop, fmt.Errorf("fetch media: status %d from %s", resp.StatusCode, rawURL)
	}

	path, cleanup, n, err := f.spool(resp.Body, suffixFor(rawURL))
	if err != nil {
		return "", noop, err
	}

	f.log.Debug().
		Str("url", rawURL).
		Int64("bytes", n).
		Dur("elapsed", time.Since(start)).
		Msg("media fetched")
	return path, cleanup, nil
}

func (f *Fetcher) fetchS3(ctx context.Context, bucket, key string) (string, func(), error) {
	noop := func() {}

	if f.s3client == nil {
		return "", noop, fmt.Errorf("s3 media url but s3 access is not configured")
	}
	if bucket == "" || key == "" {
		return "", noop, fmt.Errorf("s3 media url needs s3://bucket/key form")
	}

	out, err := f.s3client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	})
	if err != nil {
		return "", noop, fmt.Errorf("s3 get %s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()

	path, cleanup, n, err := f.spool(out.Body, suffixFor(key))
	if err != nil {
		return "", noop, err
	}

	f.log.Debug().
		Str("bucket", bucket).
		Str("key", key).
		Int64("bytes", n).
		Msg("media fetched from s3")
	return path, cleanup, nil
}

// SaveUpload spools an upload body (e.g. a multipart file part) to a temp
// file, applying the same size cap as remote fetches.
func (f *Fetcher) SaveUpload(r io.Reader, filename string) (string, func(), error) {
	path, cleanup, _, err := f.spool(r, suffixFor(filename))
	if err != nil {
		return "", func() {}, err
	}
	return path, cleanup, nil
}

// spool copies r to a new temp file, enforcing the byte cap.
func (f *Fetcher) spool(r io.Reader, suffix string) (string, func(), int64, error) {
	tmp, err := os.CreateTemp("", "chirp-ai-media-*"+suffix)
	if err != nil {
		return "", nil, 0, fmt.Errorf("create temp file: %w", err)
	}

	n, err := io.Copy(tmp, io.LimitReader(r, f.maxBytes+1))
	tmp.Close()
	if err != nil {
		os.Remove(tmp.Name())
		return "", nil, 0, fmt.Errorf("spool media: %w", err)
	}
	if n > f.maxBytes {
		os.Remove(tmp.Name())
		return "", nil, 0, fmt.Errorf("media exceeds %d byte limit", f.maxBytes)
	}

	metrics.MediaFetchBytes.Observe(float64(n))
	return tmp.Name(), func() { os.Remove(tmp.Name()) }, n, nil
}

// suffixFor preserves a recognizable media extension on the temp file so
// sox and ffmpeg can sniff the container format.
func suffixFor(name string) string {
	ext := strings.ToLower(path.Ext(strings.SplitN(name, "?", 2)[0]))
	switch ext {
	case ".wav", ".mp3", ".m4a", ".ogg", ".flac", ".webm", ".mp4", ".mov", ".avi", ".mkv":
		return ext
	}
	return ".bin"
}
