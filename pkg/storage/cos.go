package stores

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"TransLingo/pkg/util"

	cos "github.com/tencentyun/cos-go-sdk-v5"
)

// COSStore 腾讯云对象存储实现，与 OCR/TMT/TTS 同一账号体系
type COSStore struct {
	BucketURL string `env:"COS_BUCKET_URL"` // 如 https://audio-125000000.cos.ap-guangzhou.myqcloud.com
	SecretID  string `env:"COS_SECRET_ID"`
	SecretKey string `env:"COS_SECRET_KEY"`
	BaseURL   string `env:"COS_PUBLIC_BASE"` // CDN 域名，可选

	client *cos.Client
}

func NewCOSStore() (Store, error) {
	bucketURL := util.GetEnv("COS_BUCKET_URL")
	if bucketURL == "" {
		return nil, fmt.Errorf("COS_BUCKET_URL is required for cos store")
	}
	u, err := url.Parse(bucketURL)
	if err != nil {
		return nil, fmt.Errorf("invalid COS_BUCKET_URL: %w", err)
	}
	s := &COSStore{
		BucketURL: bucketURL,
		SecretID:  util.GetEnvDefault("COS_SECRET_ID", util.GetEnv("TENCENT_SECRET_ID")),
		SecretKey: util.GetEnvDefault("COS_SECRET_KEY", util.GetEnv("TENCENT_SECRET_KEY")),
		BaseURL:   util.GetEnv("COS_PUBLIC_BASE"),
	}
	s.client = cos.NewClient(&cos.BaseURL{BucketURL: u}, &http.Client{
		Transport: &cos.AuthorizationTransport{
			SecretID:  s.SecretID,
			SecretKey: s.SecretKey,
		},
	})
	return s, nil
}

func (s *COSStore) Read(key string) (io.ReadCloser, int64, error) {
	resp, err := s.client.Object.Get(context.Background(), key, nil)
	if err != nil {
		return nil, 0, err
	}
	return resp.Body, resp.ContentLength, nil
}

func (s *COSStore) Write(key string, r io.Reader) error {
	opt := &cos.ObjectPutOptions{
		ObjectPutHeaderOptions: &cos.ObjectPutHeaderOptions{ContentType: "audio/mpeg"},
	}
	_, err := s.client.Object.Put(context.Background(), key, r, opt)
	return err
}

func (s *COSStore) Delete(key string) error {
	_, err := s.client.Object.Delete(context.Background(), key)
	return err
}

func (s *COSStore) Exists(key string) (bool, error) {
	return s.client.Object.IsExist(context.Background(), key)
}

func (s *COSStore) PublicURL(key string) string {
	if s.BaseURL != "" {
		return strings.TrimRight(s.BaseURL, "/") + "/" + key
	}
	return strings.TrimRight(s.BucketURL, "/") + "/" + key
}
