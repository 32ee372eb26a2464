package tencent

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
)

// Client 腾讯云 API 客户端：OCR、机器翻译 (TMT)、语音合成 (TTS) 共用
// 一套 TC3-HMAC-SHA256 签名与调用逻辑。
type Client struct {
	secretID  string
	secretKey string
	region    string

	httpClient *http.Client
	logger     *logrus.Logger

	// endpoint 覆盖所有服务的基础地址（形如 http://127.0.0.1:8080），测试用；
	// 为空时按服务域名 https://<service>.tencentcloudapi.com 访问。
	endpoint string
}

// Option 客户端可选配置
type Option func(*Client)

// WithHTTPClient 替换底层 HTTP 客户端
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithEndpoint 覆盖服务地址（测试用）
func WithEndpoint(endpoint string) Option {
	return func(c *Client) { c.endpoint = endpoint }
}

// NewClient 创建腾讯云客户端
func NewClient(secretID, secretKey, region string, logger *logrus.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = logrus.New()
	}
	c := &Client{
		secretID:   secretID,
		secretKey:  secretKey,
		region:     region,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIError 腾讯云返回的业务错误
type APIError struct {
	Code      string `json:"Code"`
	Message   string `json:"Message"`
	RequestID string `json:"-"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("tencent api error: code=%s message=%s requestId=%s", e.Code, e.Message, e.RequestID)
}

// responseEnvelope 所有腾讯云接口统一的响应外层
type responseEnvelope struct {
	Response json.RawMessage `json:"Response"`
}

type responseMeta struct {
	RequestID string    `json:"RequestId"`
	Error     *APIError `json:"Error"`
}

// do 执行一次腾讯云 API 调用：序列化请求、TC3 签名、解析统一响应外层。
// 单次阻塞调用，不做重试。
func (c *Client) do(ctx context.Context, service, version, action string, payload, result interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	host := service + ".tencentcloudapi.com"
	url := "https://" + host
	if c.endpoint != "" {
		url = c.endpoint
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	timestamp := time.Now().Unix()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Host", host)
	req.Header.Set("X-TC-Action", action)
	req.Header.Set("X-TC-Version", version)
	req.Header.Set("X-TC-Region", c.region)
	req.Header.Set("X-TC-Timestamp", strconv.FormatInt(timestamp, 10))
	req.Header.Set("Authorization", c.sign(service, host, action, body, timestamp))

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var envelope responseEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	var meta responseMeta
	if err := json.Unmarshal(envelope.Response, &meta); err != nil {
		return fmt.Errorf("failed to decode response meta: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"action":    action,
		"requestId": meta.RequestID,
		"cost":      time.Since(start).String(),
	}).Debug("tencent api call finished")

	if meta.Error != nil {
		meta.Error.RequestID = meta.RequestID
		return meta.Error
	}
	if result != nil {
		if err := json.Unmarshal(envelope.Response, result); err != nil {
			return fmt.Errorf("failed to decode %s response: %w", action, err)
		}
	}
	return nil
}

// sign 计算 TC3-HMAC-SHA256 签名，返回 Authorization 头
func (c *Client) sign(service, host, action string, payload []byte, timestamp int64) string {
	const algorithm = "TC3-HMAC-SHA256"
	date := time.Unix(timestamp, 0).UTC().Format("2006-01-02")

	// 1. 拼接规范请求串
	canonicalHeaders := "content-type:application/json\nhost:" + host + "\n"
	signedHeaders := "content-type;host"
	hashedPayload := sha256hex(payload)
	canonicalRequest := "POST\n/\n\n" + canonicalHeaders + "\n" + signedHeaders + "\n" + hashedPayload

	// 2. 拼接待签名字符串
	credentialScope := date + "/" + service + "/tc3_request"
	stringToSign := algorithm + "\n" +
		strconv.FormatInt(timestamp, 10) + "\n" +
		credentialScope + "\n" +
		sha256hex([]byte(canonicalRequest))

	// 3. 计算签名
	secretDate := hmacSHA256([]byte("TC3"+c.secretKey), date)
	secretService := hmacSHA256(secretDate, service)
	secretSigning := hmacSHA256(secretService, "tc3_request")
	signature := hex.EncodeToString(hmacSHA256(secretSigning, stringToSign))

	return algorithm + " Credential=" + c.secretID + "/" + credentialScope +
		", SignedHeaders=" + signedHeaders + ", Signature=" + signature
}

func sha256hex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func hmacSHA256(key []byte, data string) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(data))
	return mac.Sum(nil)
}
