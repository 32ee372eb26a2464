package tencent

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"TransLingo/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient 构造指向本地 httptest 服务的客户端
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient("test-id", "test-key", "ap-guangzhou", nil, WithEndpoint(srv.URL))
}

func TestRecognizeText(t *testing.T) {
	var gotAction string
	var gotReq GeneralAccurateOCRRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAction = r.Header.Get("X-TC-Action")
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"Response": map[string]interface{}{
				"RequestId": "req-1",
				"TextDetections": []map[string]interface{}{
					{"DetectedText": "第一行"},
					{"DetectedText": "second line"},
					{"DetectedText": "第三行"},
				},
			},
		})
	})

	text, err := client.RecognizeText(context.Background(), []byte("fake-image"))
	require.NoError(t, err)

	// 检测行按服务返回顺序以换行拼接
	assert.Equal(t, "第一行\nsecond line\n第三行", text)
	assert.Equal(t, "GeneralAccurateOCR", gotAction)

	decoded, err := base64.StdEncoding.DecodeString(gotReq.ImageBase64)
	require.NoError(t, err)
	assert.Equal(t, "fake-image", string(decoded))
}

func TestRecognizeTextRemoteError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"Response": map[string]interface{}{
				"RequestId": "req-2",
				"Error": map[string]interface{}{
					"Code":    "FailedOperation.ImageDecodeFailed",
					"Message": "image decode failed",
				},
			},
		})
	})

	_, err := client.RecognizeText(context.Background(), []byte("bad"))
	require.Error(t, err)

	// 远端诊断信息必须保留在错误值里，而不是 panic
	assert.Equal(t, errors.CodeRemoteService, errors.GetCode(err))
	assert.Contains(t, err.Error(), "FailedOperation.ImageDecodeFailed")
	assert.Contains(t, err.Error(), "image decode failed")
}

func TestTranslate(t *testing.T) {
	var gotReq TextTranslateRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"Response": map[string]interface{}{
				"RequestId":  "req-3",
				"TargetText": "你好",
			},
		})
	})

	out, err := client.Translate(context.Background(), "hello", "zh", "")
	require.NoError(t, err)
	assert.Equal(t, "你好", out)

	// source 为空时默认 auto
	assert.Equal(t, "auto", gotReq.Source)
	assert.Equal(t, "zh", gotReq.Target)
	assert.Equal(t, "hello", gotReq.SourceText)
	assert.EqualValues(t, 0, gotReq.ProjectId)
}

func TestSynthesize(t *testing.T) {
	audio := []byte{0xFF, 0xFB, 0x90, 0x64} // mp3 帧头开头
	var gotReq TextToVoiceRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"Response": map[string]interface{}{
				"RequestId": "req-4",
				"Audio":     base64.StdEncoding.EncodeToString(audio),
			},
		})
	})

	got, err := client.Synthesize(context.Background(), "你好世界", 101001)
	require.NoError(t, err)
	assert.Equal(t, audio, got)

	assert.EqualValues(t, 101001, gotReq.VoiceType)
	assert.EqualValues(t, 1, gotReq.ModelType)
	assert.Equal(t, "mp3", gotReq.Codec)
	assert.NotEmpty(t, gotReq.SessionId)
}

func TestSynthesizeLongTextNotTruncated(t *testing.T) {
	long := make([]byte, 0, 500)
	for i := 0; i < 500; i++ {
		long = append(long, 'a')
	}
	var gotReq TextToVoiceRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"Response": map[string]interface{}{"RequestId": "req-5", "Audio": ""},
		})
	})

	_, err := client.Synthesize(context.Background(), string(long), 101002)
	require.NoError(t, err)
	assert.Len(t, gotReq.Text, 500)
}

func TestSignatureHeader(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		assert.Contains(t, auth, "TC3-HMAC-SHA256 Credential=test-id/")
		assert.Contains(t, auth, "/tmt/tc3_request")
		assert.Contains(t, auth, "SignedHeaders=content-type;host")
		assert.Contains(t, auth, "Signature=")
		assert.NotEmpty(t, r.Header.Get("X-TC-Timestamp"))
		assert.Equal(t, "ap-guangzhou", r.Header.Get("X-TC-Region"))
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"Response": map[string]interface{}{"RequestId": "req-6", "TargetText": "ok"},
		})
	})

	_, err := client.Translate(context.Background(), "hi", "en", "auto")
	require.NoError(t, err)
}
