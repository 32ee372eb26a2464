package tencent

import (
	"context"
	"encoding/base64"
	"strings"

	"TransLingo/pkg/errors"
)

const (
	ocrService = "ocr"
	ocrVersion = "2018-11-19"
)

// GeneralAccurateOCRRequest 高精度通用文字识别请求
type GeneralAccurateOCRRequest struct {
	ImageBase64 string `json:"ImageBase64"`
}

// TextDetection 单个文本检测结果
type TextDetection struct {
	DetectedText string `json:"DetectedText"`
	Confidence   int64  `json:"Confidence"`
}

// GeneralAccurateOCRResponse 高精度通用文字识别响应
type GeneralAccurateOCRResponse struct {
	TextDetections []TextDetection `json:"TextDetections"`
}

// RecognizeText 识别图片中的文字，按服务返回顺序以换行拼接所有检测行。
// 图片读取是调用方的职责，这里只接收原始字节。
func (c *Client) RecognizeText(ctx context.Context, imageBytes []byte) (string, error) {
	req := GeneralAccurateOCRRequest{
		ImageBase64: base64.StdEncoding.EncodeToString(imageBytes),
	}
	var resp GeneralAccurateOCRResponse
	if err := c.do(ctx, ocrService, ocrVersion, "GeneralAccurateOCR", req, &resp); err != nil {
		return "", errors.WrapCode(errors.CodeRemoteService, err, "ocr recognize failed")
	}

	lines := make([]string, 0, len(resp.TextDetections))
	for _, detection := range resp.TextDetections {
		lines = append(lines, detection.DetectedText)
	}
	return strings.Join(lines, "\n"), nil
}
