package handlers

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"time"

	"TransLingo/internal/models"
	"TransLingo/pkg/errors"
	"TransLingo/pkg/logger"
	"TransLingo/pkg/middleware"
	"TransLingo/pkg/response"
	"TransLingo/pkg/search"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ocrRequest struct {
	ImageBase64 string `json:"imageBase64"`
}

type ocrResponse struct {
	Text string `json:"text"`
}

type translateRequest struct {
	Text   string `json:"text" binding:"required"`
	Target string `json:"target" binding:"required"` // 语言展示名或代码
	Source string `json:"source"`                    // 为空时自动检测
}

type translateResponse struct {
	Text       string `json:"text"`
	SourceLang string `json:"sourceLang,omitempty"`
	TargetLang string `json:"targetLang"`
	Cached     bool   `json:"cached"`
}

type ttsRequest struct {
	Text      string `json:"text" binding:"required"`
	Voice     string `json:"voice"`     // 音色展示名
	VoiceType int64  `json:"voiceType"` // 或直接给 VoiceType，优先级低于 Voice
}

type ttsResponse struct {
	AudioURL string `json:"audioUrl"`
	Cached   bool   `json:"cached"`
}

// handleOCR 识别图片文字。图片通过 multipart 的 image 字段或 JSON base64 提交。
func (h *Handlers) handleOCR(c *gin.Context) {
	imageBytes, err := h.readImage(c)
	if err != nil {
		response.FailWithError(c, err)
		return
	}
	if len(imageBytes) == 0 {
		response.FailWithError(c, errors.WithCode(errors.CodeBadRequest, h.t(c, "ocr.empty")))
		return
	}

	start := time.Now()
	result, err := h.pool.Run(c.Request.Context(), func(ctx context.Context) (interface{}, error) {
		return h.ocr.RecognizeText(ctx, imageBytes)
	})
	h.recordAICall("ocr", err, time.Since(start))
	if err != nil {
		response.FailWithError(c, err)
		return
	}
	text := result.(string)

	h.saveHistory(c, &models.TranslationHistory{
		UserID:     middleware.CurrentUserID(c),
		Operation:  models.OperationOCR,
		SourceText: text,
	})
	response.Success(c, "ok", ocrResponse{Text: text})
}

func (h *Handlers) readImage(c *gin.Context) ([]byte, error) {
	if file, err := c.FormFile("image"); err == nil {
		f, err := file.Open()
		if err != nil {
			return nil, errors.WrapCode(errors.CodeBadRequest, err, "open uploaded image")
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			return nil, errors.WrapCode(errors.CodeBadRequest, err, "read uploaded image")
		}
		return data, nil
	}

	var req ocrRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ImageBase64 == "" {
		return nil, nil
	}
	data, err := base64.StdEncoding.DecodeString(req.ImageBase64)
	if err != nil {
		return nil, errors.WrapCode(errors.CodeBadRequest, err, "decode image base64")
	}
	return data, nil
}

// handleTranslate 文本翻译，同一文本短期内重复请求直接命中缓存
func (h *Handlers) handleTranslate(c *gin.Context) {
	var req translateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "invalid request", nil)
		return
	}

	target, ok := models.LangCode(req.Target)
	if !ok {
		response.FailWithError(c, errors.WithCodef(errors.CodeBadRequest, "unknown target language: %s", req.Target))
		return
	}
	source := ""
	if req.Source != "" {
		if source, ok = models.LangCode(req.Source); !ok {
			response.FailWithError(c, errors.WithCodef(errors.CodeBadRequest, "unknown source language: %s", req.Source))
			return
		}
	}

	cacheKey := mtCacheKey(req.Text, source, target)
	if h.mtCache != nil {
		if v, ok := h.mtCache.Get(c.Request.Context(), cacheKey); ok {
			if translated, ok := v.(string); ok {
				if h.metrics != nil {
					h.metrics.MTCacheHit()
				}
				h.saveHistory(c, &models.TranslationHistory{
					UserID:         middleware.CurrentUserID(c),
					Operation:      models.OperationTranslate,
					SourceText:     req.Text,
					TranslatedText: translated,
					SourceLang:     source,
					TargetLang:     target,
				})
				response.Success(c, "ok", translateResponse{Text: translated, SourceLang: source, TargetLang: target, Cached: true})
				return
			}
		}
		if h.metrics != nil {
			h.metrics.MTCacheMiss()
		}
	}

	start := time.Now()
	result, err := h.pool.Run(c.Request.Context(), func(ctx context.Context) (interface{}, error) {
		return h.mt.Translate(ctx, req.Text, target, source)
	})
	h.recordAICall("translate", err, time.Since(start))
	if err != nil {
		response.FailWithError(c, err)
		return
	}
	translated := result.(string)

	if h.mtCache != nil {
		if err := h.mtCache.Set(c.Request.Context(), cacheKey, translated, 0); err != nil {
			logger.Warn("cache translation failed", zap.Error(err))
		}
	}

	h.saveHistory(c, &models.TranslationHistory{
		UserID:         middleware.CurrentUserID(c),
		Operation:      models.OperationTranslate,
		SourceText:     req.Text,
		TranslatedText: translated,
		SourceLang:     source,
		TargetLang:     target,
	})
	response.Success(c, "ok", translateResponse{Text: translated, SourceLang: source, TargetLang: target, Cached: false})
}

// handleTTS 语音合成，同一文本同一音色只调用远端一次
func (h *Handlers) handleTTS(c *gin.Context) {
	var req ttsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "invalid request", nil)
		return
	}

	voiceType := req.VoiceType
	voiceName := req.Voice
	if req.Voice != "" {
		vt, ok := models.VoiceType(req.Voice)
		if !ok {
			response.FailWithError(c, errors.WithCode(errors.CodeBadRequest, h.t(c, "tts.unknown_voice")))
			return
		}
		voiceType = vt
	} else if name, ok := models.VoiceName(voiceType); ok {
		voiceName = name
	} else {
		response.FailWithError(c, errors.WithCode(errors.CodeBadRequest, h.t(c, "tts.unknown_voice")))
		return
	}

	start := time.Now()
	result, err := h.pool.Run(c.Request.Context(), func(ctx context.Context) (interface{}, error) {
		path, hit, err := h.speech.Resolve(ctx, req.Text, voiceType)
		if err != nil {
			return nil, err
		}
		return ttsOutcome{path: path, hit: hit}, nil
	})
	if err != nil {
		h.recordAICall("tts", err, time.Since(start))
		response.FailWithError(c, err)
		return
	}
	out := result.(ttsOutcome)
	if !out.hit {
		h.recordAICall("tts", nil, time.Since(start))
	}

	audioURL, err := h.publishAudio(out.path)
	if err != nil {
		response.FailWithError(c, err)
		return
	}

	h.saveHistory(c, &models.TranslationHistory{
		UserID:     middleware.CurrentUserID(c),
		Operation:  models.OperationTTS,
		SourceText: req.Text,
		Voice:      voiceName,
		AudioPath:  audioURL,
	})
	response.Success(c, "ok", ttsResponse{AudioURL: audioURL, Cached: out.hit})
}

type ttsOutcome struct {
	path string
	hit  bool
}

// publishAudio 把缓存目录里的音频同步到产物存储并返回访问地址
func (h *Handlers) publishAudio(path string) (string, error) {
	key := filepath.Base(path)
	if h.store == nil {
		return key, nil
	}

	exists, err := h.store.Exists(key)
	if err != nil {
		return "", errors.WrapCode(errors.CodeStorage, err, "check audio artifact")
	}
	if !exists {
		f, err := os.Open(path)
		if err != nil {
			return "", errors.WrapCode(errors.CodeStorage, err, "open audio artifact")
		}
		defer f.Close()
		if err := h.store.Write(key, f); err != nil {
			return "", errors.WrapCode(errors.CodeStorage, err, "store audio artifact")
		}
	}
	return h.store.PublicURL(key), nil
}

// handleOptions 客户端下拉框用的语言与音色目录
func (h *Handlers) handleOptions(c *gin.Context) {
	response.Success(c, "ok", gin.H{
		"languages": models.Languages(),
		"voices":    models.Voices(),
	})
}

func (h *Handlers) recordAICall(operation string, err error, d time.Duration) {
	if h.metrics != nil {
		h.metrics.RecordAICall(operation, err, d)
	}
}

// saveHistory 只在操作成功后调用；历史写失败不影响响应
func (h *Handlers) saveHistory(c *gin.Context, entry *models.TranslationHistory) {
	if err := models.AddHistory(h.db, entry); err != nil {
		logger.Warn("save history failed", zap.Error(err))
		return
	}
	if h.index != nil {
		doc := search.HistoryDoc{
			ID:             search.DocID(entry.ID),
			UserID:         entry.UserID,
			Operation:      entry.Operation,
			SourceText:     entry.SourceText,
			TranslatedText: entry.TranslatedText,
			SourceLang:     entry.SourceLang,
			TargetLang:     entry.TargetLang,
			CreatedAt:      entry.CreatedAt,
		}
		if err := h.index.Index(c.Request.Context(), doc); err != nil {
			logger.Warn("index history failed", zap.Error(err))
		}
	}
}

func mtCacheKey(text, source, target string) string {
	sum := sha256.Sum256([]byte(source + "\x00" + target + "\x00" + text))
	return "mt:" + hex.EncodeToString(sum[:])
}
