package search

import (
	"context"
	"errors"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
)

var ErrClosed = errors.New("search index closed")

// HistoryDoc 历史记录索引文档
type HistoryDoc struct {
	ID             string    `json:"id"`
	UserID         uint      `json:"user_id"`
	Operation      string    `json:"operation"` // ocr / translate / tts
	SourceText     string    `json:"source_text"`
	TranslatedText string    `json:"translated_text"`
	SourceLang     string    `json:"source_lang"`
	TargetLang     string    `json:"target_lang"`
	CreatedAt      time.Time `json:"created_at"`
}

// Hit 单条搜索命中
type Hit struct {
	ID        string              `json:"id"`
	Score     float64             `json:"score"`
	Fragments map[string][]string `json:"fragments,omitempty"`
}

// Result 搜索结果
type Result struct {
	Total uint64        `json:"total"`
	Took  time.Duration `json:"took"`
	Hits  []Hit         `json:"hits"`
}

// HistoryIndex 基于 bleve 的历史记录全文索引
type HistoryIndex struct {
	index bleve.Index

	mu     sync.RWMutex
	closed bool
}

func historyMapping() mapping.IndexMapping {
	m := bleve.NewIndexMapping()

	doc := bleve.NewDocumentMapping()

	text := bleve.NewTextFieldMapping()
	text.Store = true
	doc.AddFieldMappingsAt("source_text", text)
	doc.AddFieldMappingsAt("translated_text", text)

	keyword := bleve.NewKeywordFieldMapping()
	doc.AddFieldMappingsAt("operation", keyword)
	doc.AddFieldMappingsAt("source_lang", keyword)
	doc.AddFieldMappingsAt("target_lang", keyword)

	num := bleve.NewNumericFieldMapping()
	doc.AddFieldMappingsAt("user_id", num)

	date := bleve.NewDateTimeFieldMapping()
	doc.AddFieldMappingsAt("created_at", date)

	m.DefaultMapping = doc
	return m
}

// Open 打开或创建索引文件
func Open(path string) (*HistoryIndex, error) {
	var idx bleve.Index
	if _, err := os.Stat(path); err == nil {
		idx, err = bleve.Open(path)
		if err != nil {
			return nil, err
		}
	} else if os.IsNotExist(err) {
		idx, err = bleve.New(path, historyMapping())
		if err != nil {
			return nil, err
		}
	} else {
		return nil, err
	}
	return &HistoryIndex{index: idx}, nil
}

// OpenMemOnly 内存索引，供测试使用
func OpenMemOnly() (*HistoryIndex, error) {
	idx, err := bleve.NewMemOnly(historyMapping())
	if err != nil {
		return nil, err
	}
	return &HistoryIndex{index: idx}, nil
}

func (h *HistoryIndex) guard() error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		return ErrClosed
	}
	return nil
}

func (h *HistoryIndex) Index(ctx context.Context, doc HistoryDoc) error {
	if err := h.guard(); err != nil {
		return err
	}
	return h.index.Index(doc.ID, doc)
}

func (h *HistoryIndex) Delete(ctx context.Context, id string) error {
	if err := h.guard(); err != nil {
		return err
	}
	return h.index.Delete(id)
}

// Search 在指定用户的历史里做全文检索，按相关度降序
func (h *HistoryIndex) Search(ctx context.Context, userID uint, keyword string, from, size int) (Result, error) {
	if err := h.guard(); err != nil {
		return Result{}, err
	}

	match := bleve.NewMatchQuery(keyword)
	match.SetField("source_text")
	matchTranslated := bleve.NewMatchQuery(keyword)
	matchTranslated.SetField("translated_text")
	text := bleve.NewDisjunctionQuery(match, matchTranslated)

	uid := float64(userID)
	truthy := true
	owner := bleve.NewNumericRangeInclusiveQuery(&uid, &uid, &truthy, &truthy)
	owner.SetField("user_id")

	q := bleve.NewConjunctionQuery(owner, text)

	sr := bleve.NewSearchRequestOptions(q, normalizeSize(size), normalizeFrom(from), false)
	sr.Highlight = bleve.NewHighlightWithStyle("html")
	sr.Fields = []string{"source_text", "translated_text"}

	res, err := h.index.Search(sr)
	if err != nil {
		return Result{}, err
	}

	out := Result{
		Total: res.Total,
		Took:  res.Took,
		Hits:  make([]Hit, 0, len(res.Hits)),
	}
	for _, hit := range res.Hits {
		out.Hits = append(out.Hits, Hit{
			ID:        hit.ID,
			Score:     hit.Score,
			Fragments: hit.Fragments,
		})
	}
	return out, nil
}

func (h *HistoryIndex) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}
	h.closed = true
	return h.index.Close()
}

// DocID 历史行主键到索引文档 ID
func DocID(id uint) string { return strconv.FormatUint(uint64(id), 10) }

func normalizeSize(size int) int {
	if size <= 0 {
		return 10
	}
	return size
}

func normalizeFrom(from int) int {
	if from < 0 {
		return 0
	}
	return from
}
