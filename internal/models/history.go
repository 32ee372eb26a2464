package models

import (
	stderrors "errors"
	"time"

	"TransLingo/pkg/errors"

	"gorm.io/gorm"
)

// 历史记录的操作类型
const (
	OperationOCR       = "ocr"
	OperationTranslate = "translate"
	OperationTTS       = "tts"
)

type TranslationHistory struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	UserID         uint      `json:"userId" gorm:"index;not null"`
	Operation      string    `json:"operation" gorm:"size:32;not null"` // ocr / translate / tts
	SourceText     string    `json:"sourceText" gorm:"type:text"`
	TranslatedText string    `json:"translatedText" gorm:"type:text"`
	SourceLang     string    `json:"sourceLang" gorm:"size:16"`
	TargetLang     string    `json:"targetLang" gorm:"size:16"`
	Voice          string    `json:"voice,omitempty" gorm:"size:64"`      // TTS 使用的音色名
	AudioPath      string    `json:"audioPath,omitempty" gorm:"size:512"` // TTS 生成的音频路径
	CreatedAt      time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

// AddHistory 追加一条历史记录
func AddHistory(db *gorm.DB, entry *TranslationHistory) error {
	if entry.UserID == 0 {
		return errors.WithCode(errors.CodeBadRequest, "history entry requires a user")
	}
	if err := db.Create(entry).Error; err != nil {
		return errors.WrapCode(errors.CodeStorage, err, "create history")
	}
	return nil
}

// ListHistory 按用户查询历史，按时间倒序分页
func ListHistory(db *gorm.DB, userID uint, offset, limit int) ([]TranslationHistory, int64, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var total int64
	if err := db.Model(&TranslationHistory{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, errors.WrapCode(errors.CodeStorage, err, "count history")
	}

	var entries []TranslationHistory
	err := db.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, 0, errors.WrapCode(errors.CodeStorage, err, "list history")
	}
	return entries, total, nil
}

// GetHistory 按主键查历史记录，owner 校验由调用方负责
func GetHistory(db *gorm.DB, id uint) (*TranslationHistory, error) {
	var entry TranslationHistory
	if err := db.First(&entry, id).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.WithCode(errors.CodeNotFound, "history entry not found")
		}
		return nil, errors.WrapCode(errors.CodeStorage, err, "query history")
	}
	return &entry, nil
}

// DeleteHistory 删除指定用户的一条历史记录，不存在或不属于该用户时返回 NotFound
func DeleteHistory(db *gorm.DB, userID, id uint) error {
	res := db.Where("id = ? AND user_id = ?", id, userID).Delete(&TranslationHistory{})
	if res.Error != nil {
		return errors.WrapCode(errors.CodeStorage, res.Error, "delete history")
	}
	if res.RowsAffected == 0 {
		return errors.WithCode(errors.CodeNotFound, "history entry not found")
	}
	return nil
}
