package models

import (
	"path/filepath"
	"testing"

	"TransLingo/pkg/errors"
	"TransLingo/pkg/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := util.OpenDatabase("sqlite", filepath.Join(t.TempDir(), "models_test.db"))
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&User{}, &TranslationHistory{}))
	return db
}

func TestRegisterAndAuthenticate(t *testing.T) {
	db := testDB(t)

	user, err := RegisterUser(db, "alice", "s3cret")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEqual(t, "s3cret", user.PasswordHash)

	got, err := AuthenticateUser(db, "alice", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = AuthenticateUser(db, "alice", "wrong")
	assert.Equal(t, errors.CodeUnauthorized, errors.GetCode(err))

	_, err = AuthenticateUser(db, "nobody", "s3cret")
	assert.Equal(t, errors.CodeUnauthorized, errors.GetCode(err))
}

func TestRegisterDuplicateUsername(t *testing.T) {
	db := testDB(t)

	_, err := RegisterUser(db, "alice", "s3cret")
	require.NoError(t, err)

	_, err = RegisterUser(db, "alice", "other")
	assert.Equal(t, errors.CodeDuplicate, errors.GetCode(err))
}

func TestRegisterConcurrentDuplicate(t *testing.T) {
	db := testDB(t)

	_, err := RegisterUser(db, "alice", "s3cret")
	require.NoError(t, err)

	// 并发注册会绕过预检直接撞唯一索引，驱动必须把冲突翻译成
	// gorm.ErrDuplicatedKey，RegisterUser 再映射为重复错误而不是存储错误
	createErr := db.Create(&User{Username: "alice", PasswordHash: "x"}).Error
	require.Error(t, createErr)
	assert.ErrorIs(t, createErr, gorm.ErrDuplicatedKey)
}

func TestRegisterValidation(t *testing.T) {
	db := testDB(t)

	_, err := RegisterUser(db, "", "s3cret")
	assert.Equal(t, errors.CodeBadRequest, errors.GetCode(err))

	_, err = RegisterUser(db, "alice", "")
	assert.Equal(t, errors.CodeBadRequest, errors.GetCode(err))
}

func TestHistoryListNewestFirst(t *testing.T) {
	db := testDB(t)

	user, err := RegisterUser(db, "alice", "s3cret")
	require.NoError(t, err)

	for _, text := range []string{"first", "second", "third"} {
		require.NoError(t, AddHistory(db, &TranslationHistory{
			UserID:     user.ID,
			Operation:  OperationTranslate,
			SourceText: text,
			TargetLang: "zh",
		}))
	}

	entries, total, err := ListHistory(db, user.ID, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, entries, 3)
	assert.Equal(t, "third", entries[0].SourceText)
	assert.Equal(t, "first", entries[2].SourceText)

	page, _, err := ListHistory(db, user.ID, 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "second", page[0].SourceText)
}

func TestHistoryScopedToOwner(t *testing.T) {
	db := testDB(t)

	alice, _ := RegisterUser(db, "alice", "s3cret")
	bob, _ := RegisterUser(db, "bob", "s3cret")

	require.NoError(t, AddHistory(db, &TranslationHistory{UserID: alice.ID, Operation: OperationOCR, SourceText: "scan"}))

	entries, total, err := ListHistory(db, bob.ID, 0, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, entries)
}

func TestDeleteHistoryOwnerOnly(t *testing.T) {
	db := testDB(t)

	alice, _ := RegisterUser(db, "alice", "s3cret")
	bob, _ := RegisterUser(db, "bob", "s3cret")

	entry := &TranslationHistory{UserID: alice.ID, Operation: OperationTranslate, SourceText: "hello"}
	require.NoError(t, AddHistory(db, entry))

	err := DeleteHistory(db, bob.ID, entry.ID)
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))

	require.NoError(t, DeleteHistory(db, alice.ID, entry.ID))

	err = DeleteHistory(db, alice.ID, entry.ID)
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
}

func TestLangAndVoiceCatalogs(t *testing.T) {
	code, ok := LangCode("中文")
	require.True(t, ok)
	assert.Equal(t, "zh", code)

	code, ok = LangCode("en")
	require.True(t, ok)
	assert.Equal(t, "en", code)

	_, ok = LangCode("klingon")
	assert.False(t, ok)

	vt, ok := VoiceType("智瑜 (情感女声)")
	require.True(t, ok)
	assert.EqualValues(t, 101001, vt)

	name, ok := VoiceName(101050)
	require.True(t, ok)
	assert.Equal(t, "WeJack (英文男声)", name)

	_, ok = VoiceType("unknown")
	assert.False(t, ok)
}
