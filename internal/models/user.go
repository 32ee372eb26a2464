package models

import (
	stderrors "errors"
	"time"

	"TransLingo/pkg/errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"size:64;uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"size:128;not null"`
	CreatedAt    time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// RegisterUser 注册新用户，密码使用 bcrypt 存储
func RegisterUser(db *gorm.DB, username, password string) (*User, error) {
	if username == "" || password == "" {
		return nil, errors.WithCode(errors.CodeBadRequest, "username and password required")
	}

	var count int64
	if err := db.Model(&User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, errors.WrapCode(errors.CodeStorage, err, "query user")
	}
	if count > 0 {
		return nil, errors.WithCode(errors.CodeDuplicate, "username already taken")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(err, "hash password")
	}

	user := &User{Username: username, PasswordHash: string(hash)}
	if err := db.Create(user).Error; err != nil {
		// 并发注册可能绕过上面的预检，直到唯一索引才暴露冲突
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.WithCode(errors.CodeDuplicate, "username already taken")
		}
		return nil, errors.WrapCode(errors.CodeStorage, err, "create user")
	}
	return user, nil
}

// AuthenticateUser 校验用户名密码，失败统一返回未授权错误
func AuthenticateUser(db *gorm.DB, username, password string) (*User, error) {
	var user User
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.WithCode(errors.CodeUnauthorized, "invalid username or password")
		}
		return nil, errors.WrapCode(errors.CodeStorage, err, "query user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errors.WithCode(errors.CodeUnauthorized, "invalid username or password")
	}
	return &user, nil
}

// GetUserByID 按主键查用户
func GetUserByID(db *gorm.DB, id uint) (*User, error) {
	var user User
	if err := db.First(&user, id).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.WithCode(errors.CodeNotFound, "user not found")
		}
		return nil, errors.WrapCode(errors.CodeStorage, err, "query user")
	}
	return &user, nil
}
