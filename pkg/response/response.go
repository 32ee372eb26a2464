package response

import (
	"net/http"

	"TransLingo/pkg/errors"

	"github.com/gin-gonic/gin"
)

// Body 统一响应结构
type Body struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success 成功响应
func Success(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Body{Code: 0, Message: message, Data: data})
}

// Fail 失败响应（HTTP 200，业务码非 0）
func Fail(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Body{Code: errors.CodeInternal, Message: message, Data: data})
}

// FailWithError 按错误码映射 HTTP 状态
func FailWithError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.CodeBadRequest:
		status = http.StatusBadRequest
	case errors.CodeUnauthorized:
		status = http.StatusUnauthorized
	case errors.CodeNotFound:
		status = http.StatusNotFound
	case errors.CodeDuplicate:
		status = http.StatusConflict
	case errors.CodeRemoteService:
		status = http.StatusBadGateway
	}
	if code == 0 {
		code = errors.CodeInternal
	}
	c.JSON(status, Body{Code: code, Message: errors.GetMessage(err)})
}
