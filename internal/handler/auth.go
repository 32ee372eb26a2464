package handlers

import (
	"TransLingo/internal/models"
	constants "TransLingo/pkg/constant"
	"TransLingo/pkg/logger"
	"TransLingo/pkg/middleware"
	"TransLingo/pkg/response"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type credentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type userInfoResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

// handleRegister 注册新用户
func (h *Handlers) handleRegister(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "invalid request", nil)
		return
	}

	user, err := models.RegisterUser(h.db, req.Username, req.Password)
	if err != nil {
		response.FailWithError(c, err)
		return
	}

	logger.Info("user registered", zap.Uint("user_id", user.ID), zap.String("username", user.Username))
	response.Success(c, h.t(c, "register.success"), userInfoResponse{ID: user.ID, Username: user.Username})
}

// handleLogin 登录并建立会话
func (h *Handlers) handleLogin(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "invalid request", nil)
		return
	}

	user, err := models.AuthenticateUser(h.db, req.Username, req.Password)
	if err != nil {
		response.FailWithError(c, err)
		return
	}

	session := sessions.Default(c)
	session.Set(constants.SessionUserID, user.ID)
	if err := session.Save(); err != nil {
		logger.Error("save session failed", zap.Error(err))
		response.Fail(c, "session error", nil)
		return
	}

	response.Success(c, h.t(c, "login.success"), userInfoResponse{ID: user.ID, Username: user.Username})
}

// handleLogout 销毁会话
func (h *Handlers) handleLogout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{MaxAge: -1, Path: "/"})
	if err := session.Save(); err != nil {
		logger.Error("clear session failed", zap.Error(err))
	}
	response.Success(c, h.t(c, "logout.success"), nil)
}

// handleUserInfo 当前登录用户信息
func (h *Handlers) handleUserInfo(c *gin.Context) {
	user, err := models.GetUserByID(h.db, middleware.CurrentUserID(c))
	if err != nil {
		response.FailWithError(c, err)
		return
	}
	response.Success(c, "ok", userInfoResponse{ID: user.ID, Username: user.Username})
}
