package response

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"dealspot/internal/core/apperr"
)

type Resp struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data"`
}

// New 构造函数（保证 data 不为 null）
func New(code int, msg string, data interface{}) Resp {
	if data == nil {
		data = struct{}{}
	}
	return Resp{Code: code, Msg: msg, Data: data}
}

// OK 200 成功响应
func OK(c *gin.Context, data interface{}) {
	c.JSON(200, New(CodeOK, CodeMsgMap[CodeOK], data))
}

// Created 201 创建成功
func Created(c *gin.Context, data interface{}) {
	c.JSON(201, New(CodeOK, CodeMsgMap[CodeOK], data))
}

// Error 失败响应，HTTP 状态随业务码
func Error(c *gin.Context, code int, customMsg string) {
	msg := CodeMsgMap[code]
	if customMsg != "" {
		msg = customMsg
	}
	c.JSON(HTTPStatus(code), New(code, msg, struct{}{}))
}

// Fail 统一错误出口：*apperr.E 按码映射，校验错误带字段明细，
// 其余一律 500，内部错误只进日志不出响应
func Fail(c *gin.Context, l *zap.Logger, err error) {
	ae, ok := apperr.As(err)
	if !ok {
		l.Error("unhandled error", zap.String("path", c.FullPath()), zap.Error(err))
		Error(c, CodeServerError, "")
		return
	}
	if ae.Code == apperr.CodeInternal {
		l.Error(ae.Msg, zap.String("path", c.FullPath()), zap.Error(ae.Err))
		Error(c, CodeServerError, "")
		return
	}
	if len(ae.Fields) > 0 {
		c.JSON(HTTPStatus(ae.Code), New(ae.Code, ae.Msg, gin.H{"errors": ae.Fields}))
		return
	}
	Error(c, ae.Code, ae.Msg)
}
