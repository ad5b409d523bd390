package apperr

import "errors"

// 业务错误码，直接沿用 HTTP 语义
const (
	CodeBadRequest   = 400
	CodeUnauthorized = 401
	CodeForbidden    = 403
	CodeNotFound     = 404
	CodeInternal     = 500
)

// FieldError 校验失败的结构化字段错误
type FieldError struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

// E 统一应用错误：Code 决定 HTTP 状态，Err 只进日志不出响应
type E struct {
	Code   int
	Msg    string
	Err    error
	Fields []FieldError
}

func (e *E) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "app error"
}

func (e *E) Unwrap() error { return e.Err }

func BadRequest(msg string) error   { return &E{Code: CodeBadRequest, Msg: msg} }
func Unauthorized(msg string) error { return &E{Code: CodeUnauthorized, Msg: msg} }
func Forbidden(msg string) error    { return &E{Code: CodeForbidden, Msg: msg} }
func NotFound(msg string) error     { return &E{Code: CodeNotFound, Msg: msg} }
func Internal(msg string, err error) error {
	return &E{Code: CodeInternal, Msg: msg, Err: err}
}

// Validation 带字段明细的 400
func Validation(fields []FieldError) error {
	return &E{Code: CodeBadRequest, Msg: "validation failed", Fields: fields}
}

// As 取出 *E，不是 *E 的一律按 Internal 处理
func As(err error) (*E, bool) {
	var ae *E
	ok := errors.As(err, &ae)
	return ae, ok
}

func IsCode(err error, code int) bool {
	if ae, ok := As(err); ok {
		return ae.Code == code
	}
	return false
}
