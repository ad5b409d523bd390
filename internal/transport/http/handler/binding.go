package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"dealspot/internal/core/apperr"
)

// bindJSON 校验失败转结构化字段错误，核心服务假定入参已过闸
func bindJSON(c *gin.Context, in any) error {
	err := c.ShouldBindJSON(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]apperr.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, apperr.FieldError{
				Field: fe.Field(),
				Msg:   "failed on " + fe.Tag(),
			})
		}
		return apperr.Validation(fields)
	}
	return apperr.BadRequest(err.Error())
}
