package errors

import (
	stderrors "errors"
	"fmt"

	"tradedesk/pkg/errors/ecode"
)

// 携带业务错误码的error，handler层通过DecodeErr还原码和提示
type withCode struct {
	code  int
	msg   string
	cause error
}

func (w *withCode) Error() string {
	if w.cause != nil {
		return fmt.Sprintf("%s: %v", w.msg, w.cause)
	}
	return w.msg
}

func (w *withCode) Unwrap() error { return w.cause }

// WithCode 创建一个带错误码的error
func WithCode(code int, format string, args ...interface{}) error {
	return &withCode{code: code, msg: fmt.Sprintf(format, args...)}
}

// Wrap 包装已有error并附加错误码
func Wrap(err error, code int, msg string) error {
	if err == nil {
		return nil
	}
	return &withCode{code: code, msg: msg, cause: err}
}

func Wrapf(err error, code int, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &withCode{code: code, msg: fmt.Sprintf(format, args...), cause: err}
}

// New 等价于标准库errors.New，方便统一导入
func New(msg string) error { return stderrors.New(msg) }

func Is(err, target error) bool { return stderrors.Is(err, target) }

// Code 取出err携带的错误码，未携带时返回Unknown
func Code(err error) int {
	if err == nil {
		return ecode.Success
	}
	var wc *withCode
	if stderrors.As(err, &wc) {
		return wc.code
	}
	return ecode.Unknown
}

// IsCode 判断err（或其包装链）是否携带指定错误码
func IsCode(err error, code int) bool {
	return Code(err) == code
}

// DecodeErr 解出错误码和提示信息，响应层使用
func DecodeErr(err error) (int, string) {
	if err == nil {
		return ecode.Success, ecode.Text(ecode.Success)
	}
	var wc *withCode
	if stderrors.As(err, &wc) {
		return wc.code, wc.msg
	}
	return ecode.Unknown, err.Error()
}
