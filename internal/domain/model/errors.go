package model

import (
	"errors"
	"fmt"
)

var (
	// ErrBadRequest リクエストの形式・値が不正
	ErrBadRequest = errors.New("bad request")
	// ErrInvalidGeometry ジオメトリが不正
	ErrInvalidGeometry = errors.New("invalid geometry")
	// ErrInvalidGrade 評価区分が 0〜3 以外
	ErrInvalidGrade = fmt.Errorf("invalid grade: %w", ErrBadRequest)
	// ErrUnreadableInput 入力ファイルが読めない・未対応形式
	ErrUnreadableInput = errors.New("invalid input file")
	// ErrInternalIO 一時ファイルの読み書き失敗
	ErrInternalIO = errors.New("internal io error")
)

// ValidationError はバリデーションエラーを表す
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Unwrap errors.Is(err, ErrBadRequest) を成立させる
func (e *ValidationError) Unwrap() error {
	return ErrBadRequest
}

// GeometryError 不正なジオメトリの位置と理由
type GeometryError struct {
	Index  int
	Reason string
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("features[%d].geometry: %s", e.Index, e.Reason)
}

func (e *GeometryError) Unwrap() error {
	return ErrInvalidGeometry
}
