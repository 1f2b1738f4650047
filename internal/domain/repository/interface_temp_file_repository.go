package repository

import (
	"context"
	"io"
)

// TempFileRepository はリクエスト単位の一時ファイル領域を払い出すリポジトリインターフェース
type TempFileRepository interface {
	// NewSession は1リクエスト分の一時ファイルセッションを開始する
	NewSession() TempFileSession
}

// TempFileSession はセッション中に作成した一時ファイルを追跡し、Closeでまとめて削除する
type TempFileSession interface {
	// Stage は受信データをアップロード領域に一意な名前で保存し、そのパスを返す
	Stage(ctx context.Context, r io.Reader, ext string) (string, error)

	// Reserve は出力領域に一意な名前の空ファイルを作成し、そのパスを返す
	Reserve(ext string) (string, error)

	// ReserveGroup は出力領域に同じ名前で拡張子違いの空ファイル群を作成し、拡張子を除いたパスを返す
	ReserveGroup(exts ...string) (string, error)

	// Close は作成済みの一時ファイルを削除する。何度呼んでも削除は一度だけ
	Close() error
}
