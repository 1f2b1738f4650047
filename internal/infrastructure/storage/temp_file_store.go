package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"GeoConvert-App/internal/domain/model"
	"GeoConvert-App/internal/domain/repository"
)

var errSessionClosed = errors.New("temp file session already closed")

// TempFileStore アップロード領域と出力領域を持つ一時ファイルストア
type TempFileStore struct {
	uploadDir string
	outputDir string
	logger    *zap.Logger
}

// NewTempFileStore ディレクトリを作成してストアを返す（起動時に一度だけ呼ぶ）
func NewTempFileStore(uploadDir, outputDir string, logger *zap.Logger) (*TempFileStore, error) {
	for _, dir := range []string{uploadDir, outputDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("一時ディレクトリの作成に失敗 %s: %w", dir, err)
		}
	}
	return &TempFileStore{
		uploadDir: uploadDir,
		outputDir: outputDir,
		logger:    logger,
	}, nil
}

// UploadDir アップロード領域のパス
func (s *TempFileStore) UploadDir() string {
	return s.uploadDir
}

// OutputDir 出力領域のパス
func (s *TempFileStore) OutputDir() string {
	return s.outputDir
}

// NewSession 新しいセッションを開始
func (s *TempFileStore) NewSession() repository.TempFileSession {
	return &tempFileSession{store: s}
}

// tempFileSession TempFileSessionの実装
type tempFileSession struct {
	store *TempFileStore

	mu     sync.Mutex
	paths  []string
	closed bool

	once     sync.Once
	closeErr error
}

// Stage 受信データをアップロード領域に保存
func (s *tempFileSession) Stage(ctx context.Context, r io.Reader, ext string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	f, path, err := s.create(s.store.uploadDir, ext)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return "", fmt.Errorf("アップロードの保存に失敗: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrInternalIO, err)
	}
	return path, nil
}

// Reserve 出力領域に空ファイルを作成
func (s *tempFileSession) Reserve(ext string) (string, error) {
	f, path, err := s.create(s.store.outputDir, ext)
	if err != nil {
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrInternalIO, err)
	}
	return path, nil
}

// ReserveGroup 出力領域に拡張子違いの空ファイル群を作成（シェープファイル用）
func (s *tempFileSession) ReserveGroup(exts ...string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return "", errSessionClosed
	}

	base := filepath.Join(s.store.outputDir, uuid.New().String())
	for _, ext := range exts {
		f, err := os.OpenFile(base+ext, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
		if err != nil {
			return "", fmt.Errorf("%w: %v", model.ErrInternalIO, err)
		}
		s.paths = append(s.paths, base+ext)
		if err := f.Close(); err != nil {
			return "", fmt.Errorf("%w: %v", model.ErrInternalIO, err)
		}
	}
	return base, nil
}

// create uuidで一意な名前のファイルを排他的に作成し、削除対象に登録する
func (s *tempFileSession) create(dir, ext string) (*os.File, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, "", errSessionClosed
	}

	path := filepath.Join(dir, uuid.New().String()+ext)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", model.ErrInternalIO, err)
	}
	s.paths = append(s.paths, path)
	return f, path, nil
}

// Close 作成した全ファイルを削除する。失敗はログに残してまとめて返す
func (s *tempFileSession) Close() error {
	s.once.Do(func() {
		s.mu.Lock()
		s.closed = true
		paths := s.paths
		s.paths = nil
		s.mu.Unlock()

		for _, path := range paths {
			if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
				s.store.logger.Warn("⚠️ 一時ファイルの削除に失敗", zap.String("path", path), zap.Error(err))
				s.closeErr = multierr.Append(s.closeErr, err)
			}
		}
	})
	return s.closeErr
}
