// geoconvert はHTTPサーバーを介さずにポリゴン化・ラスタライズを行うコマンドラインツール
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"

	"GeoConvert-App/internal/infrastructure/storage"
	"GeoConvert-App/internal/logger"
)

// GlobalOptions 全サブコマンド共通のオプション
type GlobalOptions struct {
	WorkDir      string `short:"w" long:"workdir" description:"一時ファイルを置くディレクトリ（省略時はOSの一時ディレクトリ）"`
	MaxDimension int    `long:"max-dimension" default:"16384" description:"ラスタの最大幅・高さ"`
	Workers      int    `long:"workers" default:"0" description:"ラスタライズの並列数（0ならGOMAXPROCS）"`
	Verbose      bool   `short:"v" long:"verbose" description:"ログを出力する"`
}

var globalOpts = GlobalOptions{}
var parser = flags.NewParser(&globalOpts, flags.HelpFlag|flags.PassDoubleDash)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	_, err := parser.Parse()
	var flagsErr *flags.Error
	if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
		parser.WriteHelp(os.Stdout)
		return nil
	}
	return err
}

// workspace コマンド1回分の一時ファイル領域
type workspace struct {
	store  *storage.TempFileStore
	logger *zap.Logger
	root   string
	owned  bool
}

func (g *GlobalOptions) openWorkspace() (*workspace, error) {
	zapLogger := zap.NewNop()
	if g.Verbose {
		l, err := logger.New(false)
		if err != nil {
			return nil, fmt.Errorf("ロガーの初期化に失敗: %w", err)
		}
		zapLogger = l
	}

	root, owned := g.WorkDir, false
	if root == "" {
		dir, err := os.MkdirTemp("", "geoconvert-")
		if err != nil {
			return nil, fmt.Errorf("一時ディレクトリの作成に失敗: %w", err)
		}
		root, owned = dir, true
	}

	store, err := storage.NewTempFileStore(filepath.Join(root, "uploads"), filepath.Join(root, "output"), zapLogger)
	if err != nil {
		return nil, err
	}
	return &workspace{store: store, logger: zapLogger, root: root, owned: owned}, nil
}

func (w *workspace) Close() error {
	_ = w.logger.Sync()
	if w.owned {
		return os.RemoveAll(w.root)
	}
	return nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
