package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"simple-memo/src/config"

	"github.com/sirupsen/logrus"
)

var (
	Log = logrus.New()

	mu          sync.Mutex
	currentFile *os.File
	rotations   int
)

// InitLogger ロガーを初期化し、ファイル出力を設定
func InitLogger(cfg config.LogConfig) error {
	// 不正なログレベルは他の設定値と同様にデフォルト（info）にフォールバック
	level, levelErr := logrus.ParseLevel(cfg.Level)
	if levelErr != nil {
		level = logrus.InfoLevel
	}

	Log.SetLevel(level)

	// JSON形式でログを出力
	Log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
	})
	Log.SetOutput(os.Stdout)

	if cfg.FileEnabled {
		// ログディレクトリを作成
		if err := os.MkdirAll(cfg.Directory, 0755); err != nil {
			return fmt.Errorf("ログディレクトリの作成に失敗: %w", err)
		}

		if err := RotateLogFile(cfg.Directory); err != nil {
			return fmt.Errorf("ログファイルの作成に失敗: %w", err)
		}
	}

	if levelErr != nil {
		Log.WithError(levelErr).WithField("configured_level", cfg.Level).Warn("不正なログレベルのためinfoを使用します")
	}
	Log.WithField("level", level.String()).Info("ロガーが初期化されました")
	return nil
}

// RotateLogFile 新しいログファイルを作成し、出力先を切り替える
func RotateLogFile(dir string) error {
	mu.Lock()
	defer mu.Unlock()

	// 新しいファイル名を生成（タイムスタンプ + 連番）
	rotations++
	filename := fmt.Sprintf("app_%s_%03d.log", time.Now().Format("2006-01-02_15-04-05"), rotations)
	path := filepath.Join(dir, filename)

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return err
	}

	previous := currentFile
	currentFile = file

	// 標準出力とファイルの両方に出力
	Log.SetOutput(io.MultiWriter(os.Stdout, file))

	// 既存のファイルを閉じる
	if previous != nil {
		previous.Close()
	}

	Log.WithField("file", path).Info("新しいログファイルを作成しました")
	return nil
}

// GetCurrentLogFile 現在のログファイルパスを取得
func GetCurrentLogFile() string {
	mu.Lock()
	defer mu.Unlock()

	if currentFile != nil {
		return currentFile.Name()
	}
	return ""
}

// CloseLogger ログファイルを閉じ、以降は標準出力のみに出力する
func CloseLogger() {
	mu.Lock()
	defer mu.Unlock()

	if currentFile != nil {
		Log.Info("ログファイルを閉じます")
		Log.SetOutput(os.Stdout)
		currentFile.Close()
		currentFile = nil
	}
}

// WithFields フィールド付きログエントリを作成
func WithFields(fields logrus.Fields) *logrus.Entry {
	return Log.WithFields(fields)
}

// WithField フィールド付きログエントリを作成（単一フィールド）
func WithField(key string, value interface{}) *logrus.Entry {
	return Log.WithField(key, value)
}
