package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/sirupsen/logrus"
)

type S3Config struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	Bucket          string
	UseSSL          bool
}

// LogArchiver uploads rotated log files to S3 compatible storage
type LogArchiver struct {
	s3Client s3iface.S3API
	bucket   string
	logger   *logrus.Logger

	// activeFile は書き込み中のログファイルを返す（アップロード対象外）
	activeFile func() string

	started  atomic.Bool
	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// NewS3Client S3クライアントを作成
func NewS3Client(config *S3Config) (s3iface.S3API, error) {
	awsConfig := &aws.Config{
		Region:           aws.String(config.Region),
		Credentials:      credentials.NewStaticCredentials(config.AccessKeyID, config.SecretAccessKey, ""),
		DisableSSL:       aws.Bool(!config.UseSSL),
		S3ForcePathStyle: aws.Bool(true), // MinIOなどのS3互換ストレージ用
	}

	// エンドポイントが指定されている場合（MinIOなど）
	if config.Endpoint != "" {
		awsConfig.Endpoint = aws.String(config.Endpoint)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("AWSセッションの作成に失敗: %w", err)
	}

	return s3.New(sess), nil
}

// NewLogArchiver creates a log archiver
func NewLogArchiver(client s3iface.S3API, bucket string, activeFile func() string, logger *logrus.Logger) *LogArchiver {
	if activeFile == nil {
		activeFile = func() string { return "" }
	}
	return &LogArchiver{
		s3Client:   client,
		bucket:     bucket,
		logger:     logger,
		activeFile: activeFile,
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// UploadLogFile ログファイルをS3にアップロード
func (a *LogArchiver) UploadLogFile(ctx context.Context, filePath string) error {
	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("ファイルの読み込みに失敗: %w", err)
	}
	defer file.Close()

	fileName := filepath.Base(filePath)
	objectKey := "logs/" + fileName

	_, err = a.s3Client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(objectKey),
		Body:        file,
		ContentType: aws.String("application/x-ndjson"),
		Metadata: map[string]*string{
			"upload-time": aws.String(time.Now().Format(time.RFC3339)),
			"source":      aws.String("simple-memo"),
		},
	})
	if err != nil {
		return fmt.Errorf("S3アップロードに失敗: %w", err)
	}

	a.logger.WithFields(logrus.Fields{
		"file":   fileName,
		"bucket": a.bucket,
		"key":    objectKey,
	}).Info("ログファイルをS3にアップロードしました")

	return nil
}

// UploadOldLogs 古いログファイルをアップロードして削除し、アップロード件数を返す
func (a *LogArchiver) UploadOldLogs(ctx context.Context, logDir string, maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		return 0, fmt.Errorf("ログディレクトリの読み取りに失敗: %w", err)
	}

	cutoffTime := time.Now().Add(-maxAge)
	active := a.activeFile()
	uploaded := 0

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".log") {
			continue
		}

		filePath := filepath.Join(logDir, entry.Name())
		if active != "" && filepath.Clean(active) == filepath.Clean(filePath) {
			continue
		}

		fileInfo, err := entry.Info()
		if err != nil {
			a.logger.WithError(err).WithField("file", entry.Name()).Error("ファイル情報の取得に失敗")
			continue
		}

		if !fileInfo.ModTime().Before(cutoffTime) {
			continue
		}

		if err := a.UploadLogFile(ctx, filePath); err != nil {
			a.logger.WithError(err).WithField("file", entry.Name()).Error("ログファイルのアップロードに失敗")
			continue
		}
		uploaded++

		if err := os.Remove(filePath); err != nil {
			a.logger.WithError(err).WithField("file", entry.Name()).Error("ローカルファイルの削除に失敗")
		}
	}

	return uploaded, nil
}

// StartPeriodicUpload 定期的なアップロードを開始
// beforeSweep が指定されている場合は各アップロードの前に呼ばれる（ログのローテーション用）
func (a *LogArchiver) StartPeriodicUpload(logDir string, interval, maxAge time.Duration, beforeSweep func() error) {
	if interval <= 0 {
		a.logger.WithField("interval", interval).Warn("アップロード間隔が不正なため定期アップロードを開始しません")
		return
	}
	if !a.started.CompareAndSwap(false, true) {
		return
	}
	ticker := time.NewTicker(interval)

	go func() {
		defer close(a.done)
		defer ticker.Stop()

		for {
			select {
			case <-a.stop:
				return
			case <-ticker.C:
				if beforeSweep != nil {
					if err := beforeSweep(); err != nil {
						a.logger.WithError(err).Error("ログのローテーションに失敗")
					}
				}
				if _, err := a.UploadOldLogs(context.Background(), logDir, maxAge); err != nil {
					a.logger.WithError(err).Error("定期的なログアップロードに失敗")
				}
			}
		}
	}()

	a.logger.WithFields(logrus.Fields{
		"interval": interval,
		"maxAge":   maxAge,
	}).Info("定期的なログアップロードを開始しました")
}

// Stop 定期アップロードを停止し、実行中のアップロードの完了を待つ
func (a *LogArchiver) Stop() {
	a.stopOnce.Do(func() {
		close(a.stop)
	})
	if !a.started.Load() {
		return
	}
	select {
	case <-a.done:
	case <-time.After(30 * time.Second):
		a.logger.Warn("ログアップロードの停止待ちがタイムアウトしました")
	}
}
