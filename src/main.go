package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"simple-memo/src/config"
	"simple-memo/src/infrastructure/repository"
	"simple-memo/src/interface/handler"
	"simple-memo/src/logger"
	"simple-memo/src/routes"
	"simple-memo/src/storage"
	"simple-memo/src/usecase"
	"simple-memo/src/validator"

	"github.com/gin-gonic/gin"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// .envファイルがあれば読み込む
	dotEnvErr := config.LoadDotEnv()

	cfg := config.LoadConfig()

	if err := logger.InitLogger(cfg.Log); err != nil {
		panic(fmt.Sprintf("ロガーの初期化に失敗: %v", err))
	}
	defer logger.CloseLogger()

	if dotEnvErr != nil {
		logger.Log.WithError(dotEnvErr).Debug(".envファイルを読み込めませんでした。環境変数のみを使用します")
	}

	logger.Log.Info("アプリケーションを開始しています")

	archiver := startLogArchiver(cfg)

	// 依存関係を組み立てる
	memoRepo := repository.NewMemoRepository(logger.Log)
	memoUsecase := usecase.NewMemoUsecase(memoRepo, logger.Log)
	memoHandler := handler.NewMemoHandler(memoUsecase, validator.NewCustomValidator(), logger.Log)

	gin.SetMode(cfg.Server.Mode)
	r := routes.NewRouter(memoHandler, memoRepo, cfg.Server.CORSAllowedOrigins)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	go func() {
		logger.Log.WithField("port", cfg.Server.Port).Info("サーバーを開始します")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.WithError(err).Fatal("サーバーの起動に失敗")
		}
	}()

	<-ctx.Done()
	logger.Log.Info("シャットダウンシグナルを受信しました")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.WithError(err).Error("サーバーのシャットダウンに失敗")
	}

	if archiver != nil {
		archiver.Stop()
		// 最後のログアップロードを実行
		logger.CloseLogger()
		uploadCtx, cancelUpload := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancelUpload()
		if _, err := archiver.UploadOldLogs(uploadCtx, cfg.Log.Directory, 0); err != nil {
			logger.Log.WithError(err).Error("最後のログアップロードに失敗")
		}
	}

	logger.Log.Info("サーバーを停止しました")
}

// startLogArchiver S3へのログアップロードを開始（設定が有効な場合）
func startLogArchiver(cfg *config.Config) *storage.LogArchiver {
	if !cfg.Log.UploadEnabled || !cfg.Log.FileEnabled {
		return nil
	}

	client, err := storage.NewS3Client(&storage.S3Config{
		Endpoint:        cfg.S3.Endpoint,
		AccessKeyID:     cfg.S3.AccessKeyID,
		SecretAccessKey: cfg.S3.SecretAccessKey,
		Region:          cfg.S3.Region,
		Bucket:          cfg.S3.Bucket,
		UseSSL:          cfg.S3.UseSSL,
	})
	if err != nil {
		logger.Log.WithError(err).Error("S3アップローダーの初期化に失敗")
		return nil
	}

	archiver := storage.NewLogArchiver(client, cfg.S3.Bucket, logger.GetCurrentLogFile, logger.Log)
	archiver.StartPeriodicUpload(cfg.Log.Directory, cfg.Log.UploadInterval, cfg.Log.UploadMaxAge, func() error {
		return logger.RotateLogFile(cfg.Log.Directory)
	})
	return archiver
}
