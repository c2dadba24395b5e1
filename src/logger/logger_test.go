package logger_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"simple-memo/src/config"
	"simple-memo/src/logger"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLogger(t *testing.T) {
	t.Run("正常初期化", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "logs")

		err := logger.InitLogger(config.LogConfig{Level: "info", Directory: dir, FileEnabled: true})
		require.NoError(t, err)
		defer logger.CloseLogger()

		assert.Equal(t, logrus.InfoLevel, logger.Log.Level)
		assert.DirExists(t, dir)

		logFile := logger.GetCurrentLogFile()
		assert.NotEmpty(t, logFile)
		assert.FileExists(t, logFile)
		assert.Equal(t, dir, filepath.Dir(logFile))
	})

	t.Run("ログレベル設定", func(t *testing.T) {
		err := logger.InitLogger(config.LogConfig{Level: "debug", Directory: t.TempDir()})
		require.NoError(t, err)
		defer logger.CloseLogger()

		assert.Equal(t, logrus.DebugLevel, logger.Log.Level)
	})

	t.Run("ファイル出力なし", func(t *testing.T) {
		err := logger.InitLogger(config.LogConfig{Level: "warn", FileEnabled: false})
		require.NoError(t, err)

		assert.Empty(t, logger.GetCurrentLogFile())
	})

	t.Run("不正なログレベルはinfoにフォールバック", func(t *testing.T) {
		dir := t.TempDir()
		err := logger.InitLogger(config.LogConfig{Level: "verbose", Directory: dir, FileEnabled: true})
		require.NoError(t, err)
		defer logger.CloseLogger()

		assert.Equal(t, logrus.InfoLevel, logger.Log.Level)

		content, err := os.ReadFile(logger.GetCurrentLogFile())
		require.NoError(t, err)
		assert.Contains(t, string(content), `"configured_level":"verbose"`)
		assert.Contains(t, string(content), `"level":"warning"`)
	})
}

func TestLoggerFunctions(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, logger.InitLogger(config.LogConfig{Level: "info", Directory: dir, FileEnabled: true}))
	defer logger.CloseLogger()

	t.Run("フィールド付きログがJSONで出力される", func(t *testing.T) {
		logger.WithField("memo_id", 1).Info("単一フィールド")
		logger.WithFields(logrus.Fields{"memo_id": 2, "method": "PUT"}).Warn("複数フィールド")

		content, err := os.ReadFile(logger.GetCurrentLogFile())
		require.NoError(t, err)

		var found int
		for _, line := range strings.Split(strings.TrimSpace(string(content)), "\n") {
			var entry map[string]interface{}
			require.NoError(t, json.Unmarshal([]byte(line), &entry))
			assert.Contains(t, entry, "time")

			switch entry["msg"] {
			case "単一フィールド":
				assert.Equal(t, float64(1), entry["memo_id"])
				found++
			case "複数フィールド":
				assert.Equal(t, "PUT", entry["method"])
				assert.Equal(t, "warning", entry["level"])
				found++
			}
		}
		assert.Equal(t, 2, found)
	})

	t.Run("ログファイルのローテーション", func(t *testing.T) {
		before := logger.GetCurrentLogFile()
		require.NoError(t, logger.RotateLogFile(dir))

		after := logger.GetCurrentLogFile()
		assert.NotEqual(t, before, after)
		assert.FileExists(t, before)
		assert.FileExists(t, after)
	})

	t.Run("クローズ後はファイルなし", func(t *testing.T) {
		logger.CloseLogger()
		assert.Empty(t, logger.GetCurrentLogFile())
	})
}
