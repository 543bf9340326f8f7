package logger

import (
	"io"

	"gopkg.in/natefinch/lumberjack.v2"
)

// FileConfig configures rotating log-file output.
type FileConfig struct {
	Path string
	// MaxSizeMB triggers rotation once the active file grows past it.
	MaxSizeMB int
	// MaxFiles is how many rotated files to keep around.
	MaxFiles int
}

// NewFileWriter returns a size-rotating file writer backed by
// lumberjack. Rotated files are gzip-compressed.
func NewFileWriter(cfg FileConfig) io.Writer {
	return &lumberjack.Logger{
		Filename:   cfg.Path,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxFiles,
		Compress:   true,
	}
}
