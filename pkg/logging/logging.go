package logging

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var (
	logger = newLogger(os.Stderr, logrus.InfoLevel)
	mu     sync.Mutex
)

func newLogger(out io.Writer, level logrus.Level) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		DisableColors:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})
	return l
}

// InitLogger reconfigures the shared logger. Loggers obtained earlier via GetLogger see the change.
func InitLogger(level logrus.Level, out io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger.SetOutput(out)
	logger.SetLevel(level)
}

func GetLogger() *logrus.Logger {
	return logger
}

// OpenLogFile opens path for appending, creating parent directories when needed.
func OpenLogFile(path string) (io.WriteCloser, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrapf(err, "failed to create log dir for %q", path)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open log file %q", path)
	}
	return f, nil
}

// DefaultLogFile is where the interactive client logs when no file is configured,
// since writing to the terminal would corrupt the screen.
func DefaultLogFile() string {
	return filepath.Join(os.TempDir(), "namegen-client.log")
}
