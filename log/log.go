package log

import (
	"io"
	"os"

	logging "github.com/op/go-logging"
	"golang.org/x/crypto/ssh/terminal"
)

const (
	textFormat    = "%{time:2006-01-02 15:04:05} %{level:.4s} %{shortfile} %{message}"
	textFormatTTY = "%{color}%{time:15:04:05} %{level:.4s}%{color:reset} %{shortfile} %{message}"
)

var (
	log     = logging.MustGetLogger("branchcheck")
	leveled logging.LeveledBackend
)

func init() {
	log.ExtraCalldepth = 1
	InitLog(os.Stderr, "info")
}

// InitLog points the package logger at w with the given level. Unknown levels
// fall back to info.
func InitLog(w io.Writer, level string) {
	var backend logging.Backend = logging.NewLogBackend(w, "", 0)
	backend = logging.NewBackendFormatter(backend, logging.MustStringFormatter(GetTextFormat()))
	leveled = logging.AddModuleLevel(backend)
	leveled.SetLevel(parseLevel(level), "")
	log.SetBackend(leveled)
}

// SetLevel changes the level of the backend installed by InitLog.
func SetLevel(level string) {
	leveled.SetLevel(parseLevel(level), "")
}

func parseLevel(level string) logging.Level {
	l, err := logging.LogLevel(level)
	if err != nil {
		return logging.INFO
	}
	return l
}

// GetTextFormat returns the colored format when stdin is attached to a terminal.
func GetTextFormat() string {
	if terminal.IsTerminal(int(os.Stdin.Fd())) {
		return textFormatTTY
	}
	return textFormat
}

func Debugf(format string, args ...interface{}) {
	log.Debugf(format, args...)
}

func Infof(format string, args ...interface{}) {
	log.Infof(format, args...)
}

func Warningf(format string, args ...interface{}) {
	log.Warningf(format, args...)
}

func Errorf(format string, args ...interface{}) {
	log.Errorf(format, args...)
}

func Warning(err error) {
	log.Warning(err)
}

func Error(err error) {
	log.Error(err)
}
