package logger

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fatih/color"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	return [...]string{"DEBUG", "INFO", "WARN", "ERROR"}[l]
}

var (
	mu     sync.Mutex
	level  = LevelInfo
	output io.Writer = color.Output

	tags = map[Level]*color.Color{
		LevelDebug: color.New(color.FgCyan),
		LevelInfo:  color.New(color.FgGreen),
		LevelWarn:  color.New(color.FgYellow),
		LevelError: color.New(color.FgRed, color.Bold),
	}
)

// * SetLevel sets the minimum level that gets written
func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	level = l
}

// * SetOutput redirects log lines, mostly useful in tests
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

func Debug(format string, args ...any) { write(LevelDebug, format, args...) }
func Info(format string, args ...any)  { write(LevelInfo, format, args...) }
func Warn(format string, args ...any)  { write(LevelWarn, format, args...) }
func Error(format string, args ...any) { write(LevelError, format, args...) }

func write(l Level, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()

	if l < level {
		return
	}

	tag := tags[l].Sprintf("[%s]", l)
	fmt.Fprintf(output, "%s %s %s\n", time.Now().UTC().Format(time.RFC3339), tag, fmt.Sprintf(format, args...))
}
