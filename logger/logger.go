package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

type Logger struct {
	Level       int
	FileDst     string
	AddLogLevel bool
	AddDateTime bool
	// Output replaces stdout when set.
	Output io.Writer
}

const (
	DEBUG   = 0
	INFO    = 1
	WARNING = 2
	ERROR   = 3
)

var levelNames = map[int]string{
	DEBUG:   "DEBUG",
	INFO:    "INFO",
	WARNING: "WARNING",
	ERROR:   "ERROR",
}

// LevelFromString maps a level name to its value, INFO if unknown.
func LevelFromString(name string) int {
	for level, levelName := range levelNames {
		if strings.EqualFold(levelName, name) {
			return level
		}
	}
	if strings.EqualFold(name, "warn") {
		return WARNING
	}
	return INFO
}

func (l *Logger) writer() io.Writer {
	if l.Output != nil {
		return l.Output
	}
	return os.Stdout
}

func writeToFile(path string, src []byte) {
	fileDesc, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0644)
	if err != nil {
		panic(err)
	}
	defer fileDesc.Close()

	ret, err := fileDesc.Write(src)
	if err != nil {
		panic(err)
	}
	if len(src) != ret {
		panic(string(src))
	}
}

func baseLog(l *Logger, level int, str string, args ...any) {
	if !strings.HasSuffix(str, "\n") {
		str += "\n"
	}

	if l.AddLogLevel {
		str = fmt.Sprintf("%s: %s", levelNames[level], str)
	}

	if l.AddDateTime {
		logDateTime := time.Now().UTC().Format(time.RFC3339)
		str = fmt.Sprintf("[%s] %s", logDateTime, str)
	}

	src := fmt.Sprintf(str, args...)
	if l.FileDst != "" {
		writeToFile(l.FileDst, []byte(src))
	}

	fmt.Fprint(l.writer(), src)
}

func baseLogBytes(l *Logger, src []byte) {
	if l.FileDst != "" {
		writeToFile(l.FileDst, src)
	}

	fmt.Fprint(l.writer(), string(src))
}

func (l *Logger) baseM(srcMap map[string]any) {
	if l.AddDateTime {
		srcMap["LogDateTime"] = time.Now().UTC().Format(time.RFC3339)
	}
	jsonData, err := json.Marshal(srcMap)
	if err != nil {
		baseLog(l, ERROR, "Error marshaling JSON: %v", err)
		return
	}
	jsonData = append(jsonData, byte('\n'))
	baseLogBytes(l, jsonData)
}

func (l *Logger) InfoM(srcMap map[string]any) {
	if l.Level > INFO {
		return
	}
	if l.AddLogLevel {
		srcMap["LogLevel"] = "INFO"
	}
	l.baseM(srcMap)
}

func (l *Logger) WarningM(srcMap map[string]any) {
	if l.Level > WARNING {
		return
	}
	if l.AddLogLevel {
		srcMap["LogLevel"] = "WARNING"
	}
	l.baseM(srcMap)
}

func (l *Logger) Infof(str string, args ...any) {
	if l.Level > INFO {
		return
	}
	baseLog(l, INFO, str, args...)
}

func (l *Logger) Debugf(str string, args ...any) {
	if l.Level > DEBUG {
		return
	}
	baseLog(l, DEBUG, str, args...)
}

func (l *Logger) Warningf(str string, args ...any) {
	if l.Level > WARNING {
		return
	}
	baseLog(l, WARNING, str, args...)
}

func (l *Logger) Errorf(str string, args ...any) {
	if l.Level > ERROR {
		return
	}
	baseLog(l, ERROR, str, args...)
}
