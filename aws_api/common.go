package aws_api

import (
	"errors"

	"github.com/AlexeyBeley/go_ranker/logger"
)

var lg = &(logger.Logger{Level: logger.INFO})

func SetLogLevel(level int) {
	lg.Level = level
}

var ErrEmptyObject = errors.New("empty S3 object")
