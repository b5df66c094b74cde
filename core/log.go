// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"bytes"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
)

// TargetKey is the log field naming the component a record comes from.
const TargetKey = "target"

// Formatter writes records as "[date][time][target][LEVEL] message".
// Fields other than the target are appended as sorted key=value pairs.
type Formatter struct {
	// DefaultTarget is used for records without a target field
	DefaultTarget string
}

// Format implements logrus.Formatter
func (f *Formatter) Format(entry *logrus.Entry) ([]byte, error) {
	b := entry.Buffer
	if b == nil {
		b = &bytes.Buffer{}
	}

	target := f.DefaultTarget
	if t, ok := entry.Data[TargetKey].(string); ok {
		target = t
	}

	fmt.Fprintf(b, "%s[%s][%s] %s",
		entry.Time.Format("[2006-01-02][15:04:05]"),
		target,
		strings.ToUpper(entry.Level.String()),
		entry.Message)

	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		if k != TargetKey {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(b, " %s=%v", k, entry.Data[k])
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}

// NewLogger builds the process logger from cfg. Records go to stdout when
// cfg.Console is set and are appended to cfg.File when it is not empty.
// The returned func closes the log file.
func NewLogger(cfg LogConfiguration) (*logrus.Logger, func() error, error) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "invalid log level %q", cfg.Level)
	}

	var (
		writers []io.Writer
		closer  = func() error { return nil }
	)
	if cfg.Console {
		writers = append(writers, os.Stdout)
	}
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "opening log file %q", cfg.File)
		}
		writers = append(writers, f)
		closer = f.Close
	}

	logger := logrus.New()
	logger.SetLevel(level)
	logger.SetFormatter(&Formatter{DefaultTarget: "kiln"})
	switch len(writers) {
	case 0:
		logger.SetOutput(ioutil.Discard)
	case 1:
		logger.SetOutput(writers[0])
	default:
		logger.SetOutput(io.MultiWriter(writers...))
	}
	return logger, closer, nil
}
