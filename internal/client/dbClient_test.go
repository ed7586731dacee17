package client

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type recordingWriter struct {
	lines []string
}

func (w *recordingWriter) Printf(format string, args ...interface{}) {
	w.lines = append(w.lines, fmt.Sprintf(format, args...))
}

func TestGormLogger_SkipsRecordNotFound(t *testing.T) {
	w := &recordingWriter{}
	l := newGormLogger(w)
	query := func() (string, int64) { return "SELECT * FROM accounts WHERE email = 'x'", 0 }

	l.Trace(context.Background(), time.Now(), query, gorm.ErrRecordNotFound)
	assert.Empty(t, w.lines)

	l.Trace(context.Background(), time.Now(), query, errors.New("connection reset"))
	assert.Len(t, w.lines, 1)
	assert.Contains(t, w.lines[0], "connection reset")
}
