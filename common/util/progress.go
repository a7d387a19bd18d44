package util

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

// Progress counts the items handled by a long migration and reports them. Every call
// is logged at debug level; once per interval the running count is promoted to info so
// that a quiet console still shows the migration advancing.
type Progress struct {
	logger   *logrus.Logger
	interval time.Duration
	last     time.Time
	count    int
}

// NewProgress returns a Progress reporting to logger, or to nowhere when logger is nil.
func NewProgress(logger *logrus.Logger, interval time.Duration) *Progress {
	if logger == nil {
		logger = logrus.New()
		logger.Out = io.Discard
	}

	return &Progress{
		logger:   logger,
		interval: interval,
		last:     time.Now(),
	}
}

// Count returns the number of items reported so far.
func (p *Progress) Count() int {
	return p.count
}

// Done records one more item with the given message and fields.
func (p *Progress) Done(message string, fields logrus.Fields) {
	p.count++

	entry := p.logger.WithFields(fields).WithField("count", p.count)
	if time.Since(p.last) > p.interval {
		entry.Info(message)
		p.last = time.Now()
	} else {
		entry.Debug(message)
	}
}
