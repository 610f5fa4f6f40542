package regroup

import (
	"sync"

	"go.uber.org/zap"
)

// ZapFeedback is a Feedback that logs warnings at warn level and confirmations at info level.
type ZapFeedback struct {
	logger *zap.Logger
}

// NewZapFeedback creates a ZapFeedback writing to the logger given; a nil logger discards everything.
func NewZapFeedback(logger *zap.Logger) *ZapFeedback {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapFeedback{logger: logger}
}

func (f *ZapFeedback) Warn(message string) {
	f.logger.Warn(message)
}

func (f *ZapFeedback) Notify(message string) {
	f.logger.Info(message)
}

// RecordingFeedback is a Feedback that keeps every message it's given, in order.
type RecordingFeedback struct {
	mu       sync.Mutex
	Warnings []string
	Notices  []string
}

func (f *RecordingFeedback) Warn(message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Warnings = append(f.Warnings, message)
}

func (f *RecordingFeedback) Notify(message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Notices = append(f.Notices, message)
}
