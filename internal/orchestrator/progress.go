package orchestrator

import (
	"sync"
	"time"
)

// DefaultProgressInterval is the time between progress captions.
const DefaultProgressInterval = 600 * time.Millisecond

// ProgressCaptions are shown in order while a generation runs.
var ProgressCaptions = []string{
	"🧠 Analyzing your profile...",
	"🎯 Matching keywords from job description...",
	"✍️ Crafting personalized content...",
	"⚡ Optimizing for ATS systems...",
	"✨ Finalizing documents...",
}

// ProgressEvent is one caption step.
type ProgressEvent struct {
	Step    int    `json:"step"`
	Total   int    `json:"total"`
	Message string `json:"message"`
}

// ProgressCallback receives caption steps. It is called from the progress goroutine.
type ProgressCallback func(ProgressEvent)

// Progress cycles through ProgressCaptions on a ticker until every caption has been shown
// or Stop is called. It carries no information about the actual work.
type Progress struct {
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// StartProgress emits the first caption immediately and the rest every interval.
// A nil callback still runs the timer so Stop semantics are uniform.
func StartProgress(interval time.Duration, onStep ProgressCallback) *Progress {
	if interval <= 0 {
		interval = DefaultProgressInterval
	}
	p := &Progress{stop: make(chan struct{}), done: make(chan struct{})}
	go p.run(interval, onStep)
	return p
}

func (p *Progress) run(interval time.Duration, onStep ProgressCallback) {
	defer close(p.done)
	emit := func(i int) {
		if onStep != nil {
			onStep(ProgressEvent{Step: i + 1, Total: len(ProgressCaptions), Message: ProgressCaptions[i]})
		}
	}

	emit(0)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for i := 1; i < len(ProgressCaptions); i++ {
		select {
		case <-p.stop:
			return
		case <-ticker.C:
			emit(i)
		}
	}
}

// Stop cancels the timer and waits until no further callback can run. Safe to call more
// than once.
func (p *Progress) Stop() {
	p.stopOnce.Do(func() { close(p.stop) })
	<-p.done
}
