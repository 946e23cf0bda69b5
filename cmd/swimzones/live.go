package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	app "github.com/okian/swimzones/internal/app"
	"github.com/okian/swimzones/internal/domain/model"
	"github.com/okian/swimzones/pkg/logger"
)

// revision is one printed live analysis.
type revision struct {
	Text   string                `json:"text"`
	Result model.DetectionResult `json:"result"`
}

// runLive treats every line of r as the new content of one text field and
// prints an analysis whenever the input pauses. Pending input is flushed at EOF.
func runLive(ctx context.Context, svc *app.Service, r io.Reader, format string, w io.Writer) error {
	log := logger.Named("live")

	var (
		mu     sync.Mutex
		enc    = json.NewEncoder(w)
		outErr error
		count  int
	)
	live := svc.NewLiveAnalyzer(func(text string, res model.DetectionResult) {
		mu.Lock()
		defer mu.Unlock()
		count++
		if err := enc.Encode(revision{Text: text, Result: res}); err != nil && outErr == nil {
			outErr = fmt.Errorf("write revision: %w", err)
		}
	})

	readErr := readSessions(r, format, func(_ int, s model.Session) {
		live.Update(ctx, s.Text, s.Context)
	}, func(lineNo int, err error) {
		log.Warn(ctx, "malformed input line", logger.Int("line", lineNo), logger.Error(err))
	})
	if ctx.Err() != nil {
		live.Cancel()
	} else {
		live.Flush()
	}
	// Stop waits for an analysis the timer already started.
	live.Stop()

	mu.Lock()
	defer mu.Unlock()
	log.Info(ctx, "live input closed", logger.Int("revisions", count))
	if readErr != nil {
		return readErr
	}
	return outErr
}
