package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	sessionqueue "github.com/okian/swimzones/internal/adapters/mq/queue"
	app "github.com/okian/swimzones/internal/app"
	"github.com/okian/swimzones/internal/domain/model"
	"github.com/okian/swimzones/pkg/logger"
)

// queueFullBackoff is how long Submit waits before retrying a full queue.
const queueFullBackoff = 5 * time.Millisecond

// runBatch analyzes every session in r through the worker pool and writes
// the analyses to w in input order.
func runBatch(ctx context.Context, svc *app.Service, r io.Reader, format string, w io.Writer) error {
	log := logger.Named("batch")

	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("start service: %w", err)
	}

	readErr := readSessions(r, format, func(lineNo int, s model.Session) {
		if err := submit(ctx, svc, s); err != nil {
			log.Warn(ctx, "session skipped", logger.Int("line", lineNo), logger.String("session", s.ID), logger.Error(err))
		}
	}, func(lineNo int, err error) {
		log.Warn(ctx, "malformed input line", logger.Int("line", lineNo), logger.Error(err))
	})

	waitErr := svc.Wait(ctx)

	stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	stopErr := svc.Stop(stopCtx)

	enc := json.NewEncoder(w)
	results := svc.Results(stopCtx)
	for _, a := range results {
		if err := enc.Encode(a); err != nil {
			return fmt.Errorf("write result %s: %w", a.SessionID, err)
		}
	}

	stats := svc.GetStats()
	log.Info(ctx, "batch finished",
		logger.Int("results", len(results)),
		logger.Any("submitted", stats["submitted"]),
	)

	return errors.Join(readErr, waitErr, stopErr)
}

// submit retries while the queue is full.
func submit(ctx context.Context, svc *app.Service, s model.Session) error {
	for {
		_, err := svc.Submit(ctx, s)
		if !errors.Is(err, sessionqueue.ErrQueueFull) {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(queueFullBackoff):
		}
	}
}

// readSessions calls emit for every non-blank line of r, decoded per format.
// Lines that fail to decode go to bad and do not stop the scan.
func readSessions(r io.Reader, format string, emit func(int, model.Session), bad func(int, error)) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		if format != formatJSONL {
			emit(lineNo, model.Session{Text: line})
			continue
		}

		var s model.Session
		if err := json.Unmarshal([]byte(line), &s); err != nil {
			bad(lineNo, err)
			continue
		}
		emit(lineNo, s)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}
