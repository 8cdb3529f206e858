// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/formdesk/internal/logger"
)

const defaultRefreshInterval = time.Minute

// dashboardLoader is the part of Board the refresh job needs.
type dashboardLoader interface {
	LoadDashboard(ctx context.Context) error
}

type clientRefreshJob struct {
	board dashboardLoader

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *logger.Logger
}

// NewClientRefreshJob creates a job that reloads the dashboard counters on
// a ticker. The job is idle until Start is called.
func NewClientRefreshJob(board dashboardLoader, logger *logger.Logger) ClientRefreshJob {
	return &clientRefreshJob{board: board, logger: logger}
}

func (j *clientRefreshJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultRefreshInterval
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				if err := j.board.LoadDashboard(jobCtx); err != nil {
					j.logger.Debug().Err(err).Msg("dashboard refresh failed")
				}
			}
		}
	}()
}

// Stop is safe to call when the job is not running.
func (j *clientRefreshJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
