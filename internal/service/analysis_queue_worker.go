package service

import (
	"context"
	"log"
	"sync"
	"time"

	"takeoffs/internal/port"
)

// AnalysisQueueConfig holds settings for the analysis queue worker.
type AnalysisQueueConfig struct {
	PollInterval time.Duration
	MaxRetries   int
	Concurrency  int
}

// AnalysisQueueWorker polls for queued analyses and dispatches them.
type AnalysisQueueWorker struct {
	analysisRepo port.AnalysisRepository
	analysisSvc  AnalysisService
	cfg          AnalysisQueueConfig
	wg           sync.WaitGroup
}

// NewAnalysisQueueWorker creates a new AnalysisQueueWorker.
func NewAnalysisQueueWorker(analysisRepo port.AnalysisRepository, analysisSvc AnalysisService, cfg AnalysisQueueConfig) *AnalysisQueueWorker {
	return &AnalysisQueueWorker{
		analysisRepo: analysisRepo,
		analysisSvc:  analysisSvc,
		cfg:          cfg,
	}
}

// Start runs the polling loop until ctx is canceled. It blocks until all
// in-flight analysis goroutines have finished.
func (w *AnalysisQueueWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	sem := make(chan struct{}, w.cfg.Concurrency)

	log.Printf("analysisQueueWorker: started (poll=%s, concurrency=%d, maxRetries=%d)",
		w.cfg.PollInterval, w.cfg.Concurrency, w.cfg.MaxRetries)

	for {
		select {
		case <-ctx.Done():
			log.Printf("analysisQueueWorker: shutting down, waiting for in-flight analyses...")
			w.wg.Wait()
			log.Printf("analysisQueueWorker: shutdown complete")
			return
		case <-ticker.C:
			available := w.cfg.Concurrency - len(sem)
			if available <= 0 {
				continue
			}

			claimed, err := w.analysisRepo.ClaimQueued(ctx, available, w.cfg.MaxRetries)
			if err != nil {
				if ctx.Err() != nil {
					// Context canceled during poll, exit on the next select
					continue
				}
				log.Printf("analysisQueueWorker: ClaimQueued error: %v", err)
				continue
			}

			for i := range claimed {
				a := claimed[i] // copy for goroutine

				sem <- struct{}{} // acquire
				w.wg.Add(1)
				go func() {
					defer w.wg.Done()
					defer func() { <-sem }() // release

					// Use a fresh context independent of the poll context
					// so in-flight analyses complete even during shutdown.
					runCtx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
					defer cancel()

					log.Printf("analysisQueueWorker: dispatching analysis %s (attempt %d)", a.ID, a.AnalyzeAttempts)
					w.analysisSvc.RunAnalysis(runCtx, &a, w.cfg.MaxRetries)
				}()
			}
		}
	}
}
