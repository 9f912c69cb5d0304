package scraper

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/mindjek007/XenForo-Scraper/internal/models"
)

type watchJob struct {
	Ticker   *time.Ticker
	StopChan chan bool
	IsActive bool
}

// WatchScheduler re-scrapes watched threads on a fixed interval. The
// callback receives each completed scrape; exporting or archiving is the
// caller's business.
type WatchScheduler struct {
	scraper  *Scraper
	onThread func(*models.Thread)
	maxPages int
	jobs     map[string]*watchJob
	mu       sync.RWMutex
}

func NewWatchScheduler(s *Scraper, maxPages int, onThread func(*models.Thread)) *WatchScheduler {
	return &WatchScheduler{
		scraper:  s,
		onThread: onThread,
		maxPages: maxPages,
		jobs:     make(map[string]*watchJob),
	}
}

func (w *WatchScheduler) Watch(threadURL string, interval time.Duration) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if job, exists := w.jobs[threadURL]; exists && job.IsActive {
		return fmt.Errorf("thread %s is already being watched", threadURL)
	}

	job := &watchJob{
		Ticker:   time.NewTicker(interval),
		StopChan: make(chan bool),
		IsActive: true,
	}
	w.jobs[threadURL] = job

	go w.run(threadURL)

	go func() {
		for {
			select {
			case <-job.Ticker.C:
				w.run(threadURL)
			case <-job.StopChan:
				return
			}
		}
	}()

	log.Printf("Watching %s every %s", threadURL, interval)
	return nil
}

func (w *WatchScheduler) run(threadURL string) {
	thread, err := w.scraper.ScrapeThread(threadURL, w.maxPages)
	if err != nil {
		log.Printf("Watch scrape error for %s: %v", threadURL, err)
		return
	}
	if w.onThread != nil {
		w.onThread(thread)
	}
}

func (w *WatchScheduler) Unwatch(threadURL string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	job, exists := w.jobs[threadURL]
	if !exists || !job.IsActive {
		return fmt.Errorf("thread %s is not being watched", threadURL)
	}

	job.Ticker.Stop()
	close(job.StopChan)
	job.IsActive = false

	log.Printf("Stopped watching %s", threadURL)
	return nil
}

func (w *WatchScheduler) StopAll() {
	w.mu.Lock()
	defer w.mu.Unlock()

	for threadURL, job := range w.jobs {
		if job.IsActive {
			job.Ticker.Stop()
			close(job.StopChan)
			job.IsActive = false
			log.Printf("Stopped watching %s", threadURL)
		}
	}
}

func (w *WatchScheduler) Watched() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()

	var active []string
	for threadURL, job := range w.jobs {
		if job.IsActive {
			active = append(active, threadURL)
		}
	}
	return active
}
