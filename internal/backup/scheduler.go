// Package backup provides scheduled fleet exports with archive
// retention.
package backup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/motorlog/motorlog/internal/interchange"
	"github.com/motorlog/motorlog/internal/logging"
	"github.com/motorlog/motorlog/internal/models"
)

// Interval defines the scheduling frequency.
type Interval string

const (
	IntervalManual  Interval = "manual"
	IntervalDaily   Interval = "daily"
	IntervalWeekly  Interval = "weekly"
	IntervalMonthly Interval = "monthly"
)

// Config holds the backup scheduler configuration.
type Config struct {
	Interval           Interval
	RetentionCount     int    // archives to keep, 0 = unlimited
	IncludeAttachments bool   // carry attachment metadata in backups
	Dir                string // directory for archives, default "backups"
	Passphrase         string // encrypt archives when set
}

// Scheduler periodically exports an owner's fleet to timestamped
// archives and prunes old ones.
type Scheduler struct {
	exporter *interchange.Exporter
	ownerID  models.UUID
	cfg      Config
	ticker   *time.Ticker
	stopCh   chan struct{}
	stopOnce sync.Once
	log      *logging.Logger
}

// NewScheduler creates a backup scheduler for one owner's fleet.
func NewScheduler(exporter *interchange.Exporter, ownerID models.UUID, cfg Config) *Scheduler {
	if cfg.Dir == "" {
		cfg.Dir = "backups"
	}
	if cfg.RetentionCount < 0 {
		cfg.RetentionCount = 0
	}
	return &Scheduler{
		exporter: exporter,
		ownerID:  ownerID,
		cfg:      cfg,
		stopCh:   make(chan struct{}),
		log:      logging.Get(),
	}
}

// Start begins automatic backups. A manual interval disables the timer;
// RunOnce stays available for on-demand backups.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.cfg.Interval == IntervalManual {
		s.log.Info("backup scheduler in manual mode, automatic backups disabled")
		return nil
	}

	dur, err := s.intervalDuration()
	if err != nil {
		return fmt.Errorf("invalid interval: %w", err)
	}

	s.ticker = time.NewTicker(dur)
	s.log.Info("backup scheduler started", map[string]interface{}{
		"interval":  s.cfg.Interval,
		"retention": s.cfg.RetentionCount,
		"dir":       s.cfg.Dir,
	})

	go func() {
		if _, err := s.RunOnce(ctx); err != nil {
			s.log.Error("initial backup failed", err)
		}
	}()

	go func() {
		for {
			select {
			case <-s.ticker.C:
				if _, err := s.RunOnce(ctx); err != nil {
					s.log.Error("scheduled backup failed", err)
				}
			case <-s.stopCh:
				s.log.Info("backup scheduler stopped")
				return
			case <-ctx.Done():
				s.log.Info("backup scheduler context canceled")
				return
			}
		}
	}()

	return nil
}

// Stop shuts down the scheduler. It is safe to call more than once.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
		if s.ticker != nil {
			s.ticker.Stop()
		}
	})
}

// RunOnce exports the fleet to a timestamped archive in the backup
// directory and applies the retention policy. It returns the archive
// path.
func (s *Scheduler) RunOnce(ctx context.Context) (string, error) {
	result, err := s.exporter.Export(ctx, s.ownerID, interchange.ExportOptions{
		IncludeAttachments: s.cfg.IncludeAttachments,
	})
	if err != nil {
		return "", fmt.Errorf("backup export failed: %w", err)
	}

	payload := &interchange.Payload{
		Version:    interchange.PayloadVersion,
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Vehicles:   result.Data,
	}

	if err := os.MkdirAll(s.cfg.Dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}
	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(s.cfg.Dir, fmt.Sprintf("motorlog_%s.tar.gz", timestamp))

	if s.cfg.Passphrase != "" {
		err = interchange.WriteSealedArchive(path, payload, s.cfg.Passphrase)
	} else {
		err = interchange.WriteArchive(path, payload)
	}
	if err != nil {
		return "", err
	}

	s.log.Info("backup written", map[string]interface{}{
		"file":     path,
		"vehicles": result.Statistics.VehicleCount,
		"sealed":   s.cfg.Passphrase != "",
	})

	if s.cfg.RetentionCount > 0 {
		if err := s.applyRetention(); err != nil {
			// keep the fresh backup even when pruning fails
			s.log.Error("backup retention failed", err)
		}
	}
	return path, nil
}

func (s *Scheduler) intervalDuration() (time.Duration, error) {
	switch s.cfg.Interval {
	case IntervalDaily:
		return 24 * time.Hour, nil
	case IntervalWeekly:
		return 7 * 24 * time.Hour, nil
	case IntervalMonthly:
		// approximated as 30 days
		return 30 * 24 * time.Hour, nil
	default:
		return 0, fmt.Errorf("unknown interval %q", s.cfg.Interval)
	}
}

type archiveInfo struct {
	path    string
	modTime time.Time
}

// applyRetention removes the oldest archives beyond the retention count.
func (s *Scheduler) applyRetention() error {
	archives, err := listArchives(s.cfg.Dir)
	if err != nil {
		return err
	}
	if len(archives) <= s.cfg.RetentionCount {
		return nil
	}

	sort.Slice(archives, func(i, j int) bool {
		return archives[i].modTime.Before(archives[j].modTime)
	})
	for _, a := range archives[:len(archives)-s.cfg.RetentionCount] {
		if err := os.Remove(a.path); err != nil {
			s.log.Error("failed to delete old backup", err, map[string]interface{}{"file": a.path})
			continue
		}
		s.log.Info("deleted old backup", map[string]interface{}{"file": a.path})
	}
	return nil
}

// listArchives returns the backup archives in dir.
func listArchives(dir string) ([]archiveInfo, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var archives []archiveInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".tar.gz") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, err
		}
		archives = append(archives, archiveInfo{
			path:    filepath.Join(dir, entry.Name()),
			modTime: info.ModTime(),
		})
	}
	return archives, nil
}
