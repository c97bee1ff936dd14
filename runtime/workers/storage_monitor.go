package workers

import (
	"context"
	"log/slog"
	"time"

	"filedrop/contract"

	"github.com/docker/go-units"
	"github.com/shirou/gopsutil/disk"
)

// StorageArea is a named directory whose filesystem is watched.
type StorageArea struct {
	Name string
	Path string
}

type usageFunc func(ctx context.Context, path string) (*disk.UsageStat, error)

// StorageMonitor reports free space of the chunk and artifact areas.
type StorageMonitor struct {
	log             *slog.Logger
	observer        contract.UploadObserver
	areas           []StorageArea
	interval        time.Duration
	warnUsedPercent float64
	usage           usageFunc
}

func NewStorageMonitor(log *slog.Logger, observer contract.UploadObserver, interval time.Duration, warnUsedPercent float64, areas ...StorageArea) *StorageMonitor {
	return &StorageMonitor{
		log:             log,
		observer:        observer,
		areas:           areas,
		interval:        interval,
		warnUsedPercent: warnUsedPercent,
		usage:           disk.UsageWithContext,
	}
}

func (w *StorageMonitor) Run(ctx context.Context) error {
	w.Check(ctx)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping storage monitor")
			return nil
		case <-ticker.C:
			w.Check(ctx)
		}
	}
}

// Check samples every area once.
func (w *StorageMonitor) Check(ctx context.Context) {
	for _, area := range w.areas {
		stat, err := w.usage(ctx, area.Path)
		if err != nil {
			w.log.Debug("Error while reading storage usage", "area", area.Name, "path", area.Path, "error", err)
			continue
		}
		w.observer.StorageUsage(area.Name, stat.Free, stat.UsedPercent)
		if w.warnUsedPercent > 0 && stat.UsedPercent >= w.warnUsedPercent {
			w.log.Warn("Storage area running out of space",
				"area", area.Name,
				"path", area.Path,
				"free", units.HumanSize(float64(stat.Free)),
				"used_percent", stat.UsedPercent)
		}
	}
}
