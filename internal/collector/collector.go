package collector

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"storcli-exporter/internal/metrics"
	"storcli-exporter/internal/raid"
	"storcli-exporter/pkg/types"
)

// Source is the storcli executor the collector reads from.
type Source interface {
	raid.Commander
	ClearCache()
}

// Collector handles metric collection
type Collector struct {
	source   Source
	metrics  *metrics.Metrics
	interval time.Duration
	logger   *log.Logger

	mu            sync.RWMutex
	inventory     types.Inventory
	lastCollected time.Time
	lastErr       error
}

// New creates a new collector
func New(source Source, m *metrics.Metrics, interval time.Duration, logger *log.Logger) *Collector {
	return &Collector{
		source:   source,
		metrics:  m,
		interval: interval,
		logger:   logger,
	}
}

// Start collects immediately and then on every interval until ctx is done.
func (c *Collector) Start(ctx context.Context) {
	// Set exporter as up
	c.metrics.ExporterUp.Set(1)
	defer c.metrics.ExporterUp.Set(0)

	// Collect metrics immediately on startup
	c.Collect()

	// Start periodic collection
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Collect()
		}
	}
}

// Collect runs one collection cycle and updates the metrics. Failures on
// one part do not stop the others; all failures are joined, returned and
// kept for the health endpoint.
func (c *Collector) Collect() error {
	start := time.Now()
	c.logger.Debug("collecting RAID metrics")

	// Responses cached during the previous cycle are stale by now.
	c.source.ClearCache()

	inv, err := c.gather()

	c.metrics.Reset()
	c.updateMetrics(inv)

	elapsed := time.Since(start)
	c.metrics.CollectionDuration.Set(elapsed.Seconds())
	if err != nil {
		c.metrics.CollectionSuccess.Set(0)
		c.logger.Error("collection failed", "err", err)
	} else {
		c.metrics.CollectionSuccess.Set(1)
	}

	c.mu.Lock()
	c.inventory = inv
	c.lastCollected = start
	c.lastErr = err
	c.mu.Unlock()

	c.logger.Info("updated metrics",
		"controllers", len(inv.Controllers),
		"virtual_drives", len(inv.VirtualDrives),
		"drives", len(inv.Drives),
		"duration", elapsed.Round(time.Millisecond))
	return err
}

// gather walks every controller. Parts that fail are skipped and the
// errors joined.
func (c *Collector) gather() (types.Inventory, error) {
	var inv types.Inventory

	ctls, err := raid.Controllers(c.source)
	if err != nil {
		return inv, err
	}

	var errs []error
	for _, ctl := range ctls {
		logger := c.logger.With("controller", ctl.Name())

		info, err := ctl.Info()
		if err != nil {
			logger.Warn("reading controller", "err", err)
			errs = append(errs, err)
		} else {
			inv.Controllers = append(inv.Controllers, info)
		}

		vds, err := ctl.VirtualDrives()
		if err != nil {
			logger.Warn("reading virtual drives", "err", err)
			errs = append(errs, err)
		}
		inv.VirtualDrives = append(inv.VirtualDrives, vds...)

		drives, err := ctl.Drives()
		if err != nil {
			logger.Warn("reading drives", "err", err)
			errs = append(errs, err)
		}
		inv.Drives = append(inv.Drives, drives...)

		encls, err := ctl.Enclosures()
		if err != nil {
			logger.Warn("reading enclosures", "err", err)
			errs = append(errs, err)
		}
		inv.Enclosures = append(inv.Enclosures, encls...)

		cv, err := ctl.CacheVault()
		switch {
		case raid.IsMissing(err):
			logger.Debug("no cache vault")
		case err != nil:
			logger.Warn("reading cache vault", "err", err)
			errs = append(errs, err)
		default:
			inv.CacheVaults = append(inv.CacheVaults, cv)
		}
	}

	return inv, errors.Join(errs...)
}

// updateMetrics sets the gauges from a collected inventory
func (c *Collector) updateMetrics(inv types.Inventory) {
	for _, ctl := range inv.Controllers {
		id := strconv.Itoa(ctl.ID)
		c.metrics.ControllerStatus.WithLabelValues(id, ctl.Model, ctl.Serial, ctl.Status).
			Set(float64(raid.ControllerHealth(ctl.Status)))
		c.metrics.ControllerMemoryErrors.WithLabelValues(id, "correctable").Set(float64(ctl.MemoryCorrectableErrors))
		c.metrics.ControllerMemoryErrors.WithLabelValues(id, "uncorrectable").Set(float64(ctl.MemoryUncorrectableErrors))
		c.metrics.ControllerObjects.WithLabelValues(id, "drive_groups").Set(float64(ctl.DriveGroups))
		c.metrics.ControllerObjects.WithLabelValues(id, "virtual_drives").Set(float64(ctl.VirtualDrives))
		c.metrics.ControllerObjects.WithLabelValues(id, "physical_drives").Set(float64(ctl.PhysicalDrives))

		// Temperatures only when the sensor is present
		if ctl.HasROCTemperature {
			c.metrics.ControllerTemperature.WithLabelValues(id, "roc").Set(ctl.ROCTemperature)
		}
		if ctl.HasControllerTemperature {
			c.metrics.ControllerTemperature.WithLabelValues(id, "controller").Set(ctl.ControllerTemperature)
		}
	}

	for _, vd := range inv.VirtualDrives {
		id := strconv.Itoa(vd.Controller)
		arrayID := strconv.Itoa(vd.DriveGroup) + "/" + strconv.Itoa(vd.ID)
		c.metrics.RaidArrayStatus.WithLabelValues(id, arrayID, vd.RaidLevel, vd.State).Set(float64(vd.Status))
		c.metrics.RaidArraySize.WithLabelValues(id, arrayID).Set(float64(vd.Size))
	}

	for _, d := range inv.Drives {
		id := strconv.Itoa(d.Controller)
		c.metrics.DriveStatus.WithLabelValues(id, d.Enclosure, d.Slot, d.Model, d.Media, d.State).
			Set(float64(raid.DriveHealth(d.State)))
		c.metrics.DriveSize.WithLabelValues(id, d.Enclosure, d.Slot).Set(float64(d.Size))
	}

	for _, e := range inv.Enclosures {
		c.metrics.EnclosureDrives.WithLabelValues(strconv.Itoa(e.Controller), strconv.Itoa(e.ID), e.State).
			Set(float64(e.Drives))
	}

	for _, cv := range inv.CacheVaults {
		id := strconv.Itoa(cv.Controller)
		c.metrics.CacheVaultStatus.WithLabelValues(id, cv.State, cv.ReplacementRequired, cv.OffloadStatus).
			Set(float64(CacheVaultHealth(cv)))
		if cv.HasTemperature {
			c.metrics.CacheVaultTemperature.WithLabelValues(id).Set(cv.Temperature)
		}
	}
}

// CacheVaultHealth folds the cache vault fields into one status
func CacheVaultHealth(cv types.CacheVaultInfo) types.HealthStatus {
	switch {
	case cv.ReplacementRequired == "yes" || cv.OffloadStatus == "fail":
		return types.HealthStatusCritical
	case cv.State == "optimal":
		return types.HealthStatusOK
	case cv.State == "unknown":
		return types.HealthStatusUnknown
	default:
		return types.HealthStatusWarning
	}
}

// Inventory returns the result of the last collection cycle
func (c *Collector) Inventory() types.Inventory {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.inventory
}

// LastCollection returns when the last cycle started and its error
func (c *Collector) LastCollection() (time.Time, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastCollected, c.lastErr
}
