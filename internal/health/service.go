package health

import (
	"time"

	"storcli-exporter/internal/collector"
	"storcli-exporter/internal/raid"
	"storcli-exporter/pkg/types"
)

const (
	serviceName = "storcli-exporter"
)

// Service provides health data collection functionality
type Service struct {
	collector *collector.Collector
	storcli   types.StorCLIInfo
	version   string
	now       func() time.Time
}

// New creates a new health service
func New(c *collector.Collector, info types.StorCLIInfo, version string) *Service {
	return &Service{
		collector: c,
		storcli:   info,
		version:   version,
		now:       time.Now,
	}
}

// GetHealthData builds the JSON health response from the last collection
func (s *Service) GetHealthData() *types.HealthResponse {
	inv := s.collector.Inventory()
	lastCollected, lastErr := s.collector.LastCollection()

	response := &types.HealthResponse{
		Status:        "ok",
		Service:       serviceName,
		Version:       s.version,
		Timestamp:     s.now().Format(time.RFC3339),
		StorCLI:       s.storcli,
		Controllers:   make([]types.ControllerHealth, 0, len(inv.Controllers)),
		VirtualDrives: make([]types.VirtualDriveHealth, 0, len(inv.VirtualDrives)),
		Drives:        make([]types.DriveHealth, 0, len(inv.Drives)),
		CacheVaults:   make([]types.CacheVaultHealth, 0, len(inv.CacheVaults)),
	}
	if !lastCollected.IsZero() {
		response.LastCollected = lastCollected.Format(time.RFC3339)
	}
	if lastErr != nil {
		response.Status = "degraded"
		response.LastError = lastErr.Error()
	}

	for _, ctl := range inv.Controllers {
		h := types.ControllerHealth{
			ID:         ctl.ID,
			Model:      ctl.Model,
			Serial:     ctl.Serial,
			Status:     ctl.Status,
			StatusCode: int(raid.ControllerHealth(ctl.Status)),
		}
		if ctl.HasROCTemperature {
			h.ROCTemperature = float64Ptr(ctl.ROCTemperature)
		}
		if ctl.HasControllerTemperature {
			h.ControllerTemperature = float64Ptr(ctl.ControllerTemperature)
		}
		response.Controllers = append(response.Controllers, h)
	}

	for _, vd := range inv.VirtualDrives {
		response.VirtualDrives = append(response.VirtualDrives, types.VirtualDriveHealth{
			Controller: vd.Controller,
			ArrayID:    raid.VirtualDriveName(vd),
			RaidLevel:  vd.RaidLevel,
			State:      vd.State,
			StatusCode: vd.Status,
		})
	}

	for _, d := range inv.Drives {
		status := raid.DriveHealth(d.State)
		response.Drives = append(response.Drives, types.DriveHealth{
			Controller: d.Controller,
			Location:   raid.DriveName(d),
			Model:      d.Model,
			Media:      d.Media,
			State:      d.State,
			Health:     status.String(),
			HealthCode: int(status),
			Configured: raid.DriveConfigured(d.State),
		})

		// Count health statuses
		response.DriveSummary.TotalDrives++
		switch status {
		case types.HealthStatusOK:
			response.DriveSummary.HealthyDrives++
		case types.HealthStatusWarning:
			response.DriveSummary.WarningDrives++
		case types.HealthStatusCritical:
			response.DriveSummary.CriticalDrives++
		default:
			response.DriveSummary.UnknownDrives++
		}
	}

	for _, cv := range inv.CacheVaults {
		h := types.CacheVaultHealth{
			Controller:          cv.Controller,
			State:               cv.State,
			ReplacementRequired: cv.ReplacementRequired,
			OffloadStatus:       cv.OffloadStatus,
		}
		if cv.HasTemperature {
			h.Temperature = float64Ptr(cv.Temperature)
		}
		response.CacheVaults = append(response.CacheVaults, h)
	}

	return response
}

func float64Ptr(v float64) *float64 { return &v }
