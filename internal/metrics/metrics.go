package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "storcli"

// Metrics holds all Prometheus metrics
type Metrics struct {
	ControllerStatus       *prometheus.GaugeVec
	ControllerTemperature  *prometheus.GaugeVec
	ControllerMemoryErrors *prometheus.GaugeVec
	ControllerObjects      *prometheus.GaugeVec
	RaidArrayStatus        *prometheus.GaugeVec
	RaidArraySize          *prometheus.GaugeVec
	DriveStatus            *prometheus.GaugeVec
	DriveSize              *prometheus.GaugeVec
	EnclosureDrives        *prometheus.GaugeVec
	CacheVaultStatus       *prometheus.GaugeVec
	CacheVaultTemperature  *prometheus.GaugeVec

	CommandsTotal      *prometheus.CounterVec
	CommandDuration    prometheus.Histogram
	CollectionDuration prometheus.Gauge
	CollectionSuccess  prometheus.Gauge
	ExporterUp         prometheus.Gauge
}

// New creates all metrics and registers them with reg
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ControllerStatus: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "controller_status",
				Help:      "Controller status (0=unknown, 1=ok, 2=needs attention, 3=failed)",
			},
			[]string{"controller", "model", "serial", "status"},
		),
		ControllerTemperature: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "controller_temperature_celsius",
				Help:      "Controller temperature in Celsius by sensor",
			},
			[]string{"controller", "sensor"},
		),
		ControllerMemoryErrors: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "controller_memory_errors",
				Help:      "Controller memory errors",
			},
			[]string{"controller", "type"},
		),
		ControllerObjects: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "controller_objects",
				Help:      "Number of drive groups, virtual drives and physical drives on the controller",
			},
			[]string{"controller", "kind"},
		),
		RaidArrayStatus: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "raid_array_status",
				Help:      "Virtual drive status (0=unknown, 1=ok, 2=degraded, 3=failed)",
			},
			[]string{"controller", "array_id", "raid_level", "state"},
		),
		RaidArraySize: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "raid_array_size_bytes",
				Help:      "Virtual drive size in bytes",
			},
			[]string{"controller", "array_id"},
		),
		DriveStatus: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "drive_health_status",
				Help:      "Physical drive health (0=unknown, 1=ok, 2=warning, 3=critical)",
			},
			[]string{"controller", "enclosure", "slot", "model", "media", "state"},
		),
		DriveSize: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "drive_size_bytes",
				Help:      "Physical drive size in bytes",
			},
			[]string{"controller", "enclosure", "slot"},
		),
		EnclosureDrives: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "enclosure_drives",
				Help:      "Number of physical drives in the enclosure",
			},
			[]string{"controller", "enclosure", "state"},
		),
		CacheVaultStatus: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "cachevault_status",
				Help:      "Cache vault status (0=unknown, 1=ok, 2=warning, 3=critical)",
			},
			[]string{"controller", "state", "replacement_required", "offload_status"},
		),
		CacheVaultTemperature: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "cachevault_temperature_celsius",
				Help:      "Cache vault temperature in Celsius",
			},
			[]string{"controller"},
		),
		CommandsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "commands_total",
				Help:      "storcli processes run, by outcome",
			},
			[]string{"outcome"},
		),
		CommandDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "command_duration_seconds",
				Help:      "Wall time of storcli processes",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
		),
		CollectionDuration: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "collection_duration_seconds",
				Help:      "Duration of the last collection cycle",
			},
		),
		CollectionSuccess: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "collection_success",
				Help:      "Whether the last collection cycle succeeded",
			},
		),
		ExporterUp: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "storcli_exporter_up",
				Help: "Whether the storcli exporter is up and running",
			},
		),
	}

	// Register all metrics
	reg.MustRegister(
		m.ControllerStatus,
		m.ControllerTemperature,
		m.ControllerMemoryErrors,
		m.ControllerObjects,
		m.RaidArrayStatus,
		m.RaidArraySize,
		m.DriveStatus,
		m.DriveSize,
		m.EnclosureDrives,
		m.CacheVaultStatus,
		m.CacheVaultTemperature,
		m.CommandsTotal,
		m.CommandDuration,
		m.CollectionDuration,
		m.CollectionSuccess,
		m.ExporterUp,
	)

	return m
}

// Reset clears all per-object metrics
func (m *Metrics) Reset() {
	m.ControllerStatus.Reset()
	m.ControllerTemperature.Reset()
	m.ControllerMemoryErrors.Reset()
	m.ControllerObjects.Reset()
	m.RaidArrayStatus.Reset()
	m.RaidArraySize.Reset()
	m.DriveStatus.Reset()
	m.DriveSize.Reset()
	m.EnclosureDrives.Reset()
	m.CacheVaultStatus.Reset()
	m.CacheVaultTemperature.Reset()
}
