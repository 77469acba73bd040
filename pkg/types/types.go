package types

// HealthStatus represents component health status values
type HealthStatus int

const (
	HealthStatusUnknown  HealthStatus = 0
	HealthStatusOK       HealthStatus = 1
	HealthStatusWarning  HealthStatus = 2
	HealthStatusCritical HealthStatus = 3
)

func (h HealthStatus) String() string {
	switch h {
	case HealthStatusOK:
		return "OK"
	case HealthStatusWarning:
		return "WARNING"
	case HealthStatusCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// ControllerInfo represents a RAID controller as reported by `/cN show all`
type ControllerInfo struct {
	ID                        int
	Model                     string
	Serial                    string
	Firmware                  string
	Status                    string // lowercased "Controller Status", e.g. "optimal"
	MemoryCorrectableErrors   int64
	MemoryUncorrectableErrors int64
	DriveGroups               int
	VirtualDrives             int
	PhysicalDrives            int
	ROCTemperature            float64 // RAID-on-Chip temperature in Celsius
	HasROCTemperature         bool    // false when the ROC sensor is absent
	ControllerTemperature     float64
	HasControllerTemperature  bool
}

// VirtualDriveInfo represents a virtual drive (logical RAID volume)
type VirtualDriveInfo struct {
	Controller int
	DriveGroup int
	ID         int
	Name       string
	RaidLevel  string // TYPE column, e.g. "RAID1"
	State      string // abbreviated state, e.g. "Optl", "Dgrd"
	Status     int    // see raid.VirtualDriveStatusValue
	Access     string
	Cache      string
	Size       int64 // bytes
}

// DriveInfo represents a physical drive behind a controller
type DriveInfo struct {
	Controller int
	Enclosure  string
	Slot       string
	DeviceID   int
	DriveGroup string // "-" when unconfigured
	State      string // abbreviated state, e.g. "Onln", "UGood"
	Size       int64  // bytes
	Interface  string // SATA, SAS, NVMe
	Media      string // HDD, SSD
	Model      string
	SectorSize string
}

// EnclosureInfo represents an enclosure attached to a controller
type EnclosureInfo struct {
	Controller int
	ID         int
	State      string
	Slots      int
	Drives     int
}

// CacheVaultInfo represents the cache vault (supercapacitor backup unit)
type CacheVaultInfo struct {
	Controller          int
	Model               string
	Temperature         float64
	HasTemperature      bool
	State               string // lowercased, e.g. "optimal"
	ReplacementRequired string // "yes", "no" or "unknown"
	OffloadStatus       string // "ok", "fail" or "unknown"
}

// Inventory is everything collected from storcli in one pass
type Inventory struct {
	Controllers   []ControllerInfo
	VirtualDrives []VirtualDriveInfo
	Drives        []DriveInfo
	Enclosures    []EnclosureInfo
	CacheVaults   []CacheVaultInfo
}
