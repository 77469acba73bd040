package types

// HealthResponse represents the JSON health response
type HealthResponse struct {
	Status        string               `json:"status"`
	Service       string               `json:"service"`
	Version       string               `json:"version"`
	Timestamp     string               `json:"timestamp"`
	LastCollected string               `json:"last_collected,omitempty"`
	LastError     string               `json:"last_error,omitempty"`
	StorCLI       StorCLIInfo          `json:"storcli"`
	DriveSummary  DriveSummary         `json:"drive_summary"`
	Controllers   []ControllerHealth   `json:"controllers"`
	VirtualDrives []VirtualDriveHealth `json:"virtual_drives,omitempty"`
	Drives        []DriveHealth        `json:"drives"`
	CacheVaults   []CacheVaultHealth   `json:"cache_vaults,omitempty"`
}

// StorCLIInfo describes the storcli binary in use
type StorCLIInfo struct {
	Binary       string `json:"binary"`
	Version      string `json:"version,omitempty"`
	CacheEnabled bool   `json:"cache_enabled"`
	Singleton    bool   `json:"singleton"`
}

// DriveSummary provides a summary of physical drive health
type DriveSummary struct {
	TotalDrives    int `json:"total_drives"`
	HealthyDrives  int `json:"healthy_drives"`
	WarningDrives  int `json:"warning_drives"`
	CriticalDrives int `json:"critical_drives"`
	UnknownDrives  int `json:"unknown_drives"`
}

// ControllerHealth represents controller health in JSON
type ControllerHealth struct {
	ID                    int      `json:"id"`
	Model                 string   `json:"model"`
	Serial                string   `json:"serial"`
	Status                string   `json:"status"`
	StatusCode            int      `json:"status_code"`
	ROCTemperature        *float64 `json:"roc_temperature,omitempty"`
	ControllerTemperature *float64 `json:"controller_temperature,omitempty"`
}

// VirtualDriveHealth represents virtual drive health in JSON
type VirtualDriveHealth struct {
	Controller int    `json:"controller"`
	ArrayID    string `json:"array_id"`
	RaidLevel  string `json:"raid_level"`
	State      string `json:"state"`
	StatusCode int    `json:"status_code"`
}

// DriveHealth represents individual drive health in JSON
type DriveHealth struct {
	Controller int    `json:"controller"`
	Location   string `json:"location"`
	Model      string `json:"model"`
	Media      string `json:"media"`
	State      string `json:"state"`
	Health     string `json:"health"`
	HealthCode int    `json:"health_code"`
	Configured bool   `json:"configured"`
}

// CacheVaultHealth represents cache vault health in JSON
type CacheVaultHealth struct {
	Controller          int      `json:"controller"`
	State               string   `json:"state"`
	ReplacementRequired string   `json:"replacement_required"`
	OffloadStatus       string   `json:"offload_status"`
	Temperature         *float64 `json:"temperature,omitempty"`
}
