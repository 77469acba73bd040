package raid

import (
	"fmt"
	"strings"

	"storcli-exporter/pkg/types"
)

// DriveState is a physical drive state as printed in the State column.
type DriveState int

const (
	DriveDHS DriveState = iota
	DriveUGood
	DriveGHS
	DriveUBad
	DriveSntze
	DriveOnln
	DriveOffln
	DriveFailed
	DriveSED
	DriveUGUnsp
	DriveUGShld
	DriveHSPShld
	DriveCFShld
	DriveCpybck
	DriveCBShld
	DriveUBUnsp
	DriveRbld
	DriveMissing
	DriveJBOD
)

var driveStates = []struct {
	abbrev string
	name   string
}{
	DriveDHS:     {"DHS", "Dedicated Hot Spare"},
	DriveUGood:   {"UGood", "Unconfigured Good"},
	DriveGHS:     {"GHS", "Global Hotspare"},
	DriveUBad:    {"UBad", "Unconfigured Bad"},
	DriveSntze:   {"Sntze", "Sanitize"},
	DriveOnln:    {"Onln", "Online"},
	DriveOffln:   {"Offln", "Offline"},
	DriveFailed:  {"Failed", "Failed"},
	DriveSED:     {"SED", "Self Encryptive Drive"},
	DriveUGUnsp:  {"UGUnsp", "UGood Unsupported"},
	DriveUGShld:  {"UGShld", "UGood shielded"},
	DriveHSPShld: {"HSPShld", "Hotspare shielded"},
	DriveCFShld:  {"CFShld", "Configured shielded"},
	DriveCpybck:  {"Cpybck", "CopyBack"},
	DriveCBShld:  {"CBShld", "Copyback Shielded"},
	DriveUBUnsp:  {"UBUnsp", "UBad Unsupported"},
	DriveRbld:    {"Rbld", "Rebuild"},
	DriveMissing: {"Missing", "Missing"},
	DriveJBOD:    {"JBOD", "JBOD"},
}

var driveStateAliases = map[string]DriveState{
	"good":               DriveUGood,
	"bad":                DriveUBad,
	"dedicated":          DriveDHS,
	"hotspare":           DriveGHS,
	"unconfigured":       DriveUGood,
	"unconfigured(good)": DriveUGood,
	"unconfigured(bad)":  DriveUBad,
}

// ParseDriveState accepts the abbreviation, the long name or one of the
// set-command aliases, case-insensitively.
func ParseDriveState(s string) (DriveState, error) {
	s = strings.TrimSpace(s)
	for i, st := range driveStates {
		if strings.EqualFold(st.abbrev, s) || strings.EqualFold(st.name, s) {
			return DriveState(i), nil
		}
	}
	if st, ok := driveStateAliases[strings.ToLower(s)]; ok {
		return st, nil
	}
	return 0, fmt.Errorf("invalid drive state: %s", s)
}

func (s DriveState) String() string {
	if int(s) < 0 || int(s) >= len(driveStates) {
		return fmt.Sprintf("DriveState(%d)", int(s))
	}
	return driveStates[s].name
}

// Abbrev returns the State column spelling, e.g. "Onln".
func (s DriveState) Abbrev() string {
	if int(s) < 0 || int(s) >= len(driveStates) {
		return s.String()
	}
	return driveStates[s].abbrev
}

// IsGood reports whether the drive is usable.
func (s DriveState) IsGood() bool {
	switch s {
	case DriveDHS, DriveUGood, DriveGHS, DriveOnln, DriveSED, DriveUGShld,
		DriveHSPShld, DriveCFShld, DriveCpybck, DriveCBShld, DriveRbld, DriveJBOD:
		return true
	}
	return false
}

// IsConfigured reports whether the drive belongs to a configuration.
func (s DriveState) IsConfigured() bool {
	switch s {
	case DriveDHS, DriveGHS, DriveOnln, DriveSED, DriveHSPShld, DriveCFShld,
		DriveCpybck, DriveCBShld, DriveRbld, DriveJBOD:
		return true
	}
	return false
}

// DriveConfigured reports whether a drive State column names a state that
// belongs to a configuration. Unknown states are not configured.
func DriveConfigured(state string) bool {
	st, err := ParseDriveState(state)
	return err == nil && st.IsConfigured()
}

// DriveHealth converts a drive State column into a health status.
func DriveHealth(state string) types.HealthStatus {
	st, err := ParseDriveState(state)
	if err != nil {
		return types.HealthStatusUnknown
	}
	switch {
	case st == DriveRbld || st == DriveCpybck:
		return types.HealthStatusWarning
	case st.IsGood():
		return types.HealthStatusOK
	case st == DriveSntze || st == DriveUGUnsp:
		return types.HealthStatusWarning
	default:
		return types.HealthStatusCritical
	}
}

// VDState is a virtual drive state as printed in the State column.
type VDState int

const (
	VDOptl VDState = iota
	VDRec
	VDOfLn
	VDPdgd
	VDDgrd
)

var vdStates = []struct {
	abbrev string
	name   string
}{
	VDOptl: {"Optl", "Optimal"},
	VDRec:  {"Rec", "Recovery"},
	VDOfLn: {"OfLn", "OffLine"},
	VDPdgd: {"Pdgd", "Partially Degraded"},
	VDDgrd: {"Dgrd", "Degraded"},
}

// ParseVDState accepts the abbreviation or the long name, case-insensitively.
func ParseVDState(s string) (VDState, error) {
	s = strings.TrimSpace(s)
	for i, st := range vdStates {
		if strings.EqualFold(st.abbrev, s) || strings.EqualFold(st.name, s) {
			return VDState(i), nil
		}
	}
	return 0, fmt.Errorf("invalid virtual drive state: %s", s)
}

func (s VDState) String() string {
	if int(s) < 0 || int(s) >= len(vdStates) {
		return fmt.Sprintf("VDState(%d)", int(s))
	}
	return vdStates[s].name
}

// IsGood reports whether the virtual drive is optimal.
func (s VDState) IsGood() bool { return s == VDOptl }

// VirtualDriveStatusValue converts a virtual drive state to the
// raid_array_status scale (0=unknown, 1=ok, 2=degraded, 3=failed).
func VirtualDriveStatusValue(state string) int {
	st, err := ParseVDState(state)
	if err != nil {
		return int(types.HealthStatusUnknown)
	}
	switch st {
	case VDOptl:
		return int(types.HealthStatusOK)
	case VDOfLn:
		return int(types.HealthStatusCritical)
	default:
		return int(types.HealthStatusWarning)
	}
}

// ControllerHealth converts a lowercased "Controller Status" value.
func ControllerHealth(status string) types.HealthStatus {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "optimal":
		return types.HealthStatusOK
	case "needs attention":
		return types.HealthStatusWarning
	case "failed":
		return types.HealthStatusCritical
	default:
		return types.HealthStatusUnknown
	}
}
