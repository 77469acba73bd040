package raid

import (
	"fmt"
	"strings"

	"storcli-exporter/pkg/storcli"
	"storcli-exporter/pkg/types"
)

// Drives lists the physical drives behind every enclosure of the
// controller via `/cN/eall/sall show`.
func (c *Controller) Drives() ([]types.DriveInfo, error) {
	data, err := responseData(c.cli, []string{c.name + "/eall/sall", "show"})
	if err != nil {
		return nil, err
	}

	list, err := data.Get("Drive Information")
	if err != nil {
		return nil, nil
	}
	rows, err := list.Array()
	if err != nil {
		return nil, err
	}

	drives := make([]types.DriveInfo, 0, len(rows))
	for _, row := range rows {
		drive, err := parseDrive(row, c.id)
		if err != nil {
			return nil, err
		}
		drives = append(drives, drive)
	}
	return drives, nil
}

// parseDrive parses a single "Drive Information" row
func parseDrive(row storcli.Value, controller int) (types.DriveInfo, error) {
	drive := types.DriveInfo{
		Controller: controller,
		DeviceID:   int(integer(row, "DID")),
		DriveGroup: text(row, "DG"),
		State:      text(row, "State"),
		Size:       ParseSizeToBytes(text(row, "Size")),
		Interface:  text(row, "Intf"),
		Media:      text(row, "Med"),
		Model:      text(row, "Model"),
		SectorSize: text(row, "SeSz"),
	}

	location, err := storcli.Field(row, "EID:Slt", storcli.Strip)
	if err != nil {
		return types.DriveInfo{}, err
	}
	eid, slot, found := strings.Cut(location, ":")
	if !found {
		return types.DriveInfo{}, fmt.Errorf("invalid EID:Slt %q", location)
	}
	drive.Enclosure = strings.TrimSpace(eid)
	drive.Slot = strings.TrimSpace(slot)
	return drive, nil
}

// DriveName returns the storcli object path of a drive, e.g. "/c0/e252/s1".
// Drives attached without an enclosure have no /eX element.
func DriveName(d types.DriveInfo) string {
	if d.Enclosure == "" {
		return fmt.Sprintf("/c%d/s%s", d.Controller, d.Slot)
	}
	return fmt.Sprintf("/c%d/e%s/s%s", d.Controller, d.Enclosure, d.Slot)
}
