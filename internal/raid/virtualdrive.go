package raid

import (
	"fmt"
	"strconv"
	"strings"

	"storcli-exporter/pkg/storcli"
	"storcli-exporter/pkg/types"
)

// VirtualDrives lists the controller's virtual drives via `/cN/vall show`.
// A controller without virtual drives yields an empty list.
func (c *Controller) VirtualDrives() ([]types.VirtualDriveInfo, error) {
	data, err := responseData(c.cli, []string{c.name + "/vall", "show"})
	if err != nil {
		return nil, err
	}

	list, err := data.Get("Virtual Drives")
	if err != nil {
		return nil, nil
	}
	rows, err := list.Array()
	if err != nil {
		return nil, err
	}

	vds := make([]types.VirtualDriveInfo, 0, len(rows))
	for _, row := range rows {
		vd, err := parseVirtualDrive(row, c.id)
		if err != nil {
			return nil, err
		}
		vds = append(vds, vd)
	}
	return vds, nil
}

// parseVirtualDrive parses a single "Virtual Drives" row
func parseVirtualDrive(row storcli.Value, controller int) (types.VirtualDriveInfo, error) {
	vd := types.VirtualDriveInfo{
		Controller: controller,
		Name:       text(row, "Name"),
		RaidLevel:  text(row, "TYPE"),
		State:      text(row, "State"),
		Access:     text(row, "Access"),
		Cache:      text(row, "Cache"),
		Size:       ParseSizeToBytes(text(row, "Size")),
	}
	vd.Status = VirtualDriveStatusValue(vd.State)

	dgvd, err := storcli.Field(row, "DG/VD", storcli.Strip)
	if err != nil {
		return types.VirtualDriveInfo{}, err
	}
	dg, id, found := strings.Cut(dgvd, "/")
	if !found {
		return types.VirtualDriveInfo{}, fmt.Errorf("invalid DG/VD %q", dgvd)
	}
	if vd.DriveGroup, err = strconv.Atoi(dg); err != nil {
		return types.VirtualDriveInfo{}, fmt.Errorf("invalid DG/VD %q: %w", dgvd, err)
	}
	if vd.ID, err = strconv.Atoi(id); err != nil {
		return types.VirtualDriveInfo{}, fmt.Errorf("invalid DG/VD %q: %w", dgvd, err)
	}
	return vd, nil
}

// VirtualDriveName returns the storcli object path of a virtual drive,
// e.g. "/c0/v1".
func VirtualDriveName(vd types.VirtualDriveInfo) string {
	return "/c" + strconv.Itoa(vd.Controller) + "/v" + strconv.Itoa(vd.ID)
}
