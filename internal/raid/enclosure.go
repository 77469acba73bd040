package raid

import (
	"strconv"

	"storcli-exporter/pkg/types"
)

// Enclosures lists the enclosures attached to the controller via
// `/cN/eall show`.
func (c *Controller) Enclosures() ([]types.EnclosureInfo, error) {
	data, err := responseData(c.cli, []string{c.name + "/eall", "show"})
	if err != nil {
		return nil, err
	}

	list, err := data.Get("Properties")
	if err != nil {
		return nil, nil
	}
	rows, err := list.Array()
	if err != nil {
		return nil, err
	}

	encls := make([]types.EnclosureInfo, 0, len(rows))
	for _, row := range rows {
		encls = append(encls, types.EnclosureInfo{
			Controller: c.id,
			ID:         int(integer(row, "EID")),
			State:      text(row, "State"),
			Slots:      int(integer(row, "Slots")),
			Drives:     int(integer(row, "PD")),
		})
	}
	return encls, nil
}

// EnclosureName returns the storcli object path of an enclosure.
func EnclosureName(e types.EnclosureInfo) string {
	return "/c" + strconv.Itoa(e.Controller) + "/e" + strconv.Itoa(e.ID)
}
