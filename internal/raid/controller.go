package raid

import (
	"fmt"
	"strconv"

	"storcli-exporter/pkg/storcli"
	"storcli-exporter/pkg/types"
)

// ControllerIDs lists the controller ids reported by `storcli show`.
func ControllerIDs(cli Commander) ([]int, error) {
	data, err := responseData(cli, []string{"show"},
		storcli.AllowErrorCodes(storcli.CodeIncompleteForeignConfiguration))
	if err != nil {
		return nil, err
	}

	if data.Has("Number of Controllers") && integer(data, "Number of Controllers") == 0 {
		return nil, nil
	}

	overview, err := data.FirstOf("System Overview", "IT System Overview")
	if err != nil {
		return nil, fmt.Errorf("reading controller overview: %w", err)
	}
	rows, err := overview.Array()
	if err != nil {
		return nil, fmt.Errorf("reading controller overview: %w", err)
	}

	ids := make([]int, 0, len(rows))
	for _, row := range rows {
		ctl, err := row.Get("Ctl")
		if err != nil {
			return nil, err
		}
		id, err := ctl.Int()
		if err != nil {
			return nil, fmt.Errorf("controller id %q: %w", ctl.Text(), err)
		}
		ids = append(ids, int(id))
	}
	return ids, nil
}

// Controllers returns every controller reported by `storcli show`.
func Controllers(cli Commander) ([]*Controller, error) {
	ids, err := ControllerIDs(cli)
	if err != nil {
		return nil, err
	}

	ctls := make([]*Controller, 0, len(ids))
	for _, id := range ids {
		ctl, err := NewController(cli, id)
		if err != nil {
			return nil, err
		}
		ctls = append(ctls, ctl)
	}
	return ctls, nil
}

// Controller is a RAID controller addressed as /cN.
type Controller struct {
	cli  Commander
	id   int
	name string
}

// NewController returns controller id, or a *MissingError when storcli
// does not know it.
func NewController(cli Commander, id int) (*Controller, error) {
	c := &Controller{cli: cli, id: id, name: "/c" + strconv.Itoa(id)}
	if err := c.Exists(); err != nil {
		return nil, err
	}
	return c, nil
}

// ID returns the controller number.
func (c *Controller) ID() int { return c.id }

// Name returns the storcli object path, e.g. "/c0".
func (c *Controller) Name() string { return c.name }

// Exists probes the controller with `show`.
func (c *Controller) Exists() error {
	return probe(c.cli, "Controller", c.name,
		storcli.AllowErrorCodes(storcli.CodeIncompleteForeignConfiguration))
}

// run prefixes args with the controller path. An incomplete foreign
// configuration never fails a controller command.
func (c *Controller) run(args []string, opts ...storcli.RunOption) (storcli.Value, error) {
	full := append([]string{c.name}, args...)
	opts = append([]storcli.RunOption{storcli.AllowErrorCodes(storcli.CodeIncompleteForeignConfiguration)}, opts...)
	return responseData(c.cli, full, opts...)
}

// ShowAll returns the response data of `/cN show all`.
func (c *Controller) ShowAll() (storcli.Value, error) {
	return c.run([]string{"show", "all"})
}

// Info reads the controller state, counters and temperatures.
func (c *Controller) Info() (types.ControllerInfo, error) {
	data, err := c.ShowAll()
	if err != nil {
		return types.ControllerInfo{}, err
	}

	info := types.ControllerInfo{
		ID:             c.id,
		DriveGroups:    int(integer(data, "Drive Groups")),
		VirtualDrives:  int(integer(data, "Virtual Drives")),
		PhysicalDrives: int(integer(data, "Physical Drives")),
	}

	if basics, err := data.Get("Basics"); err == nil {
		info.Model = text(basics, "Model")
		info.Serial = text(basics, "Serial Number")
	}
	if version, err := data.Get("Version"); err == nil {
		info.Firmware = text(version, "Firmware Version")
	}

	status, err := data.Get("Status")
	if err != nil {
		return types.ControllerInfo{}, fmt.Errorf("%s show all: %w", c.name, err)
	}
	info.Status, err = storcli.Field(status, "Controller Status", storcli.Strip, storcli.Lower)
	if err != nil {
		return types.ControllerInfo{}, fmt.Errorf("%s show all: %w", c.name, err)
	}
	info.MemoryCorrectableErrors = integer(status, "Memory Correctable Errors")
	info.MemoryUncorrectableErrors = integer(status, "Memory Uncorrectable Errors")

	if hwcfg, err := data.Get("HwCfg"); err == nil {
		info.ROCTemperature, info.HasROCTemperature = sensor(hwcfg,
			"Temperature Sensor for ROC", "ROC temperature(Degree Celsius)")
		info.ControllerTemperature, info.HasControllerTemperature = sensor(hwcfg,
			"Temperature Sensor for Controller", "Controller temperature(Degree Celsius)")
	}

	return info, nil
}

// sensor reads a temperature gated on its presence flag.
func sensor(hwcfg storcli.Value, presence, reading string) (float64, bool) {
	if text(hwcfg, presence) != "Present" {
		return 0, false
	}
	v, err := hwcfg.Get(reading)
	if err != nil {
		return 0, false
	}
	t, err := v.Float()
	if err != nil {
		return 0, false
	}
	return t, true
}
