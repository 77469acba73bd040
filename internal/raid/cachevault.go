package raid

import (
	"strconv"
	"strings"

	"storcli-exporter/pkg/storcli"
	"storcli-exporter/pkg/types"
)

const unknown = "unknown"

// CacheVault reads the controller's cache vault via `/cN/cv show all`. It
// returns a *MissingError when the controller has none.
func (c *Controller) CacheVault() (types.CacheVaultInfo, error) {
	name := c.name + "/cv"
	if err := probe(c.cli, "CacheVault", name); err != nil {
		return types.CacheVaultInfo{}, err
	}

	data, err := responseData(c.cli, []string{name, "show", "all"})
	if err != nil {
		return types.CacheVaultInfo{}, err
	}

	var info, firmware map[string]string
	if v, err := data.Get("Cachevault_Info"); err == nil {
		info = properties(v)
	}
	if v, err := data.Get("Firmware_Status"); err == nil {
		firmware = properties(v)
	}

	cv := types.CacheVaultInfo{
		Controller:          c.id,
		Model:               info["Model"],
		State:               unknown,
		ReplacementRequired: unknown,
		OffloadStatus:       unknown,
	}

	if temp, ok := info["Temperature"]; ok {
		word := strings.TrimSuffix(storcli.FirstWord(temp), "C")
		if t, err := strconv.ParseFloat(word, 64); err == nil {
			cv.Temperature = t
			cv.HasTemperature = true
		}
	}
	if state, ok := info["State"]; ok {
		cv.State = storcli.Lower(state)
	}
	if replace, ok := firmware["Replacement required"]; ok {
		cv.ReplacementRequired = storcli.Lower(replace)
	}
	if noSpace, ok := firmware["No space to cache offload"]; ok {
		if noSpace == "No" {
			cv.OffloadStatus = "ok"
		} else {
			cv.OffloadStatus = "fail"
		}
	}

	return cv, nil
}
