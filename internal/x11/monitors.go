package x11

import (
	"fmt"
	"math"

	"github.com/BurntSushi/xgb/randr"
)

// Monitor represents a physical display driven by an active CRTC.
type Monitor struct {
	Crtc        uint32
	Name        string
	X           int
	Y           int
	Width       int
	Height      int
	RefreshRate int
	Primary     bool
}

// GetMonitors retrieves all active monitors using XRandR, in CRTC order.
func (c *Connection) GetMonitors() ([]Monitor, error) {
	if !c.randrReady {
		return nil, fmt.Errorf("randr extension not available")
	}

	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var primary randr.Output
	if reply, err := randr.GetOutputPrimary(c.XUtil.Conn(), c.Root).Reply(); err == nil {
		primary = reply.Output
	}

	modes := make(map[uint32]randr.ModeInfo, len(resources.Modes))
	for _, mi := range resources.Modes {
		modes[mi.Id] = mi
	}

	var monitors []Monitor
	for i, crtc := range resources.Crtcs {
		crtcInfo, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}

		// Skip disabled CRTCs
		if crtcInfo.Width == 0 || crtcInfo.Height == 0 || len(crtcInfo.Outputs) == 0 {
			continue
		}

		outputName := fmt.Sprintf("Monitor%d", i)
		outputInfo, err := randr.GetOutputInfo(c.XUtil.Conn(), crtcInfo.Outputs[0], resources.ConfigTimestamp).Reply()
		if err == nil {
			outputName = string(outputInfo.Name)
		}

		isPrimary := false
		for _, out := range crtcInfo.Outputs {
			if primary != 0 && out == primary {
				isPrimary = true
				break
			}
		}

		rate := 0
		if mi, ok := modes[uint32(crtcInfo.Mode)]; ok {
			rate = refreshRate(mi)
		}

		monitors = append(monitors, Monitor{
			Crtc:        uint32(crtc),
			Name:        outputName,
			X:           int(crtcInfo.X),
			Y:           int(crtcInfo.Y),
			Width:       int(crtcInfo.Width),
			Height:      int(crtcInfo.Height),
			RefreshRate: rate,
			Primary:     isPrimary,
		})
	}

	return monitors, nil
}

// refreshRate derives the vertical refresh in Hz from a RandR mode line.
func refreshRate(mi randr.ModeInfo) int {
	vtotal := float64(mi.Vtotal)
	if mi.ModeFlags&randr.ModeFlagDoubleScan != 0 {
		vtotal *= 2
	}
	if mi.ModeFlags&randr.ModeFlagInterlace != 0 {
		vtotal /= 2
	}
	if mi.Htotal == 0 || vtotal == 0 {
		return 0
	}
	return int(math.Round(float64(mi.DotClock) / (float64(mi.Htotal) * vtotal)))
}
