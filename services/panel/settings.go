package panel

import (
	"preampcode-go/types"
	"preampcode-go/x/mathx"
)

// Storage map. Written only by PowerFail (and once on first use), read only
// at boot.
const (
	addrFirstUse uint16 = 0x00 // non-zero = unprovisioned
	addrVolumeLo uint16 = 0x01 // attenuation magnitude, little-endian uint16
	addrVolumeHi uint16 = 0x02
	addrSource   uint16 = 0x03
	addrBalance  uint16 = 0x04 // reserved
)

const (
	defaultMagnitude uint16 = 447 // full attenuation, a safe power-on level
	defaultSource    uint8  = 1
)

// loadSettings reads the persisted listening state, falling back to the
// defaults on a fresh part, a read fault or an out-of-range value. A fresh
// part is provisioned in passing so the first power loss finds a valid map.
func (c *Controller) loadSettings() types.Settings {
	s := types.Settings{Volume: -int16(defaultMagnitude), Source: defaultSource}

	marker, err := c.store.ReadByte(addrFirstUse)
	if err != nil {
		return s
	}
	if marker != 0 {
		c.writeSettings(defaultMagnitude, defaultSource)
		_ = c.store.WriteByte(addrFirstUse, 0)
		return s
	}

	lo, errLo := c.store.ReadByte(addrVolumeLo)
	hi, errHi := c.store.ReadByte(addrVolumeHi)
	if errLo == nil && errHi == nil {
		if mag := uint16(lo) | uint16(hi)<<8; mag <= defaultMagnitude {
			s.Volume = -int16(mag)
		}
	}

	if src, err := c.store.ReadByte(addrSource); err == nil &&
		mathx.Between(src, sourceFirst, sourceLast) {
		s.Source = src
	}
	return s
}

// saveSettings snapshots the persisted pair from the atomic fields. The
// writes are best-effort; there is nothing to do about a fault here.
func (c *Controller) saveSettings() {
	mag := uint16(mathx.Abs(int16(c.volume.Load())))
	c.writeSettings(mag, uint8(c.source.Load()))
}

func (c *Controller) writeSettings(mag uint16, src uint8) {
	_ = c.store.WriteByte(addrVolumeLo, byte(mag))
	_ = c.store.WriteByte(addrVolumeHi, byte(mag>>8))
	_ = c.store.WriteByte(addrSource, src)
}
