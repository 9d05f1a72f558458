package preset

import(
	"github.com/abworrall/opendrt/pkg/drt"
	"github.com/abworrall/opendrt/pkg/ecolor"
)

func (s *Settings)setCurve(c Curve) {
	s.Tonescale.GreyLuminance = c.GreyLuminance
	s.Tonescale.Contrast = c.Contrast
	s.Tonescale.Shoulder = c.Shoulder
	s.Tonescale.Toe = c.Toe
	s.Tonescale.Offset = c.Offset
}

// Apply copies the selected presets' values into s, as happens when a
// preset gets picked. The look goes first, then the tonescale preset (if
// any) overwrites the curve. Locked modules keep their values, and no
// module's Enable is changed.
func (l *Library)Apply(s Settings) Settings {
	if look, ok := l.Look(s.LookPreset); ok {
		s.setCurve(look.Curve)
		s.Whitepoint = look.Whitepoint
		s.RenderSpace = look.RenderSpace

		if !s.Locks.HighContrast {
			look.HighContrast.Enable = s.HighContrast.Enable
			s.HighContrast = look.HighContrast
		}
		if !s.Locks.LowContrast {
			look.LowContrast.Enable = s.LowContrast.Enable
			s.LowContrast = look.LowContrast
		}
		if !s.Locks.PurityLow {
			look.Purity.Enable = s.Purity.Enable
			s.Purity = look.Purity
		}
		if !s.Locks.MidPurity {
			look.MidPurity.Enable = s.MidPurity.Enable
			s.MidPurity = look.MidPurity
		}
		if !s.Locks.Brilliance {
			look.Brilliance.Enable = s.Brilliance.Enable
			s.Brilliance = look.Brilliance
		}
		if !s.Locks.HueShiftRGB {
			look.HueShiftRGB.Enable = s.HueShiftRGB.Enable
			s.HueShiftRGB = look.HueShiftRGB
		}
		if !s.Locks.HueShiftCMY {
			look.HueShiftCMY.Enable = s.HueShiftCMY.Enable
			s.HueShiftCMY = look.HueShiftCMY
		}
		if !s.Locks.HueContrast {
			look.HueContrast.Enable = s.HueContrast.Enable
			s.HueContrast = look.HueContrast
		}
	}

	if ts, ok := l.Tonescale(s.TonescalePreset); ok {
		s.setCurve(ts.Curve)
		if !s.Locks.HighContrast {
			ts.HighContrast.Enable = s.HighContrast.Enable
			s.HighContrast = ts.HighContrast
		}
		if !s.Locks.LowContrast {
			ts.LowContrast.Enable = s.LowContrast.Enable
			s.LowContrast = ts.LowContrast
		}
	}

	return s
}

// Resolve turns settings into the kernel's params. The Preset half of
// every Enable comes from the selected look; with no look selected it is
// off. A FromLook whitepoint becomes the look's own, or D65 with no look.
func (l *Library)Resolve(s Settings) drt.Params {
	p := s.Params
	look, haveLook := l.Look(s.LookPreset)

	for m:=drt.Module(0); int(m)<drt.NumModules; m++ {
		e := p.Enable(m)
		e.Preset = haveLook && look.Enabled[m]
		p.SetEnable(m, e)
	}

	if p.Whitepoint.Whitepoint == ecolor.WhitepointFromLook {
		p.Whitepoint.Whitepoint = ecolor.WhitepointD65
		if haveLook {
			p.Whitepoint.Whitepoint = look.Whitepoint.Whitepoint
		}
	}

	return p
}

// Build is Apply then Resolve, for callers that pick presets and render
// in one go.
func (l *Library)Build(s Settings) drt.Params {
	return l.Resolve(l.Apply(s))
}
