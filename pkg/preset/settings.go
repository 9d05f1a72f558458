package preset

import(
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v2"

	"github.com/abworrall/opendrt/pkg/drt"
	"github.com/abworrall/opendrt/pkg/ecolor"
)

// Locks stop a preset from overwriting a module's values. They never
// touch enables.
type Locks struct {
	HighContrast bool
	LowContrast  bool
	PurityLow    bool
	MidPurity    bool
	Brilliance   bool
	HueShiftRGB  bool
	HueShiftCMY  bool
	HueContrast  bool
}

func (l Locks)Locked(m drt.Module) bool {
	switch m {
	case drt.HighContrast: return l.HighContrast
	case drt.LowContrast:  return l.LowContrast
	case drt.PurityLow:    return l.PurityLow
	case drt.MidPurity:    return l.MidPurity
	case drt.Brilliance:   return l.Brilliance
	case drt.HueShiftRGB:  return l.HueShiftRGB
	case drt.HueShiftCMY:  return l.HueShiftCMY
	case drt.HueContrast:  return l.HueContrast
	}
	return false
}

func (l *Locks)Set(m drt.Module, v bool) {
	switch m {
	case drt.HighContrast: l.HighContrast = v
	case drt.LowContrast:  l.LowContrast = v
	case drt.PurityLow:    l.PurityLow = v
	case drt.MidPurity:    l.MidPurity = v
	case drt.Brilliance:   l.Brilliance = v
	case drt.HueShiftRGB:  l.HueShiftRGB = v
	case drt.HueShiftCMY:  l.HueShiftCMY = v
	case drt.HueContrast:  l.HueContrast = v
	}
}

// Settings is what a user edits: the preset selections, the locks, and
// the scalar values (copies of whatever preset was last applied, plus any
// hand edits). The Preset half of each Enable is ignored here; it gets
// filled in by Resolve.
type Settings struct {
	LookPreset      int
	TonescalePreset int
	Locks           Locks

	drt.Params      `yaml:",inline"`
}

// NewSettings returns the values a fresh instance starts with: Default
// look, DaVinci Wide Gamut / Intermediate in, Rec.709 gamma 2.4 out.
func NewSettings() Settings {
	return Settings{
		LookPreset:      0,
		TonescalePreset: 0,
		Params: drt.Params{
			InputGamut:   ecolor.GamutDWG,
			InputOETF:    ecolor.OETFDaVinciIntermediate,
			DisplayGamut: ecolor.DisplayRec709,
			EOTF:         ecolor.EOTFGamma24,
			Clamp:        true,

			Tonescale: drt.TonescaleParams{
				PeakLuminance: 100,
				GreyBoost:     0.13,
				HDRPurity:     0.5,
				GreyLuminance: 11.1,
				Contrast:      1.4,
				Shoulder:      0.5,
				Toe:           0.003,
				Offset:        0.005,
			},
			RenderSpace: drt.RenderSpaceParams{Strength: 0.35, RedWeight: 0.25, BlueWeight: 0.55},
			Whitepoint:  drt.WhitepointParams{Whitepoint: ecolor.WhitepointFromLook, Range: 0.5},

			HighContrast: drt.HighContrastParams{Amount: 0, Pivot: 1, Strength: 4},
			LowContrast:  drt.LowContrastParams{Amount: 1, Width: 0.5, PerChannel: 1},
			Purity:       drt.PurityParams{R: 0.5, G: 2, B: 2, RangeLow: 0.2, RangeHigh: 0.8},
			MidPurity:    drt.MidPurityParams{Low: 0.2, LowStrength: 0.5, High: -0.8, HighStrength: 0.3},
			Brilliance:   drt.BrillianceParams{R: -0.5, G: -0.4, B: -0.2, Range: 0.66},
			HueShiftRGB:  drt.HueShiftRGBParams{R: 0.35, G: 0.25, B: 0.5, Range: 0.6},
			HueShiftCMY:  drt.HueShiftCMYParams{C: 0.2, M: 0.2, Y: 0.2},
			HueContrast:  drt.HueContrastParams{R: 0.6},

			Filmic: drt.FilmicParams{SourceStops: 14, TargetStops: 10, DynamicRange: 5, Strength: 0},
		},
	}
}

func newSettingsFromYaml(b []byte) (Settings, error) {
	s := NewSettings()
	err := yaml.UnmarshalStrict(b, &s)
	return s, err
}

func newSettingsFromToml(b []byte) (Settings, error) {
	s := NewSettings()
	err := toml.Unmarshal(b, &s)
	return s, err
}

// LoadSettings reads a settings file over the defaults; fields the file
// leaves out keep their NewSettings value. TOML if the extension says
// so, YAML otherwise.
func LoadSettings(filename string) (Settings, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return Settings{}, fmt.Errorf("LoadSettings, read '%s': %w", filename, err)
	}

	var s Settings
	if isToml(filename) {
		s, err = newSettingsFromToml(b)
	} else {
		s, err = newSettingsFromYaml(b)
	}
	if err != nil {
		return Settings{}, fmt.Errorf("LoadSettings, parse '%s': %w", filename, err)
	}
	return s, nil
}

func isToml(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".toml")
}

func (s Settings)AsYaml() string {
	b, err := yaml.Marshal(s)
	if err != nil {
		log.Fatalf("Can't marshal settings yaml: %v\n", err)
	}
	return string(b)
}

func (s Settings)AsToml() string {
	b, err := toml.Marshal(s)
	if err != nil {
		log.Fatalf("Can't marshal settings toml: %v\n", err)
	}
	return string(b)
}

// Save writes the settings in the format the extension implies.
func (s Settings)Save(filename string) error {
	str := s.AsYaml()
	if isToml(filename) {
		str = s.AsToml()
	}
	if err := os.WriteFile(filename, []byte(str), 0644); err != nil {
		return fmt.Errorf("Save, write '%s': %w", filename, err)
	}
	return nil
}
