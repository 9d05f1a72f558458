package ecolor

import(
	"fmt"
	"strconv"
	"strings"
)

// A nameTable maps the small integer selectors used throughout the
// pipeline onto a short key (used in settings files) and a display name.
type nameTable struct {
	what  string
	keys  []string
	names []string
}

func (nt nameTable)key(i int) string {
	if i < 0 || i >= len(nt.keys) {
		return strconv.Itoa(i)
	}
	return nt.keys[i]
}

func (nt nameTable)name(i int) string {
	if i < 0 || i >= len(nt.names) {
		return fmt.Sprintf("%s(%d)", nt.what, i)
	}
	return nt.names[i]
}

// parse accepts an index, a short key or a display name (case-insensitive).
func (nt nameTable)parse(s string) (int, error) {
	s = strings.TrimSpace(s)
	if i, err := strconv.Atoi(s); err == nil {
		return i, nil
	}
	for i:=0; i<len(nt.keys); i++ {
		if strings.EqualFold(s, nt.keys[i]) || strings.EqualFold(s, nt.names[i]) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown %s '%s'", nt.what, s)
}

var(
	gamutNames = nameTable{
		what: "gamut",
		keys: []string{"xyz", "ap0", "ap1", "p3d65", "rec2020", "rec709", "awg3", "awg4", "rwg",
			"sgamut3", "sgamut3cine", "vgamut", "bmdwg", "egamut", "egamut2", "dwg"},
		names: []string{"XYZ", "ACES 2065-1", "ACEScg", "P3D65", "Rec.2020", "Rec.709",
			"Arri Wide Gamut 3", "Arri Wide Gamut 4", "Red Wide Gamut RGB", "Sony SGamut3",
			"Sony SGamut3Cine", "Panasonic V-Gamut", "Blackmagic Wide Gamut", "Filmlight E-Gamut",
			"Filmlight E-Gamut2", "DaVinci Wide Gamut"},
	}

	oetfNames = nameTable{
		what:  "input transfer function",
		keys:  []string{"linear", "di", "tlog", "acescct", "logc3", "logc4", "log3g10", "vlog", "slog3", "flog2"},
		names: []string{"Linear", "DaVinci Intermediate", "Filmlight T-Log", "ACEScct", "Arri LogC3",
			"Arri LogC4", "Red Log3G10", "Panasonic V-Log", "Sony S-Log3", "Fuji F-Log2"},
	}

	eotfNames = nameTable{
		what:  "display transfer function",
		keys:  []string{"linear", "gamma2.2", "gamma2.4", "gamma2.6", "pq", "hlg"},
		names: []string{"Linear", "2.2 Power sRGB Display", "2.4 Power Rec.1886", "2.6 Power DCI", "ST 2084 PQ", "HLG"},
	}

	displayNames = nameTable{
		what:  "display gamut",
		keys:  []string{"rec709", "p3d65", "rec2020"},
		names: []string{"Rec.709", "P3-D65", "Rec.2020 (P3 Limited)"},
	}

	whitepointNames = nameTable{
		what:  "creative whitepoint",
		keys:  []string{"d65", "d60", "d55", "d50", "look"},
		names: []string{"D65", "D60", "D55", "D50", "Use Look Preset"},
	}
)

// Gamut selects the camera / working gamut of the input image.
type Gamut int

const(
	GamutXYZ Gamut = iota
	GamutAP0
	GamutAP1
	GamutP3D65
	GamutRec2020
	GamutRec709
	GamutAWG3
	GamutAWG4
	GamutRWG
	GamutSGamut3
	GamutSGamut3Cine
	GamutVGamut
	GamutBMDWG
	GamutEGamut
	GamutEGamut2
	GamutDWG
	NumGamuts = int(GamutDWG) + 1
)

// DisplayGamut is indexed in the order the choices are presented.
type DisplayGamut int

const(
	DisplayRec709 DisplayGamut = iota
	DisplayP3D65
	DisplayRec2020
	NumDisplayGamuts = int(DisplayRec2020) + 1
)

// Whitepoint is the creative whitepoint selector; WhitepointFromLook is
// replaced by the look preset's whitepoint before the pipeline runs.
type Whitepoint int

const(
	WhitepointD65 Whitepoint = iota
	WhitepointD60
	WhitepointD55
	WhitepointD50
	WhitepointFromLook
)

func (g Gamut)String() string        { return gamutNames.name(int(g)) }
func (o OETF)String() string         { return oetfNames.name(int(o)) }
func (e EOTF)String() string         { return eotfNames.name(int(e)) }
func (d DisplayGamut)String() string { return displayNames.name(int(d)) }
func (w Whitepoint)String() string   { return whitepointNames.name(int(w)) }

func ParseGamut(s string) (Gamut, error)               { i, err := gamutNames.parse(s); return Gamut(i), err }
func ParseOETF(s string) (OETF, error)                 { i, err := oetfNames.parse(s); return OETF(i), err }
func ParseEOTF(s string) (EOTF, error)                 { i, err := eotfNames.parse(s); return EOTF(i), err }
func ParseDisplayGamut(s string) (DisplayGamut, error) { i, err := displayNames.parse(s); return DisplayGamut(i), err }
func ParseWhitepoint(s string) (Whitepoint, error)     { i, err := whitepointNames.parse(s); return Whitepoint(i), err }

// Settings files carry the short keys; yaml.v2 and go-toml both pick
// these up via encoding.TextMarshaler / TextUnmarshaler.
func (g Gamut)MarshalText() ([]byte, error)        { return []byte(gamutNames.key(int(g))), nil }
func (o OETF)MarshalText() ([]byte, error)         { return []byte(oetfNames.key(int(o))), nil }
func (e EOTF)MarshalText() ([]byte, error)         { return []byte(eotfNames.key(int(e))), nil }
func (d DisplayGamut)MarshalText() ([]byte, error) { return []byte(displayNames.key(int(d))), nil }
func (w Whitepoint)MarshalText() ([]byte, error)   { return []byte(whitepointNames.key(int(w))), nil }

func (g *Gamut)UnmarshalText(b []byte) (err error)        { *g, err = ParseGamut(string(b)); return }
func (o *OETF)UnmarshalText(b []byte) (err error)         { *o, err = ParseOETF(string(b)); return }
func (e *EOTF)UnmarshalText(b []byte) (err error)         { *e, err = ParseEOTF(string(b)); return }
func (d *DisplayGamut)UnmarshalText(b []byte) (err error) { *d, err = ParseDisplayGamut(string(b)); return }
func (w *Whitepoint)UnmarshalText(b []byte) (err error)   { *w, err = ParseWhitepoint(string(b)); return }

// yaml.v2 only consults TextUnmarshaler for string scalars, so numeric
// selectors in YAML go through here as well.
func unmarshalYAMLText(unmarshal func(interface{}) error, into func([]byte) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	return into([]byte(s))
}

func (g *Gamut)UnmarshalYAML(u func(interface{}) error) error        { return unmarshalYAMLText(u, g.UnmarshalText) }
func (o *OETF)UnmarshalYAML(u func(interface{}) error) error         { return unmarshalYAMLText(u, o.UnmarshalText) }
func (e *EOTF)UnmarshalYAML(u func(interface{}) error) error         { return unmarshalYAMLText(u, e.UnmarshalText) }
func (d *DisplayGamut)UnmarshalYAML(u func(interface{}) error) error { return unmarshalYAMLText(u, d.UnmarshalText) }
func (w *Whitepoint)UnmarshalYAML(u func(interface{}) error) error   { return unmarshalYAMLText(u, w.UnmarshalText) }
