// drtcurve prints the tonescale of a settings file (or of every
// tonescale preset) as a table of scene stops against display nits.
package main

import(
	"fmt"
	"io"
	"log"
	"math"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/abworrall/opendrt/pkg/chart"
	"github.com/abworrall/opendrt/pkg/drt"
	"github.com/abworrall/opendrt/pkg/ecolor"
	"github.com/abworrall/opendrt/pkg/preset"
	"github.com/abworrall/opendrt/pkg/render"
)

var(
	fSettings string
	fLook string
	fTonescale string
	fPeak float64
	fEOTF string
	fAll bool
	fChart string
	fHueChart string
	fDump string
)

func init() {
	flag.StringVarP(&fSettings, "settings", "s", "", "settings file (.yaml or .toml)")
	flag.StringVar(&fLook, "look", "", "apply a look preset (index or name)")
	flag.StringVar(&fTonescale, "tonescale", "", "apply a tonescale preset (index or name)")
	flag.Float64Var(&fPeak, "peak", 0, "display peak luminance, in nits")
	flag.StringVar(&fEOTF, "eotf", "", "display transfer function")
	flag.BoolVar(&fAll, "all", false, "tabulate every tonescale preset side by side")
	flag.StringVar(&fChart, "chart", "", "also draw the curve into this PNG")
	flag.StringVar(&fHueChart, "hue-chart", "", "draw the hue windows into this PNG")
	flag.StringVar(&fDump, "dump", "", "print the resolved settings as 'yaml' or 'toml'")
	flag.Parse()
}

func main() {
	lib := preset.DefaultLibrary()

	s := preset.NewSettings()
	if fSettings != "" {
		var err error
		if s, err = preset.LoadSettings(fSettings); err != nil {
			log.Fatal(err)
		}
	}

	if fLook != "" {
		i, err := lib.LookIndex(fLook)
		if err != nil {
			log.Fatal(err)
		}
		s.LookPreset = i
	}
	if fTonescale != "" {
		i, err := lib.TonescaleIndex(fTonescale)
		if err != nil {
			log.Fatal(err)
		}
		s.TonescalePreset = i
	}
	if fLook != "" || fTonescale != "" {
		s = lib.Apply(s)
	}
	if fPeak > 0 {
		s.Tonescale.PeakLuminance = fPeak
	}
	if fEOTF != "" {
		e, err := ecolor.ParseEOTF(fEOTF)
		if err != nil {
			log.Fatal(err)
		}
		s.EOTF = e
	}

	switch fDump {
	case "":
	case "yaml": fmt.Println(s.AsYaml())
	case "toml": fmt.Println(s.AsToml())
	default:
		log.Fatalf("--dump: no format named '%s'", fDump)
	}

	curves := map[string]drt.Tonescale{}
	names := []string{}
	if fAll {
		for i:=1; i<=len(lib.Tonescales); i++ {
			ts := s
			ts.TonescalePreset = i
			ts = lib.Apply(ts)
			name := lib.Tonescales[i-1].Name
			curves[name] = drt.NewTonescale(ts.Tonescale, ts.EOTF)
			names = append(names, name)
		}
	} else {
		curves["current"] = drt.NewTonescale(s.Tonescale, s.EOTF)
		names = append(names, "current")
	}

	printTable(os.Stdout, names, curves)

	if fChart != "" {
		k := drt.NewKernel(lib.Resolve(s), ecolor.NewMatrixTable())
		if err := render.WritePNG(chart.Tonescale(k, 800, 500), fChart); err != nil {
			log.Fatal(err)
		}
	}
	if fHueChart != "" {
		if err := render.WritePNG(chart.HueWindows(800, 300), fHueChart); err != nil {
			log.Fatal(err)
		}
	}
}

func printTable(f io.Writer, names []string, curves map[string]drt.Tonescale) {
	fmt.Fprintf(f, "%6s %10s", "stops", "scene")
	for _, name := range names {
		fmt.Fprintf(f, " %20.20s", name)
	}
	fmt.Fprintln(f)

	for stops:=-8; stops<=10; stops++ {
		x := 0.18 * math.Pow(2, float64(stops))
		fmt.Fprintf(f, "%+6d %10.5f", stops, x)
		for _, name := range names {
			ts := curves[name]
			fmt.Fprintf(f, " %20.4f", ts.Apply(x) / ts.DisplayScale * 100)
		}
		fmt.Fprintln(f)
	}
}
