package main

import(
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/nfnt/resize"
	flag "github.com/spf13/pflag"

	"github.com/abworrall/opendrt/pkg/chart"
	"github.com/abworrall/opendrt/pkg/drt"
	"github.com/abworrall/opendrt/pkg/ecolor"
	"github.com/abworrall/opendrt/pkg/preset"
	"github.com/abworrall/opendrt/pkg/render"
)

var(
	fVerbosity int
	fSettings string
	fSaveSettings string
	fMatrices string
	fOutputFilename string
	fHDRFilename string

	fLook string
	fTonescale string
	fLocks []string
	fEnables []string
	fInGamut string
	fInOETF string
	fDisplay string
	fEOTF string
	fPeak float64
	fAutoInput bool

	fWorkers int
	fPreviewWidth int
	fStats bool
	fReference string
	fCharts bool
	fListPresets bool
)

func init() {
	flag.IntVarP(&fVerbosity, "verbose", "v", 0, "how verbose to get")
	flag.StringVarP(&fSettings, "settings", "s", "", "settings file (.yaml or .toml) to start from")
	flag.StringVar(&fSaveSettings, "save-settings", "", "write the final settings to this file")
	flag.StringVar(&fMatrices, "matrices", "", "JSON or YAML file of input/output matrices to use over the builtins")
	flag.StringVarP(&fOutputFilename, "output", "o", "out.png", "name of output image file (ignored for multiple inputs)")
	flag.StringVar(&fHDRFilename, "hdr", "", "also write the scene-linear Rec.709 input as a Radiance .hdr file")

	flag.StringVar(&fLook, "look", "", "apply a look preset (index or name)")
	flag.StringVar(&fTonescale, "tonescale", "", "apply a tonescale preset (index or name, 'look' to follow the look)")
	flag.StringSliceVar(&fLocks, "lock", nil, "modules whose values the presets must not touch")
	flag.StringSliceVar(&fEnables, "enable", nil, "modules to switch on, on top of what the look enables")
	flag.StringVar(&fInGamut, "in-gamut", "", "input gamut")
	flag.StringVar(&fInOETF, "in-oetf", "", "input transfer function")
	flag.StringVar(&fDisplay, "display", "", "display gamut: rec709, p3d65, rec2020")
	flag.StringVar(&fEOTF, "eotf", "", "display transfer function: linear, gamma2.2, gamma2.4, gamma2.6, pq, hlg")
	flag.Float64Var(&fPeak, "peak", 0, "display peak luminance, in nits")
	flag.BoolVar(&fAutoInput, "autoinput", false, "pick input gamut and curve from the camera vendor in the EXIF")

	flag.IntVarP(&fWorkers, "workers", "j", 0, "render goroutines (0 means one per CPU)")
	flag.IntVar(&fPreviewWidth, "preview", 0, "also write a captioned preview this many pixels wide")
	flag.BoolVar(&fStats, "stats", false, "log statistics about the rendered output")
	flag.StringVar(&fReference, "reference", "", "also tonemap with a reference operator, or 'all': "+render.ListReferenceTonemappers())
	flag.BoolVar(&fCharts, "charts", false, "write tonescale.png and huewindows.png")
	flag.BoolVar(&fListPresets, "list-presets", false, "list the look and tonescale presets, and exit")
	flag.Parse()

	log.Printf("opendrt starting\n")
}

func main() {
	lib := preset.DefaultLibrary()
	if fListPresets {
		fmt.Print(lib)
		return
	}

	s := preset.NewSettings()
	if fSettings != "" {
		var err error
		if s, err = preset.LoadSettings(fSettings); err != nil {
			log.Fatal(err)
		}
		log.Printf("Loaded settings from %s\n", fSettings)
	}

	if err := applyFlags(lib, &s); err != nil {
		log.Fatal(err)
	}

	mt := ecolor.MatrixTableOrDefault(fMatrices)
	if fVerbosity > 1 {
		log.Printf("Matrices:-\n%s\n", mt)
	}

	if fSaveSettings != "" {
		if err := s.Save(fSaveSettings); err != nil {
			log.Fatal(err)
		}
		log.Printf("Settings written to '%s'\n", fSaveSettings)
	}

	if fCharts {
		k := drt.NewKernel(lib.Resolve(s), mt)
		writeOrDie(render.WritePNG(chart.Tonescale(k, 800, 500), "tonescale.png"))
		writeOrDie(render.WritePNG(chart.HueWindows(800, 300), "huewindows.png"))
		log.Printf("Charts written: tonescale.png, huewindows.png\n")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	for _, filename := range flag.Args() {
		out := fOutputFilename
		if flag.NArg() > 1 {
			out = strings.TrimSuffix(filename, filepath.Ext(filename)) + "-drt.png"
		}
		if err := process(ctx, lib, mt, s, filename, out); err != nil {
			log.Fatalf("%s: %v\n", filename, err)
		}
	}
}

func writeOrDie(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

// applyFlags overrides the settings with whatever was set on the command
// line. Picking a preset copies its values in, as if it had just been
// selected; otherwise the file's values stand.
func applyFlags(lib *preset.Library, s *preset.Settings) error {
	for _, name := range fLocks {
		m, err := drt.ParseModule(name)
		if err != nil {
			return fmt.Errorf("--lock: %w", err)
		}
		s.Locks.Set(m, true)
	}

	pick := false
	if flag.CommandLine.Changed("look") {
		i, err := lib.LookIndex(fLook)
		if err != nil {
			return fmt.Errorf("--look: %w", err)
		}
		s.LookPreset, pick = i, true
	}
	if flag.CommandLine.Changed("tonescale") {
		i, err := lib.TonescaleIndex(fTonescale)
		if err != nil {
			return fmt.Errorf("--tonescale: %w", err)
		}
		s.TonescalePreset, pick = i, true
	}
	if pick {
		*s = lib.Apply(*s)
	}

	for _, name := range fEnables {
		m, err := drt.ParseModule(name)
		if err != nil {
			return fmt.Errorf("--enable: %w", err)
		}
		e := s.Enable(m)
		e.UI = true
		s.SetEnable(m, e)
	}

	var err error
	if fInGamut != "" {
		if s.InputGamut, err = ecolor.ParseGamut(fInGamut); err != nil {
			return err
		}
	}
	if fInOETF != "" {
		if s.InputOETF, err = ecolor.ParseOETF(fInOETF); err != nil {
			return err
		}
	}
	if fDisplay != "" {
		if s.DisplayGamut, err = ecolor.ParseDisplayGamut(fDisplay); err != nil {
			return err
		}
	}
	if fEOTF != "" {
		if s.EOTF, err = ecolor.ParseEOTF(fEOTF); err != nil {
			return err
		}
	}
	if fPeak > 0 {
		s.Tonescale.PeakLuminance = fPeak
	}

	return nil
}

func process(ctx context.Context, lib *preset.Library, mt *ecolor.MatrixTable, s preset.Settings, filename, out string) error {
	src, ci, err := render.LoadImage(filename)
	if err != nil {
		return err
	}
	log.Printf("Loaded %s, %s\n", src, ci)

	if fAutoInput {
		if g, o, ok := render.SuggestInput(ci); ok {
			s.InputGamut, s.InputOETF = g, o
			log.Printf("Input from %s: %s / %s\n", ci, g, o)
		} else {
			log.Printf("No input suggestion for %s, keeping %s / %s\n", ci, s.InputGamut, s.InputOETF)
		}
	}

	p := lib.Resolve(s)
	if fVerbosity > 0 {
		log.Printf("Final settings:-\n\n%s\n", s.AsYaml())
		log.Printf("%s\n", p)
	}

	k := drt.NewKernel(p, mt)
	if fVerbosity > 0 {
		log.Printf("%s\n", k.Tonescale)
	}

	dst := render.NewBuffer(src.Width, src.Height)
	if err := render.Render(ctx, k, src, dst, fWorkers); err != nil {
		return fmt.Errorf("render: %w", err)
	}

	if err := dst.WritePNG(out); err != nil {
		return err
	}
	log.Printf("Output written '%s'\n", out)

	if fStats {
		log.Printf("%s", render.ComputeStats(dst, p.DisplayGamut))
	}

	if fPreviewWidth > 0 {
		small := resize.Resize(uint(fPreviewWidth), 0, dst.ToNRGBA64(), resize.Lanczos3)
		caption := fmt.Sprintf("%s, %s %s", lookName(lib, s), p.DisplayGamut, p.EOTF)
		previewFilename := strings.TrimSuffix(out, filepath.Ext(out)) + "-preview.png"
		if err := render.WritePNG(chart.Caption(small, caption), previewFilename); err != nil {
			return err
		}
	}

	if fReference == "" && fHDRFilename == "" {
		return nil
	}

	scene, err := render.SceneLinear(src, s.InputGamut, s.InputOETF, mt)
	if err != nil {
		return err
	}

	if fHDRFilename != "" {
		if err := scene.WriteToHDR(fHDRFilename); err != nil {
			return err
		}
	}

	names := []string{fReference}
	if fReference == "all" {
		names = render.ReferenceTonemappers
	} else if fReference == "" {
		names = nil
	}
	for _, name := range names {
		img, err := render.ReferenceTonemap(name, scene)
		if err != nil {
			return err
		}
		refFilename := strings.TrimSuffix(out, filepath.Ext(out)) + "-" + name + ".png"
		if err := render.WritePNG(img, refFilename); err != nil {
			return err
		}
		log.Printf("Reference tonemap %s written '%s'\n", name, refFilename)
	}

	return nil
}

func lookName(lib *preset.Library, s preset.Settings) string {
	name := "no look"
	if look, ok := lib.Look(s.LookPreset); ok {
		name = look.Name
	}
	if ts, ok := lib.Tonescale(s.TonescalePreset); ok {
		name += " / " + ts.Name
	}
	return name
}
