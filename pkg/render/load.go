package render

import(
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/mdouchement/hdr/codec/rgbe"
	"github.com/rwcarlsen/goexif/exif"
	"golang.org/x/image/tiff"

	"github.com/abworrall/opendrt/pkg/ecolor"
)

// CameraInfo is what the EXIF block says about where an image came from.
// Empty when there was no EXIF.
type CameraInfo struct {
	Make  string
	Model string
}

func (ci CameraInfo)String() string {
	if ci.Make == "" && ci.Model == "" {
		return "(unknown camera)"
	}
	return strings.TrimSpace(ci.Make + " " + ci.Model)
}

// LoadImage reads a TIFF, Radiance HDR or PNG file into a float buffer.
// For TIFFs it also tries the EXIF block; missing EXIF is not an error.
func LoadImage(filename string) (*Buffer, CameraInfo, error) {
	ci := CameraInfo{}

	reader, err := os.Open(filename)
	if err != nil {
		return nil, ci, fmt.Errorf("LoadImage, open+r '%s': %w", filename, err)
	}
	defer reader.Close()

	var img image.Image
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".tif", ".tiff":
		if ci, err = loadCameraInfo(filename); err != nil {
			log.Printf("LoadImage, no EXIF in '%s': %v", filename, err)
		}
		img, err = tiff.Decode(reader)

	case ".hdr":
		img, err = rgbe.Decode(reader)

	case ".png":
		img, err = png.Decode(reader)

	default:
		return nil, ci, fmt.Errorf("LoadImage, '%s': unsupported file type", filename)
	}

	if err != nil {
		return nil, ci, fmt.Errorf("LoadImage, decoding '%s': %w", filename, err)
	}

	return FromImage(img), ci, nil
}

func loadCameraInfo(filename string) (CameraInfo, error) {
	ci := CameraInfo{}

	reader, err := os.Open(filename)
	if err != nil {
		return ci, fmt.Errorf("open+r exif '%s': %w", filename, err)
	}
	defer reader.Close()

	ex, err := exif.Decode(reader)
	if err != nil {
		return ci, fmt.Errorf("exif parsing '%s': %w", filename, err)
	}

	if tag, err := ex.Get(exif.Make); err == nil {
		ci.Make, _ = tag.StringVal()
	}
	if tag, err := ex.Get(exif.Model); err == nil {
		ci.Model, _ = tag.StringVal()
	}
	return ci, nil
}

// SuggestInput guesses the log encoding and gamut a camera vendor's
// footage is usually delivered in. ok is false for vendors we don't know.
func SuggestInput(ci CameraInfo) (ecolor.Gamut, ecolor.OETF, bool) {
	vendor := strings.ToLower(strings.TrimSpace(ci.Make))
	switch {
	case strings.HasPrefix(vendor, "arri"):
		if strings.Contains(strings.ToLower(ci.Model), "35") {
			return ecolor.GamutAWG4, ecolor.OETFLogC4, true // Alexa 35
		}
		return ecolor.GamutAWG3, ecolor.OETFLogC3, true
	case strings.HasPrefix(vendor, "sony"):
		return ecolor.GamutSGamut3Cine, ecolor.OETFSLog3, true
	case strings.HasPrefix(vendor, "panasonic"):
		return ecolor.GamutVGamut, ecolor.OETFVLog, true
	case vendor == "red" || strings.HasPrefix(vendor, "red "):
		return ecolor.GamutRWG, ecolor.OETFLog3G10, true
	case strings.HasPrefix(vendor, "fujifilm"):
		return ecolor.GamutRec2020, ecolor.OETFFLog2, true
	}
	return ecolor.GamutDWG, ecolor.OETFDaVinciIntermediate, false
}
