package render

import(
	"fmt"
	"image"

	"github.com/mdouchement/hdr/tmo"
)

var(
	ReferenceTonemappers = []string{"drago03", "durand", "icam06", "linear", "reinhard05"}
)

func ListReferenceTonemappers() string {
	return fmt.Sprintf("%v", ReferenceTonemappers)
}

// ReferenceTonemap renders a scene-linear buffer with one of the classic
// global/local operators, for side by side comparison with the DRT.
func ReferenceTonemap(name string, b *Buffer) (image.Image, error) {
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("ReferenceTonemap, '%s': %w", name, err)
	}
	op, err := setupTonemapper(name, b)
	if err != nil {
		return nil, err
	}
	return op.Perform(), nil
}

func setupTonemapper(name string, b *Buffer) (tmo.ToneMappingOperator, error) {
	switch name {
	case "drago03":
		return tmo.NewDefaultDrago03(b), nil

	case "durand":
		return tmo.NewDefaultDurand(b), nil

	case "icam06":
		op := tmo.NewDefaultICam06(b)
		op.MaxClipping = 0.999 // keeps specular highlights from blowing out the normalization
		return op, nil

	case "linear":
		return tmo.NewLinear(b), nil

	case "reinhard05":
		return tmo.NewDefaultReinhard05(b), nil
	}
	return nil, fmt.Errorf("no reference tonemapper named '%s' (have %s)", name, ListReferenceTonemappers())
}
