package ecolor

import(
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/abworrall/opendrt/pkg/emath"
)

// MatrixTable holds every gamut matrix the pipeline needs. It is built
// once and then only read, so one table can be shared by any number of
// kernels. Lookups never fail: unknown indices give the identity matrix.
type MatrixTable struct {
	inputs  map[int]emath.Mat3
	outputs map[int]emath.Mat3
	cwp     map[DisplayGamut][4]emath.Mat3

	Source string // Where the overrides came from, if anywhere
}

// NewMatrixTable returns the built-in tables.
func NewMatrixTable() *MatrixTable {
	mt := MatrixTable{
		inputs:  map[int]emath.Mat3{},
		outputs: map[int]emath.Mat3{},
		cwp: map[DisplayGamut][4]emath.Mat3{
			DisplayRec709:  cwpRec709,
			DisplayP3D65:   cwpP3,
			DisplayRec2020: cwpP3,
		},
		Source: "builtin",
	}
	for i, m := range builtinInputMatrices {
		mt.inputs[i] = m
	}
	for i, m := range builtinOutputMatrices {
		mt.outputs[i] = m
	}
	return &mt
}

func (mt *MatrixTable)Input(g Gamut) emath.Mat3 {
	if m, exists := mt.inputs[int(g)]; exists {
		return m
	}
	return emath.Identity()
}

func (mt *MatrixTable)Output(d DisplayGamut) emath.Mat3 {
	if m, exists := mt.outputs[int(d)]; exists {
		return m
	}
	return emath.Identity()
}

// CreativeWhitepoint expects WhitepointFromLook to have been resolved already.
func (mt *MatrixTable)CreativeWhitepoint(d DisplayGamut, w Whitepoint) emath.Mat3 {
	set, exists := mt.cwp[d]
	if !exists || w < 0 || int(w) >= len(set) {
		return emath.Identity()
	}
	return set[w]
}

func (mt *MatrixTable)String() string {
	str := fmt.Sprintf("MatrixTable[%s] {\n", mt.Source)
	for _, i := range sortedKeys(mt.inputs) {
		str += fmt.Sprintf("  input %2d %-22s row sums %s\n", i, Gamut(i), mt.inputs[i].RowSums())
	}
	for _, i := range sortedKeys(mt.outputs) {
		str += fmt.Sprintf("  output %d %s\n", i, DisplayGamut(i))
	}
	return str + "}\n"
}

func sortedKeys(m map[int]emath.Mat3) []int {
	keys := []int{}
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// The matrix file: top level `input_gamuts` and `output_gamuts`, each
// mapping a stringified index to an object with a 3x3 `matrix`.
type matrixEntry struct {
	Name   string      `json:"name,omitempty" yaml:"name,omitempty"`
	Matrix [][]float64 `json:"matrix" yaml:"matrix"`
}

type matrixFile struct {
	InputGamuts  map[string]matrixEntry `json:"input_gamuts" yaml:"input_gamuts"`
	OutputGamuts map[string]matrixEntry `json:"output_gamuts" yaml:"output_gamuts"`
}

// LoadMatrixTable starts from the built-in tables and replaces any
// entries the file provides. JSON files are read as JSON, anything else
// as YAML.
func LoadMatrixTable(filename string) (*MatrixTable, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("LoadMatrixTable, read '%s': %w", filename, err)
	}

	mf := matrixFile{}
	if strings.EqualFold(filepath.Ext(filename), ".json") {
		err = json.Unmarshal(b, &mf)
	} else {
		err = yaml.UnmarshalStrict(b, &mf)
	}
	if err != nil {
		return nil, fmt.Errorf("LoadMatrixTable, parse '%s': %w", filename, err)
	}
	if len(mf.InputGamuts) + len(mf.OutputGamuts) == 0 {
		return nil, fmt.Errorf("LoadMatrixTable, '%s': no matrices found", filename)
	}

	mt := NewMatrixTable()
	mt.Source = filename
	if err := mergeMatrices(mt.inputs, mf.InputGamuts); err != nil {
		return nil, fmt.Errorf("LoadMatrixTable, '%s' input_gamuts: %w", filename, err)
	}
	if err := mergeMatrices(mt.outputs, mf.OutputGamuts); err != nil {
		return nil, fmt.Errorf("LoadMatrixTable, '%s' output_gamuts: %w", filename, err)
	}

	return mt, nil
}

func mergeMatrices(dst map[int]emath.Mat3, entries map[string]matrixEntry) error {
	for k, e := range entries {
		i, err := strconv.Atoi(strings.TrimSpace(k))
		if err != nil || i < 0 {
			return fmt.Errorf("bad index '%s'", k)
		}
		m, err := toMat3(e.Matrix)
		if err != nil {
			return fmt.Errorf("entry '%s': %w", k, err)
		}
		dst[i] = m
	}
	return nil
}

func toMat3(rows [][]float64) (emath.Mat3, error) {
	m := emath.Mat3{}
	if len(rows) != 3 {
		return m, fmt.Errorf("matrix has %d rows, want 3", len(rows))
	}
	for r:=0; r<3; r++ {
		if len(rows[r]) != 3 {
			return m, fmt.Errorf("matrix row %d has %d columns, want 3", r, len(rows[r]))
		}
		for c:=0; c<3; c++ {
			m[3*r+c] = rows[r][c]
		}
	}
	if _, err := m.Inverse(); err != nil {
		return m, fmt.Errorf("singular matrix: %w", err)
	}
	return m, nil
}

// MatrixTableOrDefault never fails; a missing or broken matrix file is
// logged and the built-in tables are used instead.
func MatrixTableOrDefault(filename string) *MatrixTable {
	if filename == "" {
		return NewMatrixTable()
	}
	mt, err := LoadMatrixTable(filename)
	if err != nil {
		log.Printf("using builtin matrices: %v", err)
		return NewMatrixTable()
	}
	return mt
}
