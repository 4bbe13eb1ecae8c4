package ev5

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arundhati-c/datatapevalidation/pkg/codes"
	"github.com/arundhati-c/datatapevalidation/pkg/ev5/report"
	"github.com/arundhati-c/datatapevalidation/pkg/ev5/validator"
	"github.com/arundhati-c/datatapevalidation/pkg/schema"
)

const sampleTape = `# crash test export
-- TEST DATA --
X|C|Y
X|A|Y
-- VEHICLE --
V|F
`

func sampleSchema(t *testing.T) schema.Schema {
	t.Helper()
	s, err := schema.FromRaw(schema.Schema{
		"TEST DATA": {"SPEED": 2},
		"VEHICLE":   {"IMPACT": 2},
	})
	if err != nil {
		t.Fatalf("FromRaw() error = %v", err)
	}
	return s
}

func sampleIndex() codes.Index {
	return codes.BuildIndex([]codes.CatalogRecord{
		{CodeName: "SPEED", Code: "A"},
		{CodeName: "SPEED", Code: "B"},
		{CodeName: "IMPACT", Code: "F"},
	})
}

func TestParseAndValidateBytes(t *testing.T) {
	res, err := ParseAndValidateBytes([]byte(sampleTape), sampleSchema(t), sampleIndex(), validator.DefaultOptions())
	if err != nil {
		t.Fatalf("ParseAndValidateBytes() error = %v", err)
	}

	if res.CheckedFields != 3 {
		t.Errorf("CheckedFields = %d, want 3", res.CheckedFields)
	}
	if len(res.Findings) != 1 {
		t.Fatalf("Findings = %+v, want one", res.Findings)
	}
	f := res.Findings[0]
	if f.Block != "TEST DATA" || f.Value != "C" || f.Kind != report.KindCode {
		t.Errorf("finding = %+v, want the invalid SPEED code C", f)
	}
}

func TestParseAndValidateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tape.ev5")
	if err := os.WriteFile(path, []byte(sampleTape), 0o644); err != nil {
		t.Fatalf("failed to write tape: %v", err)
	}

	res, err := ParseAndValidate(path, sampleSchema(t), sampleIndex(), validator.DefaultOptions())
	if err != nil {
		t.Fatalf("ParseAndValidate() error = %v", err)
	}
	if !res.Invalid() {
		t.Error("Invalid() = false, want true")
	}
}

func TestParseThenValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tape.ev5")
	if err := os.WriteFile(path, []byte(sampleTape), 0o644); err != nil {
		t.Fatalf("failed to write tape: %v", err)
	}

	doc, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if doc.BlockCount() != 2 {
		t.Errorf("BlockCount() = %d, want 2", doc.BlockCount())
	}

	res := Validate(doc, sampleSchema(t), sampleIndex(), validator.DefaultOptions())
	if len(res.Findings) != 1 {
		t.Errorf("Findings = %+v, want one", res.Findings)
	}
}
