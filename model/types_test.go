package model

import (
	"reflect"
	"testing"
)

func TestProbabilitiesRoundTrip(t *testing.T) {
	original := Probabilities{
		"Normal": 0.1,
		"Stone":  0.85,
		"Cyst":   0.03,
		"Tumor":  0.02,
	}

	value, err := original.Value()
	if err != nil {
		t.Fatalf("Value() failed: %v", err)
	}

	raw, ok := value.([]byte)
	if !ok {
		t.Fatalf("Value() should produce []byte, got %T", value)
	}

	var restored Probabilities
	if err := restored.Scan(raw); err != nil {
		t.Fatalf("Scan() failed: %v", err)
	}

	if !reflect.DeepEqual(original, restored) {
		t.Errorf("round trip changed the vector: got %v, want %v", restored, original)
	}
}

func TestProbabilitiesScanNil(t *testing.T) {
	var p Probabilities
	if err := p.Scan(nil); err != nil {
		t.Fatalf("Scan(nil) failed: %v", err)
	}
	if p == nil || len(p) != 0 {
		t.Errorf("Scan(nil) should yield an empty map, got %v", p)
	}
}

func TestProbabilitiesScanEmptyBytes(t *testing.T) {
	var p Probabilities
	if err := p.Scan([]byte{}); err != nil {
		t.Fatalf("Scan(empty) failed: %v", err)
	}
	if p == nil || len(p) != 0 {
		t.Errorf("Scan(empty) should yield an empty map, got %v", p)
	}
}

func TestProbabilitiesScanWrongType(t *testing.T) {
	var p Probabilities
	if err := p.Scan("not bytes"); err == nil {
		t.Error("expected an error scanning a non-byte value")
	}
}

func TestProbabilitiesValueEmpty(t *testing.T) {
	value, err := Probabilities{}.Value()
	if err != nil {
		t.Fatalf("Value() failed: %v", err)
	}
	if string(value.([]byte)) != "{}" {
		t.Errorf("empty vector should serialize as {}, got %s", value)
	}
}

func TestJSONMapRoundTrip(t *testing.T) {
	original := JSONMap{
		"profile":    map[string]interface{}{"age": float64(42), "bmi": 24.5},
		"conditions": []interface{}{"diabetes"},
	}

	value, err := original.Value()
	if err != nil {
		t.Fatalf("Value() failed: %v", err)
	}

	var restored JSONMap
	if err := restored.Scan(value.([]byte)); err != nil {
		t.Fatalf("Scan() failed: %v", err)
	}

	if !reflect.DeepEqual(original, restored) {
		t.Errorf("round trip changed the map: got %v, want %v", restored, original)
	}
}

func TestJSONMapScanNil(t *testing.T) {
	var m JSONMap
	if err := m.Scan(nil); err != nil {
		t.Fatalf("Scan(nil) failed: %v", err)
	}
	if m == nil || len(m) != 0 {
		t.Errorf("Scan(nil) should yield an empty map, got %v", m)
	}
}
