package fleet

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vehicles.json")
	payload := `[
		{"id": 1, "capacity": 10, "color": "red", "icon": "truck"},
		{"id": 2, "capacity": 20, "color": "blue", "icon": "van"}
	]`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}

	vehicles, err := LoadFromJSON(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vehicles) != 2 {
		t.Fatalf("vehicles = %d, want 2", len(vehicles))
	}
	if vehicles[0].ID != 1 || vehicles[0].Capacity != 10 || vehicles[0].Color != "red" {
		t.Fatalf("vehicles[0] = %+v", vehicles[0])
	}
}

func TestLoadFromJSONMissingFileUsesDefault(t *testing.T) {
	vehicles, err := LoadFromJSON(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vehicles) != len(Default()) {
		t.Fatalf("vehicles = %d, want default fleet", len(vehicles))
	}
}

func TestLoadFromJSONRejectsBadConfig(t *testing.T) {
	cases := map[string]string{
		"empty list":   `[]`,
		"bad id":       `[{"id": 0, "capacity": 5}]`,
		"duplicate id": `[{"id": 1, "capacity": 5}, {"id": 1, "capacity": 7}]`,
		"bad capacity": `[{"id": 1, "capacity": 0}]`,
		"corrupt json": `{not json`,
	}

	for name, payload := range cases {
		path := filepath.Join(t.TempDir(), "vehicles.json")
		if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadFromJSON(path); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}
