package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestParseLevels(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []uint8
		wantErr bool
	}{
		{name: "empty", input: "", want: nil},
		{name: "single level", input: "8", want: []uint8{8}},
		{name: "multiple levels", input: "4,6,8", want: []uint8{4, 6, 8}},
		{name: "whitespace tolerated", input: " 4, 6 ,8 ", want: []uint8{4, 6, 8}},
		{name: "non-numeric", input: "4,six", wantErr: true},
		{name: "out of range", input: "300", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLevels(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseLevels(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLevels(%q) unexpected error: %v", tt.input, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseLevels(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:   "valid config",
			modify: func(c *Config) { c.InputFile = "city.osm.pbf" },
		},
		{
			name:    "missing input file",
			modify:  func(c *Config) {},
			wantErr: true,
		},
		{
			name: "zero workers",
			modify: func(c *Config) {
				c.InputFile = "city.osm.pbf"
				c.Workers = 0
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultProfile(t *testing.T) {
	profile := DefaultProfile()
	if len(profile.StreetClasses) == 0 {
		t.Error("expected default street classes")
	}
	if !reflect.DeepEqual(profile.AdminLevels, []uint8{4, 6, 8, 9, 10}) {
		t.Errorf("AdminLevels = %v, want [4 6 8 9 10]", profile.AdminLevels)
	}
}

func TestLoadProfile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profile.yaml")
	content := `
street_classes:
  - motorway
  - trunk
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	profile, err := LoadProfile(path)
	if err != nil {
		t.Fatalf("LoadProfile: %v", err)
	}
	if !reflect.DeepEqual(profile.StreetClasses, []string{"motorway", "trunk"}) {
		t.Errorf("StreetClasses = %v, want [motorway trunk]", profile.StreetClasses)
	}
	// Fields absent from the file keep their defaults.
	if !reflect.DeepEqual(profile.AdminLevels, DefaultProfile().AdminLevels) {
		t.Errorf("AdminLevels = %v, want defaults", profile.AdminLevels)
	}
}

func TestLoadProfileErrors(t *testing.T) {
	if _, err := LoadProfile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("street_classes: {not a list"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadProfile(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}
