// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package serializer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"site.json", FormatJSON},
		{"SITE.JSON", FormatJSON},
		{"site.yaml", FormatYAML},
		{"dir/site.yml", FormatYAML},
		{"site.conf", FormatYAML},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := FormatFromPath(tt.path); got != tt.want {
				t.Errorf("FormatFromPath(%q) = %s, want %s", tt.path, got, tt.want)
			}
		})
	}
}

func TestNewReader(t *testing.T) {
	tests := []struct {
		name    string
		format  Format
		input   *strings.Reader
		wantErr bool
	}{
		{"json", FormatJSON, strings.NewReader("{}"), false},
		{"yaml", FormatYAML, strings.NewReader("a: b"), false},
		{"table", FormatTable, strings.NewReader(""), true},
		{"unknown", Format("xml"), strings.NewReader(""), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewReader(tt.format, tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewReader() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	if _, err := NewReader(FormatJSON, nil); err == nil {
		t.Error("expected error for nil input")
	}
}

func TestReader_Deserialize(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		r, err := NewReader(FormatJSON, strings.NewReader(`{"name":"a","value":1}`))
		if err != nil {
			t.Fatal(err)
		}
		var cfg testConfig
		if err := r.Deserialize(&cfg); err != nil {
			t.Fatalf("Deserialize failed: %v", err)
		}
		if cfg.Name != "a" || cfg.Value != 1 {
			t.Errorf("unexpected result: %+v", cfg)
		}
	})

	t.Run("yaml", func(t *testing.T) {
		r, err := NewReader(FormatYAML, strings.NewReader("name: b\nvalue: 2\n"))
		if err != nil {
			t.Fatal(err)
		}
		var cfg testConfig
		if err := r.Deserialize(&cfg); err != nil {
			t.Fatalf("Deserialize failed: %v", err)
		}
		if cfg.Name != "b" || cfg.Value != 2 {
			t.Errorf("unexpected result: %+v", cfg)
		}
	})

	t.Run("unknown json field", func(t *testing.T) {
		r, _ := NewReader(FormatJSON, strings.NewReader(`{"nmae":"typo"}`))
		var cfg testConfig
		if err := r.Deserialize(&cfg); err == nil {
			t.Error("expected error for unknown field")
		}
	})

	t.Run("unknown yaml field", func(t *testing.T) {
		r, _ := NewReader(FormatYAML, strings.NewReader("nmae: typo\n"))
		var cfg testConfig
		if err := r.Deserialize(&cfg); err == nil {
			t.Error("expected error for unknown field")
		}
	})

	t.Run("nil reader", func(t *testing.T) {
		var r *Reader
		if err := r.Deserialize(&testConfig{}); err == nil {
			t.Error("expected error for nil reader")
		}
	})
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "site.yaml")
	if err := os.WriteFile(yamlPath, []byte("name: site\nvalue: 7\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := FromFile[testConfig](yamlPath)
	if err != nil {
		t.Fatalf("FromFile failed: %v", err)
	}
	if cfg.Name != "site" || cfg.Value != 7 {
		t.Errorf("unexpected result: %+v", cfg)
	}

	if _, err := FromFile[testConfig](filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	badPath := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(badPath, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := FromFile[testConfig](badPath); err == nil {
		t.Error("expected error for malformed file")
	}
}

func TestReader_Close(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.json")
	if err := os.WriteFile(path, []byte("{}"), 0o600); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	r, err := NewReader(FormatJSON, f)
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("first Close: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("second Close should be a no-op: %v", err)
	}

	var nilReader *Reader
	if err := nilReader.Close(); err != nil {
		t.Errorf("Close on nil reader: %v", err)
	}
}
