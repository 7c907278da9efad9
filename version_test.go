package runctl

import "testing"

func TestIsVersionCompatible(t *testing.T) {
	tests := []struct {
		version string
		min     string
		want    bool
	}{
		{"0.1.0", "0.1.0", true},
		{"0.2.0", "0.1.5", true},
		{"1.0.0", "0.9.9", true},
		{"0.1.0", "0.1.1", false},
		{"0.1.9", "0.2.0", false},
		{"1.2.3", "2.0.0", false},
	}
	for _, tt := range tests {
		if got := isVersionCompatible(tt.version, tt.min); got != tt.want {
			t.Errorf("isVersionCompatible(%q, %q) = %v, want %v", tt.version, tt.min, got, tt.want)
		}
	}
}

func TestValidateModuleVersions(t *testing.T) {
	if err := validateModuleVersions(); err != nil {
		t.Errorf("validateModuleVersions() error = %v", err)
	}
}
