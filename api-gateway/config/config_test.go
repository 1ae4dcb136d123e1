package config

import (
	"testing"
)

func TestGetInstancesSplitsAndTrims(t *testing.T) {
	t.Setenv("CATALOG_SERVICE_URL", "http://catalog-1:8083/, http://catalog-2:8083 ,")

	got := getInstances("CATALOG_SERVICE_URL", "http://localhost:8083")
	want := []string{"http://catalog-1:8083", "http://catalog-2:8083"}

	if len(got) != len(want) {
		t.Fatalf("expected %d instances, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("instance %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestGetInstancesDefault(t *testing.T) {
	got := getInstances("UNSET_SERVICE_URL", "http://localhost:8085")
	if len(got) != 1 || got[0] != "http://localhost:8085" {
		t.Errorf("expected default instance, got %v", got)
	}
}

func TestLoadConfigCoversAllServices(t *testing.T) {
	cfg := LoadConfig()

	for _, name := range []string{"user", "inventory", "catalog", "order", "advisory"} {
		svc, ok := cfg.Services[name]
		if !ok {
			t.Errorf("missing service %q", name)
			continue
		}
		if len(svc.Instances) == 0 {
			t.Errorf("service %q has no instances", name)
		}
		if svc.HealthCheck == "" {
			t.Errorf("service %q has no health check path", name)
		}
	}
}
