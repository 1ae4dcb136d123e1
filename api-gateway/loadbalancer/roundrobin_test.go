package loadbalancer

import "testing"

func TestNextCyclesThroughServers(t *testing.T) {
	rr := NewRoundRobin([]string{"http://a:8080", "http://b:8080", "http://c:8080"})

	got := []string{rr.Next(), rr.Next(), rr.Next(), rr.Next()}
	want := []string{"http://a:8080", "http://b:8080", "http://c:8080", "http://a:8080"}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("call %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestNextWithNoServers(t *testing.T) {
	rr := NewRoundRobin(nil)

	if got := rr.Next(); got != "" {
		t.Errorf("expected empty server, got %q", got)
	}
	if rr.Count() != 0 {
		t.Errorf("expected count 0, got %d", rr.Count())
	}
}

func TestGetServersReturnsCopy(t *testing.T) {
	rr := NewRoundRobin([]string{"http://a:8080"})

	servers := rr.GetServers()
	servers[0] = "http://mutated:9999"

	if rr.Next() != "http://a:8080" {
		t.Error("mutating the returned slice changed the pool")
	}
}
