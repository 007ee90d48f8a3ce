package tracking

import "testing"

func TestAnnouncerFiresOncePerIndex(t *testing.T) {
	a := newAnnouncer()

	if !a.observe(0) {
		t.Fatal("first step should announce")
	}
	if a.observe(0) {
		t.Fatal("repeat of the same index must not announce")
	}
	if !a.observe(1) {
		t.Fatal("next step should announce")
	}
	if a.observe(1) || a.observe(0) {
		t.Fatal("old indices must never announce again")
	}
}

func TestAnnouncerSkipsAhead(t *testing.T) {
	a := newAnnouncer()

	if !a.observe(3) {
		t.Fatal("jumping to step 3 should announce it")
	}
	// Steps passed during the jump stay silent afterwards.
	for i := 0; i <= 3; i++ {
		if a.observe(i) {
			t.Fatalf("index %d announced after the jump", i)
		}
	}
}

func TestAnnouncerReset(t *testing.T) {
	a := newAnnouncer()
	a.observe(5)

	a.reset()
	if !a.observe(0) {
		t.Fatal("after a route replacement step 0 should announce")
	}
}
