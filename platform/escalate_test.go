package platform

import "testing"

func TestDetectEscalationMemoized(t *testing.T) {
	resetEscalationForTest()
	defer resetEscalationForTest()
	p1, err1 := DetectEscalation()
	p2, err2 := DetectEscalation()
	if p1 != p2 || (err1 == nil) != (err2 == nil) {
		t.Errorf("DetectEscalation is not memoized: (%q,%v) != (%q,%v)", p1, err1, p2, err2)
	}
}
