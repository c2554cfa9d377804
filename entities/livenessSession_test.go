package entities

import "testing"

func TestLivenessSessionApply(t *testing.T) {
	session := LivenessSession{UserID: "user-1"}

	session = session.Apply("blink", true)
	if !session.BlinkDetected {
		t.Error("Apply(blink, true) did not set BlinkDetected")
	}
	if session.OverallStatus {
		t.Error("OverallStatus true with only one flag set")
	}

	session = session.Apply("left", true)
	if !session.HeadTurnDetected {
		t.Error("Apply(left, true) did not set HeadTurnDetected")
	}
	if !session.OverallStatus {
		t.Error("OverallStatus false with both flags set")
	}

	// A failed retry never clears earlier progress.
	session = session.Apply("blink", false)
	if !session.BlinkDetected || !session.OverallStatus {
		t.Errorf("failed retry regressed session state: %+v", session)
	}
}

func TestLivenessSessionApplyRightSetsHeadTurn(t *testing.T) {
	session := LivenessSession{}.Apply("right", true)
	if !session.HeadTurnDetected {
		t.Error("Apply(right, true) did not set HeadTurnDetected")
	}
}

func TestLivenessSessionApplyFailureSetsNothing(t *testing.T) {
	session := LivenessSession{}.Apply("blink", false)
	if session.BlinkDetected || session.HeadTurnDetected || session.OverallStatus {
		t.Errorf("Apply(blink, false) changed state: %+v", session)
	}
}
