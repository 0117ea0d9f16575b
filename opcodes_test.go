package relay

import "testing"

func TestOutcomeForDistinguishesReidentifyFromResume(t *testing.T) {
	cases := []struct {
		code int
		want closeOutcome
	}{
		{4000, outcomeResume},
		{4007, outcomeReidentify},
		{4009, outcomeReidentify},
		{4004, outcomeFatal},
		{4014, outcomeFatal},
		{1001, outcomeResume}, // undocumented / standard code defaults to resume
	}

	for _, c := range cases {
		got, _ := outcomeFor(c.code)
		if got != c.want {
			t.Errorf("outcomeFor(%d) = %v, want %v", c.code, got, c.want)
		}
	}
}
