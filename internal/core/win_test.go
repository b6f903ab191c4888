package core

import "testing"

func TestEvaluateWinner(t *testing.T) {
	cases := []struct {
		name   string
		mafia  int
		others int
		winner Winner
		over   bool
	}{
		{"no mafia left", 0, 3, WinnerCitizens, true},
		{"no mafia no others", 0, 0, WinnerCitizens, true},
		{"parity", 1, 1, WinnerMafia, true},
		{"mafia majority", 2, 1, WinnerMafia, true},
		{"last mafia vs last citizen", 1, 1, WinnerMafia, true},
		{"game continues", 1, 3, "", false},
		{"two mafia vs three", 2, 3, "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			winner, over := EvaluateWinner(tc.mafia, tc.others)
			if over != tc.over || winner != tc.winner {
				t.Fatalf("EvaluateWinner(%d, %d) = (%q, %v), want (%q, %v)",
					tc.mafia, tc.others, winner, over, tc.winner, tc.over)
			}
		})
	}
}

func TestEvaluateWinnerIdempotent(t *testing.T) {
	w1, ok1 := EvaluateWinner(1, 4)
	w2, ok2 := EvaluateWinner(1, 4)
	if w1 != w2 || ok1 != ok2 {
		t.Fatalf("re-evaluating unchanged state gave a different result")
	}
}
