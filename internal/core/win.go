package core

// EvaluateWinner decides whether the game has ended, given the number of
// living mafia and living non-mafia players. Pure: citizens win when no mafia
// remain, mafia win at parity or majority over everyone else, otherwise the
// game continues and ok is false.
func EvaluateWinner(aliveMafia, aliveOthers int) (winner Winner, ok bool) {
	if aliveMafia == 0 {
		return WinnerCitizens, true
	}
	if aliveMafia >= aliveOthers {
		return WinnerMafia, true
	}
	return "", false
}
