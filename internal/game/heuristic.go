package game

// Suggest picks a greedy move for playerID: the legal placement whose
// settled board leaves the player with the largest orb lead over everyone
// else. A decisive cascade wins outright. Ties keep the first candidate in
// row-major order. ok is false when the player has no legal move.
func Suggest(b Board, playerID string) (mv Move, ok bool) {
	bestScore := 0
	for _, cand := range LegalMoves(b, playerID) {
		placed, err := Place(b, cand.Row, cand.Col, playerID)
		if err != nil {
			continue
		}
		res, err := Settle(placed, cand.Row, cand.Col, playerID)
		if err != nil {
			continue
		}
		score := HeuristicScore(res, playerID)
		if !ok || score > bestScore {
			mv, bestScore, ok = cand, score, true
		}
	}
	return mv, ok
}

const winScore = 1 << 20

func HeuristicScore(res Cascade, playerID string) int {
	if res.Dominated {
		return winScore
	}
	score := 0
	for owner, orbs := range OrbCounts(res.Board) {
		if owner == playerID {
			score += orbs
		} else {
			score -= orbs
		}
	}
	return score
}
