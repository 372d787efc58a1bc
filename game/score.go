package game

import "skullking/utils"

// Score returns the points a player earns in a round. A zero bid is worth
// ten points per card dealt, any other bid twenty points per fold when met;
// a missed bid costs ten points per fold of difference, or ten per card dealt
// for a missed zero bid.
func Score(round, predicted, actual int) int {
	if predicted == 0 {
		if actual == 0 {
			return 10 * round
		}
		return -10 * round
	}
	if predicted == actual {
		return 20 * predicted
	}
	return -10 * utils.Abs(predicted-actual)
}
