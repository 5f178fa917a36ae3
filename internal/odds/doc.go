// Package odds converts keyword mention counts into payout odds and
// implied probabilities, and ranks groups from favourite to long shot.
//
// For a group mentioned in c of the total mentions T across all groups,
// the odds are max(T*rate/c, 1.0) and the probability is c/T. A group with
// no mentions has undefined odds and ranks after every defined group.
package odds
