// Package keyword turns user keyword specifications into groups of synonyms
// and counts how many posts mention each group.
//
// A specification is either a single keyword or several synonyms separated
// by "|", the first of which names the group. A post counts at most once
// per group no matter how many synonyms it contains.
package keyword
