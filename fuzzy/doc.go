// Package fuzzy scores how closely two short strings match on a 0-100 scale.
//
// WRatio combines several similarity measures the way place-name lookups
// need them: whole-string Indel (longest common subsequence) similarity for near-equal lengths, best
// window similarity when one string is embedded in a longer one, and
// token-order-insensitive comparisons. Scores never fail; empty input
// scores zero.
//
//	score := fuzzy.WRatio("karnataka groundwater", "karnataka") // 90
//	best, ok := fuzzy.ExtractOne(query, vocabulary)
package fuzzy
