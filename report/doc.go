// Package report summarizes a resolved subset of groundwater records.
//
// A Report carries the headline figures of the subset (assessment year
// span, mean stage of extraction, total extractable resource, extraction
// and remaining groundwater, category counts) plus two chart series: mean
// stage per assessment year, or per district for comparisons, and the
// category distribution. Rendering to text is plain English; translation
// is the caller's concern.
package report
