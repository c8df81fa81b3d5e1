// Package extract converts architecture prose into a canonical graph.
//
// Extraction is a best-effort heuristic, not a parser: zone phrases become
// lanes (each with a background band), recognisable component words become
// nodes via [classify.Classifier], and phrases such as "A connects to B" or
// "A -> B" become edges. When nothing is recognised a fixed reference
// architecture is returned instead of an empty graph.
//
// The output is deterministic: identical text always yields an identical
// graph.
package extract
