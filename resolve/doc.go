// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package resolve turns a free-text groundwater question into a typed
// subset of the corpus.
//
// Resolution is a fixed-priority pipeline; the first stage that accepts
// ends it:
//
//  1. state: best fuzzy match over the distinct state names, score > 70
//  2. district: the same over district names, tried only when no state matched
//  3. compare: the query contains "compare" and at least two district names verbatim
//  4. semantic: nearest row in the embedding index, widened to every year of its district
//
// A query nothing accepts resolves to kind none. Requested years are
// applied after acceptance as a plain intersection, so an empty subset with
// a non-none kind means "no data for that period".
//
// Because state is tried first, a query that mentions a district and also
// scores above the threshold against a state resolves to the state.
// This ordering is deliberate and is not corrected by later stages.
//
//	resolver, err := resolve.NewResolver(corpus, semantic)
//	result, err := resolver.Search(ctx, "pune groundwater 2023", resolve.ExtractYears(q))
package resolve
