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

// Package corpus loads the district-level groundwater assessment table.
//
// The table is a CSV file with a header row. Required columns are listed in
// RequiredColumns; the recharge and future-availability columns are optional
// and read as unavailable when absent. Blank or non-numeric cells become NaN
// rather than failing the load, and the remaining groundwater of every row is
// computed once here:
//
//	remaining = annual_extractable_resource_ham_total - annual_extraction_ham_total
//
// Rows with a blank state, district or assessment year are skipped with a
// warning, since they could never be addressed by name.
package corpus
