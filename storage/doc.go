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

// Package storage provides the storage abstraction layer for user feedback.
//
// Feedback is the only state ingres persists: the corpus and the semantic
// index are read-only artifacts. This package defines the repository
// interface so the BadgerDB backend can be swapped without touching callers.
//
// # Constructor Return Type Pattern
//
// Public constructors return the interface to keep callers decoupled from
// BadgerDB:
//
//	repo, err := badger.NewFeedbackRepository(backend) // storage.FeedbackRepository
//
// # Usage
//
//	backend, err := badger.OpenBackend("/path/to/db", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer backend.Close()
//
//	repo, err := badger.NewFeedbackRepository(backend)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer repo.Close()
//
//	added, err := repo.AddFeedback(ctx, &core.Feedback{Text: "charts are great"})
//	recent, err := repo.GetRecentFeedback(ctx, 10)
//
// Use in tests with in-memory storage:
//
//	repo, backend, err := badger.NewMemoryFeedbackRepository()
//
// # Serialization
//
// Records are encoded with mus-go. IDs and timestamps in index keys are
// written big-endian so lexicographic key order is chronological order.
package storage
