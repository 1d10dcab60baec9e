package models

import (
	"encoding/json"
	"strings"

	id "julee/pkg/domain"
	dErrors "julee/pkg/domain-errors"
)

// Score bounds for knowledge-service queries.
const (
	MinScore = 0
	MaxScore = 100
)

// ScorePair is one (query_id, score) result. Pair order within a ScoreSet
// reflects invocation order and carries no semantic meaning; lookups go
// through Get, never by position.
type ScorePair struct {
	QueryID id.QueryID
	Score   int
}

// ScoreSet is an ordered list of query scores.
//
// Invariants (enforced by Validate, checked on every aggregate mutation):
//   - query ids are non-empty and pairwise distinct (case-sensitive)
//   - every score lies in [0,100]
type ScoreSet []ScorePair

// Validate checks the score-set invariants. It is a pure data-invariant
// guard: it never mutates or clamps, only rejects.
func Validate(scores ScoreSet) error {
	seen := make(map[id.QueryID]struct{}, len(scores))
	for _, pair := range scores {
		if strings.TrimSpace(pair.QueryID.String()) == "" {
			return dErrors.New(dErrors.CodeValidation, "score set contains an empty query id")
		}
		if _, dup := seen[pair.QueryID]; dup {
			return dErrors.Newf(dErrors.CodeValidation, "duplicate query id %q in score set", pair.QueryID)
		}
		seen[pair.QueryID] = struct{}{}
		if pair.Score < MinScore || pair.Score > MaxScore {
			return dErrors.Newf(dErrors.CodeValidation, "score %d for query %q outside [%d,%d]", pair.Score, pair.QueryID, MinScore, MaxScore)
		}
	}
	return nil
}

// Get returns the score for queryID and whether it is present.
func (s ScoreSet) Get(queryID id.QueryID) (int, bool) {
	for _, pair := range s {
		if pair.QueryID == queryID {
			return pair.Score, true
		}
	}
	return 0, false
}

// Clone returns a copy so callers cannot alias the aggregate's slice.
func (s ScoreSet) Clone() ScoreSet {
	if s == nil {
		return nil
	}
	out := make(ScoreSet, len(s))
	copy(out, s)
	return out
}

// Equal compares two score sets pairwise, order included.
func (s ScoreSet) Equal(other ScoreSet) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// MarshalJSON serializes the set as an ordered array of two-element
// [query_id, score] pairs, never as a map. Order and duplication must stay
// representable on the wire so Validate can catch duplicates after a
// round-trip.
func (s ScoreSet) MarshalJSON() ([]byte, error) {
	pairs := make([][2]any, len(s))
	for i, pair := range s {
		pairs[i] = [2]any{pair.QueryID.String(), pair.Score}
	}
	return json.Marshal(pairs)
}

// UnmarshalJSON parses the pair-array wire form. Invariants are not enforced
// here; callers run Validate after decoding so malformed persisted data is
// reported as a validation error, not a decode panic.
func (s *ScoreSet) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(ScoreSet, 0, len(raw))
	for _, item := range raw {
		var pair []json.RawMessage
		if err := json.Unmarshal(item, &pair); err != nil {
			return err
		}
		if len(pair) != 2 {
			return dErrors.New(dErrors.CodeValidation, "score pair must have exactly two elements")
		}
		var queryID string
		if err := json.Unmarshal(pair[0], &queryID); err != nil {
			return err
		}
		var score int
		if err := json.Unmarshal(pair[1], &score); err != nil {
			return err
		}
		out = append(out, ScorePair{QueryID: id.QueryID(queryID), Score: score})
	}
	*s = out
	return nil
}
