// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package parser

import (
	"strings"

	"github.com/holomush/disguise/internal/disguise"
	"github.com/holomush/disguise/internal/param"
	"github.com/holomush/disguise/internal/property"
	"github.com/holomush/disguise/internal/translate"
)

type outcome int

const (
	accepted outcome = iota
	retryable
	fatal
)

// candidateResult is the result of probing one setter against the input.
type candidateResult struct {
	outcome outcome
	value   any
	err     error
}

// applyOptions consumes the remaining tokens as option clauses.
// Every clause consumes at least its name token, so the loop ends.
func (s *Session) applyOptions(d *disguise.Descriptor) error {
	for !s.cursor.Done() {
		display, _ := s.cursor.Next()
		id := strings.ToLower(s.tbl.Canonical(translate.DomainOptions, display))

		candidates := s.table.Candidates(id)
		if len(candidates) == 0 {
			return ErrUnknownOption(display)
		}

		var chosen *property.Setter
		var value any
		var lastErr error
		for i := range candidates {
			res := s.probe(candidates[i], display)
			switch res.outcome {
			case accepted:
				chosen, value = &candidates[i], res.value
			case fatal:
				return res.err
			case retryable:
				lastErr = res.err
			}
			if chosen != nil {
				break
			}
		}
		if chosen == nil {
			if lastErr != nil {
				return lastErr
			}
			return ErrUnknownOption(display)
		}

		if err := s.use(chosen.ID); err != nil {
			return err
		}
		chosen.Apply(d, value)
	}
	return nil
}

// probe runs one candidate's value parser. Only an accepted probe moves the
// cursor.
func (s *Session) probe(setter property.Setter, display string) candidateResult {
	info, ok := s.p.params.Lookup(setter.Type)
	if !ok {
		return candidateResult{outcome: retryable, err: ErrUnknownOption(display)}
	}
	if s.cursor.Remaining() < info.MinArgs() {
		RecordCandidate(CandidateMissing)
		return candidateResult{outcome: retryable, err: ErrExpectedMissing(info.Description(), display)}
	}

	v, err := param.Consume(info, s.cursor)
	if err != nil {
		if IsParseError(err) && KindOf(err) != CodeMissingArgument && KindOf(err) != CodeTypeMismatch {
			return candidateResult{outcome: fatal, err: err}
		}
		first, hasFirst := s.cursor.Peek()
		perr := conversionError(err, info, first, hasFirst, display)
		if KindOf(perr) == CodeMissingArgument {
			RecordCandidate(CandidateMissing)
		} else {
			RecordCandidate(CandidateMismatch)
		}
		return candidateResult{outcome: retryable, err: perr}
	}
	RecordCandidate(CandidateAccepted)
	return candidateResult{outcome: accepted, value: v}
}
