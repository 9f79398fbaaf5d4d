package suppress

import (
	"github.com/advdv/pylsuppress/cmd/pylsuppress/internal/lintout"
	"github.com/cockroachdb/errors"
	"github.com/moby/patternmatcher"
)

// keepFilter wraps patternmatcher.PatternMatcher for identifiers that must
// stay enabled. Patterns use dockerignore syntax, including "!" exceptions.
type keepFilter struct {
	pm *patternmatcher.PatternMatcher
}

func newKeepFilter(patterns []string) (*keepFilter, error) {
	if len(patterns) == 0 {
		return &keepFilter{}, nil
	}

	pm, err := patternmatcher.New(patterns)
	if err != nil {
		return nil, errors.Wrap(err, "invalid keep pattern")
	}

	return &keepFilter{pm: pm}, nil
}

// split separates ids into those to suppress and those to keep, preserving order.
func (f *keepFilter) split(ids []lintout.Identifier) (suppress, keep []lintout.Identifier, err error) {
	suppress = make([]lintout.Identifier, 0, len(ids))
	for _, id := range ids {
		if f.pm == nil {
			suppress = append(suppress, id)
			continue
		}

		matched, err := f.pm.MatchesOrParentMatches(string(id))
		if err != nil {
			return nil, nil, errors.Wrapf(err, "failed to match %s", id)
		}

		if matched {
			keep = append(keep, id)
		} else {
			suppress = append(suppress, id)
		}
	}

	return suppress, keep, nil
}
