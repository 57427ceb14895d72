package scheduler

import (
	"cmp"
	"slices"

	"github.com/alexanderramin/wayfarer/internal/domain"
	"github.com/shopspring/decimal"
)

// maxDayStates bounds the partial plans kept while selecting one day. Pools of
// up to 15 candidates never reach it, so their selection is exact. Larger
// pools keep the highest-scoring partial plans.
const maxDayStates = 1 << 15

// dayOption is a scored candidate with its window clipped to the day.
type dayOption struct {
	scored  ScoredCandidate
	lo, hi  domain.TimeOfDay
	mustSee bool
}

type dayLimits struct {
	maxCount int
	// total caps everything chosen; flexible caps what non-must-see activities
	// may take, leaving the reserve for later must-see activities untouched.
	total    decimal.Decimal
	flexible decimal.Decimal
	buffer   domain.TimeOfDay
}

func limitsFor(req DayRequest, ledger *BudgetLedger) dayLimits {
	remaining := decimal.Max(ledger.Remaining(), decimal.Zero)
	total := remaining
	if req.Config.MaxDailySpend.IsPositive() {
		total = decimal.Min(total, req.Config.MaxDailySpend)
	}
	return dayLimits{
		maxCount: req.Config.MaxActivities,
		total:    total,
		flexible: decimal.Max(remaining.Sub(req.Reserved), decimal.Zero),
		buffer:   domain.TimeOfDay(req.Config.BufferMin),
	}
}

type placement struct {
	option dayOption
	start  domain.TimeOfDay
}

// dayState is a partial plan: the options chosen so far, linked through prev,
// with the resources they use.
type dayState struct {
	end   domain.TimeOfDay
	count int
	spent decimal.Decimal
	flex  decimal.Decimal
	score float64

	option int
	start  domain.TimeOfDay
	prev   *dayState
}

type dayStateKey struct {
	end         domain.TimeOfDay
	count       int
	spent, flex string
}

func (s *dayState) key() dayStateKey {
	return dayStateKey{end: s.end, count: s.count, spent: s.spent.String(), flex: s.flex.String()}
}

// selectDay returns the set of options with the highest total score that can
// be placed back to back, each at its earliest start after the previous one
// plus the buffer, within the count and money limits. Options arrive in
// canonical order and are walked by window start. Every partial plan is either
// extended or left alone, and two plans using the same time, count and money
// collapse into the better one. Raising the money limits only adds plans, so
// the result is monotone in budget.
func selectDay(options []dayOption, lim dayLimits) []placement {
	slices.SortStableFunc(options, func(x, y dayOption) int {
		return cmp.Or(cmp.Compare(x.lo, y.lo), cmp.Compare(x.hi, y.hi))
	})

	states := []*dayState{{spent: decimal.Zero, flex: decimal.Zero, option: -1}}
	for i, o := range options {
		a := o.scored.Activity
		dur := domain.TimeOfDay(a.DurationMin)

		index := make(map[dayStateKey]int, len(states))
		for j, s := range states {
			index[s.key()] = j
		}
		for _, s := range slices.Clone(states) {
			if lim.maxCount > 0 && s.count >= lim.maxCount {
				continue
			}
			start := o.lo
			if s.count > 0 {
				start = max(start, s.end+lim.buffer)
			}
			if start+dur > o.hi {
				continue
			}
			spent := s.spent.Add(a.Cost)
			if spent.GreaterThan(lim.total) {
				continue
			}
			flex := s.flex
			if !o.mustSee {
				flex = flex.Add(a.Cost)
				if flex.GreaterThan(lim.flexible) {
					continue
				}
			}

			next := &dayState{
				end: start + dur, count: s.count + 1, spent: spent, flex: flex,
				score: s.score + o.scored.Score, option: i, start: start, prev: s,
			}
			k := next.key()
			if j, ok := index[k]; ok {
				if next.score > states[j].score {
					states[j] = next
				}
				continue
			}
			index[k] = len(states)
			states = append(states, next)
		}

		if len(states) > maxDayStates {
			slices.SortStableFunc(states, func(x, y *dayState) int { return cmp.Compare(y.score, x.score) })
			states = states[:maxDayStates]
		}
	}

	best := states[0]
	for _, s := range states[1:] {
		if s.score > best.score {
			best = s
		}
	}

	var out []placement
	for s := best; s.prev != nil; s = s.prev {
		out = append(out, placement{option: options[s.option], start: s.start})
	}
	slices.Reverse(out)
	return out
}
