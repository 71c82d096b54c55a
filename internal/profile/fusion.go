package profile

import (
	"github.com/het-sheth/fulcrumai/internal/tags"
)

// FuseInsights merges LLM-generated primary and secondary interest tags
// into the profile's tag set by set union, and attaches the insights as
// a side-channel annotation. The stance, engagement and summary data is
// never mixed into the tag set itself.
//
// A nil insights value means the LLM call failed, timed out, or did not
// parse; fusion is skipped entirely and the rule-derived tag set stands
// unmodified. Partial insight data is never attached.
func FuseInsights(p *CanonicalProfile, ins *Insights) {
	if p == nil || ins == nil {
		return
	}

	merged := tags.NewSet(p.Interests...)
	merged.AddAll(ins.PrimaryInterests...)
	merged.AddAll(ins.SecondaryInterests...)

	p.Interests = merged.SortedCapped(MaxInterests)
	p.Insights = ins
}
