// Package agreement derives matching ratios and Cohen's kappa from matched
// relation tables and aggregates them over a corpus.
package agreement

import (
	"fmt"

	"github.com/tkutschbach/RST-Tace/internal/compare"
	"github.com/tkutschbach/RST-Tace/internal/reltable"
)

// NoLabel stands in for the missing side of an unmatched pair.
const NoLabel = "none"

// observations collects the paired labels of one dimension.
type observations struct {
	matched int
	labelsA []string
	labelsB []string
}

func (o *observations) add(a, b string, match bool) {
	o.labelsA = append(o.labelsA, a)
	o.labelsB = append(o.labelsB, b)
	if match {
		o.matched++
	}
}

func (o *observations) ratio() float64 {
	if len(o.labelsA) == 0 {
		return 0
	}
	return float64(o.matched) / float64(len(o.labelsA))
}

// Analyze computes per-dimension matching ratios and kappas for the table and
// attaches them to it. A pair at NoMatching distance counts twice, each side
// against NoLabel; a relation without counterpart counts once against NoLabel.
func Analyze(t *compare.Table) {
	obs := make(map[compare.Dimension]*observations, len(compare.Dimensions))
	for _, d := range compare.Dimensions {
		obs[d] = &observations{}
	}

	for _, c := range t.Comparisons {
		a, b := labels(c.RelationA), labels(c.RelationB)
		if c.Distance == compare.NoMatching {
			for _, d := range compare.Dimensions {
				obs[d].add(a[d], NoLabel, false)
				obs[d].add(NoLabel, b[d], false)
			}
			continue
		}
		eq := c.Equivalency
		obs[compare.Nuclearity].add(a[compare.Nuclearity], b[compare.Nuclearity], eq.Nuclearity.EqualDirection)
		obs[compare.Relation].add(a[compare.Relation], b[compare.Relation], eq.Relation)
		obs[compare.Constituent].add(a[compare.Constituent], b[compare.Constituent], eq.Constituent)
		obs[compare.AttachmentPoint].add(a[compare.AttachmentPoint], b[compare.AttachmentPoint], eq.AttachmentPoint)
	}
	for _, r := range t.UnmatchedA {
		a := labels(r)
		for _, d := range compare.Dimensions {
			obs[d].add(a[d], NoLabel, false)
		}
	}
	for _, r := range t.UnmatchedB {
		b := labels(r)
		for _, d := range compare.Dimensions {
			obs[d].add(NoLabel, b[d], false)
		}
	}

	ratios := make(compare.Scores, len(compare.Dimensions)+1)
	kappas := make(compare.Scores, len(compare.Dimensions)+1)
	var ratioSum, kappaSum float64
	for _, d := range compare.Dimensions {
		ratios[d] = obs[d].ratio()
		kappas[d] = CohensKappa(obs[d].labelsA, obs[d].labelsB)
		ratioSum += ratios[d]
		kappaSum += kappas[d]
	}
	n := float64(len(compare.Dimensions))
	ratios[compare.Average] = ratioSum / n
	kappas[compare.Average] = kappaSum / n

	t.MatchingRatios = ratios
	t.CohensKappas = kappas
}

// labels renders the categorical label of a relation in every dimension.
func labels(r reltable.Relation) map[compare.Dimension]string {
	return map[compare.Dimension]string{
		compare.Nuclearity:      r.Direction().String(),
		compare.Relation:        r.Name,
		compare.Constituent:     elementLabel(r.Constituent),
		compare.AttachmentPoint: elementLabel(r.AttachmentPoint),
	}
}

func elementLabel(e reltable.Element) string {
	nuc := "S"
	if e.IsNuclear {
		nuc = "N"
	}
	return fmt.Sprintf("%d-%d%s", e.MinID, e.MaxID, nuc)
}

// CohensKappa computes Cohen's kappa for two equally long label sequences.
// It returns 0 for empty input and 1 when chance agreement is already total.
func CohensKappa(a, b []string) float64 {
	n := len(a)
	if n == 0 || n != len(b) {
		return 0
	}

	countA := make(map[string]int)
	countB := make(map[string]int)
	agree := 0
	for i := range n {
		countA[a[i]]++
		countB[b[i]]++
		if a[i] == b[i] {
			agree++
		}
	}

	chance := 0
	for label, ca := range countA {
		chance += ca * countB[label]
	}
	total := n * n
	if chance == total {
		return 1
	}
	po := float64(agree) / float64(n)
	pe := float64(chance) / float64(total)
	return (po - pe) / (1 - pe)
}
