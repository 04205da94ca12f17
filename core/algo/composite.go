package algo

import "github.com/huangsam/recordlens/schema"

// FinalScore weights category composites by the rubric category weights.
func FinalScore(categories []schema.CategoryResult, weights map[schema.Category]float64) float64 {
	total := 0.0
	for _, c := range categories {
		total += c.Composite * weights[c.Category]
	}
	return total
}

// ComputeOverall derives the final score, letter grade and percentile.
func ComputeOverall(categories []schema.CategoryResult, rubric *schema.RubricConfig) schema.Overall {
	score := FinalScore(categories, rubric.CategoryWeights)
	return schema.Overall{
		Score:      score,
		Grade:      rubric.GradeTable.Lookup(score),
		Percentile: rubric.PercentileTable.Lookup(score),
	}
}

// TopCategory returns the category with the highest composite. Earlier categories win ties.
func TopCategory(categories []schema.CategoryResult) schema.Category {
	var best schema.CategoryResult
	for i, c := range categories {
		if i == 0 || c.Composite > best.Composite {
			best = c
		}
	}
	return best.Category
}

// BottomCategory returns the category with the lowest composite. Earlier categories win ties.
func BottomCategory(categories []schema.CategoryResult) schema.Category {
	var worst schema.CategoryResult
	for i, c := range categories {
		if i == 0 || c.Composite < worst.Composite {
			worst = c
		}
	}
	return worst.Category
}
