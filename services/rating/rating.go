package rating

import (
	"time"

	"coolie-booking/domain"
	"coolie-booking/models/coolie"
)

// Apply folds one rating into a coolie's ratings collection and returns
// the new collection plus the recomputed average. A rater has at most
// one entry: re-rating replaces score, comment and date in place
// instead of appending. Pure; persistence is the caller's job.
func Apply(ratings coolie.RatingList, raterID uint, score int, comment string, at time.Time) (coolie.RatingList, float64, error) {
	if score < 1 || score > 5 {
		return nil, 0, domain.ValidationError{Field: "score", Msg: "rating must be between 1 and 5"}
	}

	updated := make(coolie.RatingList, len(ratings))
	copy(updated, ratings)

	replaced := false
	for i := range updated {
		if updated[i].RaterID == raterID {
			updated[i].Score = score
			updated[i].Comment = comment
			updated[i].Date = at
			replaced = true
			break
		}
	}
	if !replaced {
		updated = append(updated, coolie.Rating{
			RaterID: raterID,
			Score:   score,
			Comment: comment,
			Date:    at,
		})
	}

	return updated, Average(updated), nil
}

// Average is the arithmetic mean of the collection, 0 when empty.
func Average(ratings coolie.RatingList) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r.Score
	}
	return float64(sum) / float64(len(ratings))
}
