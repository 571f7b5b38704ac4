// Package topk provides an in-place quickselect partition used by the
// similarity kernel to pull each token's n+1 nearest neighbors out of a
// full row of similarity scores without a full sort.
//
// Convention: "smaller score = worse". Partition moves the k smallest
// scores to the front of idx. Callers who want the largest scores (e.g.
// cosine similarities) must negate the score array before calling — the
// similarity kernel negates similarities on the way in. See spec.md §4.3.
package topk

// Partition reorders idx[0:len(idx)] in place so that the k smallest
// values of score[idx[i]] occupy idx[0:k); order within each partition
// (idx[0:k) and idx[k:)) is unspecified. k must satisfy
// 0 <= k <= len(idx); k == 0 or k == len(idx) are no-ops beyond bounds
// checks.
//
// Uses a dual-pointer quickselect with the midpoint element's score as
// pivot, recursing only into whichever side contains index k.
// Expected O(len(idx)), worst case O(len(idx)^2); no auxiliary
// allocation.
func Partition(idx []int32, score []float32, k int) {
	if k <= 0 || k >= len(idx) {
		return
	}
	quickselect(idx, score, 0, len(idx)-1, k)
}

func quickselect(idx []int32, score []float32, lo, hi, k int) {
	for lo < hi {
		p := partitionRange(idx, score, lo, hi)
		switch {
		case k <= p:
			hi = p
		default:
			lo = p + 1
		}
	}
}

// partitionRange performs one Hoare-style partition pass over
// idx[lo:hi+1] using the midpoint's score as pivot, returning a split
// point p such that every idx[lo:p+1] has score <= pivot <= every
// idx[p+1:hi+1].
func partitionRange(idx []int32, score []float32, lo, hi int) int {
	pivot := score[idx[(lo+hi)/2]]
	i, j := lo-1, hi+1
	for {
		for {
			i++
			if score[idx[i]] >= pivot {
				break
			}
		}
		for {
			j--
			if score[idx[j]] <= pivot {
				break
			}
		}
		if i >= j {
			return j
		}
		idx[i], idx[j] = idx[j], idx[i]
	}
}
