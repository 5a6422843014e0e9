package analysis

// Box is an axis-aligned detection box as [x1, y1, x2, y2].
type Box = [4]float64

func area(b Box) float64 {
	w, h := b[2]-b[0], b[3]-b[1]
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// IoU returns the intersection over union of two boxes.
func IoU(a, b Box) float64 {
	inter := area(Box{max(a[0], b[0]), max(a[1], b[1]), min(a[2], b[2]), min(a[3], b[3])})
	union := area(a) + area(b) - inter
	if union <= 0 {
		return 0
	}
	return inter / union
}

// SuppressOverlaps drops boxes that overlap a kept box by more than threshold.
// Of two overlapping boxes the smaller one survives. Input order is preserved.
func SuppressOverlaps(boxes []Box, threshold float64) []Box {
	removed := make([]bool, len(boxes))

	for i := range boxes {
		if removed[i] {
			continue
		}
		for j := i + 1; j < len(boxes); j++ {
			if removed[j] || IoU(boxes[i], boxes[j]) <= threshold {
				continue
			}
			if area(boxes[i]) <= area(boxes[j]) {
				removed[j] = true
			} else {
				removed[i] = true
				break
			}
		}
	}

	kept := make([]Box, 0, len(boxes))
	for i, b := range boxes {
		if !removed[i] {
			kept = append(kept, b)
		}
	}
	return kept
}
