package ocr

import "github.com/joseph-ayodele/cardscan/internal/extract"

// heuristicConfidence scores decoded text by how much it looks like a
// business card: recognizable phone/email/website shapes each add weight.
func heuristicConfidence(txt string) float32 {
	p := extract.Extract(txt)

	score := float32(0.2) // base
	if len(p.Phones) > 0 {
		score += 0.2
	}
	if len(p.Emails) > 0 {
		score += 0.2
	}
	if len(p.Websites) > 0 {
		score += 0.15
	}
	if len(txt) > 60 { // enough content for the line heuristics
		score += 0.1
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}
