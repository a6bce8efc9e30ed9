// internal/intent/classifier.go
package intent

import (
	"strings"
	"time"

	"hr-service-agent/internal/common/logger"
)

// Result is the outcome of classifying one ticket text.
type Result struct {
	Intent     Name              `json:"intent"`
	Confidence float64           `json:"confidence"`
	Entities   map[string]string `json:"entities"`
}

// Classifier scores ticket text against the intent catalog. Classification
// is fully deterministic: no network calls, no randomness, and repeated
// calls with the same text and clock produce identical results.
type Classifier struct {
	catalog []Definition
	log     logger.Logger
	now     func() time.Time
}

// NewClassifier builds a classifier over the full catalog.
func NewClassifier(log logger.Logger) *Classifier {
	return &Classifier{
		catalog: Catalog(),
		log:     log,
		now:     time.Now,
	}
}

// Classify scores text against every catalog entry and returns the best
// match. Scoring per entry:
//
//   - any keyword hit adds 0.3 plus 0.1 per distinct keyword, capped at 3
//   - the first matching pattern adds 0.4 (later patterns are not tried)
//   - each extracted entity adds 0.1
//   - the total is clamped to 1.0, then priority-1 entries above 0.5 get
//     a further 0.1 boost
//
// The highest-scoring entry wins; ties keep the earlier catalog entry. A
// winning score of 0.4 or below reports Unknown, though the winner's
// entities are still returned for diagnostics.
func (c *Classifier) Classify(text string) Result {
	text = strings.TrimSpace(strings.ToLower(text))

	best := Result{Intent: Unknown, Entities: map[string]string{}}
	var bestName Name = Unknown

	for _, def := range c.catalog {
		confidence := 0.0

		keywordHits := 0
		for _, k := range def.Keywords {
			if strings.Contains(text, k) {
				keywordHits++
			}
		}
		if keywordHits > 0 {
			confidence += 0.3 + 0.1*float64(min(keywordHits, 3))
		}

		for _, p := range def.Patterns {
			if p.MatchString(text) {
				confidence += 0.4
				break
			}
		}

		entities := map[string]string{}
		for _, ex := range def.Extractors {
			m := ex.Pattern.FindStringSubmatch(text)
			if m == nil {
				continue
			}
			val := m[0]
			if len(m) > 1 {
				val = m[1]
			}
			entities[ex.Entity] = strings.TrimSpace(val)
			confidence += 0.1
		}

		if confidence > 1.0 {
			confidence = 1.0
		}
		if def.Priority == 1 && confidence > 0.5 {
			confidence += 0.1
		}

		if confidence > best.Confidence {
			best.Confidence = confidence
			best.Entities = entities
			bestName = def.Name
		}
	}

	// A bare "last month" or "this month" payslip request carries no month
	// entity; synthesize it from the clock so downstream gets a pay period.
	if bestName == PayslipDownload {
		if _, ok := best.Entities["month"]; !ok {
			now := c.now()
			if strings.Contains(text, "last month") {
				prev := now.AddDate(0, 0, -now.Day())
				best.Entities["month"] = strings.ToLower(prev.Month().String())
				best.Entities["year"] = prev.Format("2006")
			} else if strings.Contains(text, "this month") {
				best.Entities["month"] = strings.ToLower(now.Month().String())
				best.Entities["year"] = now.Format("2006")
			}
		}
	}

	best.Intent = bestName
	if best.Confidence <= 0.4 {
		best.Intent = Unknown
	}
	if best.Confidence > 1.0 {
		best.Confidence = 1.0
	}

	c.log.Debug("classified ticket text", map[string]interface{}{
		"intent":     string(best.Intent),
		"confidence": best.Confidence,
		"entities":   len(best.Entities),
	})
	return best
}
