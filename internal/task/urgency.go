package task

import (
	"fmt"
	"time"
)

// CoefficientField names the urgency terms a configuration file may
// override. Unknown field names are rejected by config.Load with a
// ConfigError.
type CoefficientField string

const (
	CoefficientTag          CoefficientField = "tag"
	CoefficientDepends      CoefficientField = "depends"
	CoefficientBlocking     CoefficientField = "blocking"
	CoefficientActiveStatus CoefficientField = "active_status"
)

// Coefficients holds the weights used by ComputeUrgency. TagValues maps a
// specific tag name to its own coefficient (overrides TagDefault); any tag
// without an entry falls back to TagDefault, which defaults to zero.
type Coefficients struct {
	TagDefault   int
	TagValues    map[string]int
	Depends      int
	Blocking     int
	ActiveStatus int
}

// DefaultCoefficients matches the original implementation's defaults:
// blocking=+1, depends=-1, active=+10.
func DefaultCoefficients() Coefficients {
	return Coefficients{
		Depends:      -1,
		Blocking:     1,
		ActiveStatus: 10,
	}
}

// ValidateField reports whether name is a recognized coefficient field.
func ValidateField(name string) error {
	switch CoefficientField(name) {
	case CoefficientTag, CoefficientDepends, CoefficientBlocking, CoefficientActiveStatus:
		return nil
	default:
		return fmt.Errorf("unknown urgency coefficient field: %q", name)
	}
}

// ComputeUrgency recomputes and stores t.Urgency per the formula:
//
//	urgency = Σ tag_coef(tag)
//	        + blocking_coef * |edges(Blocking)|
//	        + depends_coef  * |edges(DependsOn)|
//	        + (status == Active ? active_status_coef : 0)
//	        + (date_due ? days_remaining(date_due) : 0)
func ComputeUrgency(t *Task, now time.Time, c Coefficients) {
	if t.Status.IsTerminal() {
		t.Urgency = nil
		return
	}

	total := 0
	for _, tag := range t.Tags {
		if v, ok := c.TagValues[tag]; ok {
			total += v
		} else {
			total += c.TagDefault
		}
	}

	total += c.Blocking * len(t.LinksOfType(LinkBlocking))
	total += c.Depends * len(t.LinksOfType(LinkDependsOn))

	if t.Status == StatusActive {
		total += c.ActiveStatus
	}

	if t.DateDue != nil {
		days := int(t.DateDue.Sub(now).Hours() / 24)
		total += days
	}

	urgency := total
	t.Urgency = &urgency
}
