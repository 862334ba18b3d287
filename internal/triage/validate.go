// internal/triage/validate.go
package triage

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"gastro-triage/internal/common/errors"
)

// Limits bound what the engine accepts before the pipeline runs. Oversized
// input is rejected outright rather than silently truncated, so the caller
// can surface a precise message.
type Limits struct {
	MaxTextLength   int
	MaxSymptomCount int
}

// DefaultLimits mirror the configuration defaults.
var DefaultLimits = Limits{
	MaxTextLength:   4000,
	MaxSymptomCount: 25,
}

func (l Limits) validateText(text string) error {
	if len(text) > l.MaxTextLength {
		return errors.NewValidationError(
			fmt.Sprintf("message exceeds %d characters", l.MaxTextLength))
	}
	return nil
}

func (l Limits) validateSymptomList(symptoms []string) error {
	if len(symptoms) > l.MaxSymptomCount {
		return errors.NewValidationError(
			fmt.Sprintf("symptom list exceeds %d entries", l.MaxSymptomCount))
	}
	for _, s := range symptoms {
		if len(s) > l.MaxTextLength {
			return errors.NewValidationError(
				fmt.Sprintf("symptom entry exceeds %d characters", l.MaxTextLength))
		}
	}
	return nil
}

// validateContext checks the optional structured context. A nil context is
// always valid.
func (l Limits) validateContext(uctx *UserContext) error {
	if uctx == nil {
		return nil
	}

	err := validation.ValidateStruct(uctx,
		validation.Field(&uctx.AgeYears, validation.By(intInRange(0, 130, "ageYears"))),
		validation.Field(&uctx.PainLevel, validation.By(intInRange(1, 10, "painLevel"))),
		validation.Field(&uctx.DurationBucket, validation.By(durationBucketKnown)),
	)
	if err != nil {
		return errors.NewValidationError(err.Error())
	}

	return l.validateSymptomList(uctx.ReportedSymptoms)
}

func intInRange(min, max int, field string) validation.RuleFunc {
	return func(value interface{}) error {
		p, _ := value.(*int)
		if p == nil {
			return nil
		}
		if *p < min || *p > max {
			return fmt.Errorf("%s must be between %d and %d", field, min, max)
		}
		return nil
	}
}

func durationBucketKnown(value interface{}) error {
	bucket, _ := value.(string)
	if bucket == "" {
		return nil
	}
	for _, known := range DurationBuckets {
		if strings.EqualFold(bucket, known) {
			return nil
		}
	}
	return fmt.Errorf("durationBucket %q is not a recognized value", bucket)
}
