// Package slotvalidation checks the slots of DiningSuggestionIntent in a
// fixed order and reports the first violation.
package slotvalidation

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"dining-concierge/internal/common/logger"
	"dining-concierge/internal/common/metrics"
	"dining-concierge/internal/models"
)

const (
	msgUnknownDate = "I did not understand that, what date would you like to go to the restaurant?"
	msgPastDate    = "You can only select a day from today onwards. What day would you like to go to the restaurant?"
	msgPartySize   = "Your party group must be greater than 0. Please try again. How many people are there in your party?"
)

type Validator struct {
	config *Config
	clock  Clock
	logger logger.Logger
}

func NewValidator(config *Config, clock Clock, log logger.Logger) *Validator {
	if clock == nil {
		clock = SystemClock
	}
	return &Validator{
		config: config,
		clock:  clock,
		logger: logger.ForComponent(log, "slot-validator"),
	}
}

// Validate runs the slot rules in order location, cuisine, date, time,
// numberOfPeople and stops at the first failure. Absent slots pass.
// emailAddress is not checked.
func (v *Validator) Validate(slots models.SlotSet) models.ValidationResult {
	checks := []struct {
		slot  string
		check func(string) (bool, *string)
	}{
		{models.SlotLocation, v.checkLocation},
		{models.SlotCuisine, v.checkCuisine},
		{models.SlotDate, v.checkDate},
		{models.SlotTime, checkTime},
		{models.SlotNumberOfPeople, checkPartySize},
	}

	for _, c := range checks {
		value := slots.Get(c.slot)
		if value == nil {
			continue
		}
		if ok, msg := c.check(*value); !ok {
			metrics.SlotValidationFailures.WithLabelValues(c.slot).Inc()
			v.logger.Debug("slot rejected", map[string]interface{}{
				"slot":  c.slot,
				"value": *value,
			})
			return models.InvalidResult(c.slot, msg)
		}
	}

	return models.ValidResult()
}

func (v *Validator) checkLocation(value string) (bool, *string) {
	if slices.Contains(v.config.Locations, strings.ToLower(value)) {
		return true, nil
	}
	return false, models.StringPtr(fmt.Sprintf(
		"We do not service in %s. We currently only provide service in Manhattan. Would you try again?", value))
}

func (v *Validator) checkCuisine(value string) (bool, *string) {
	if slices.Contains(v.config.Cuisines, strings.ToLower(value)) {
		return true, nil
	}
	return false, models.StringPtr(fmt.Sprintf(
		"We do not have any %s restaurants in the list. You may want to select from the following list: %s",
		value, strings.Join(v.config.Cuisines, ", ")))
}

func (v *Validator) checkDate(value string) (bool, *string) {
	date, ok := v.parseDate(value)
	if !ok {
		return false, models.StringPtr(msgUnknownDate)
	}

	now := v.clock.Now().In(v.config.Location)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, v.config.Location)
	if date.Before(today) {
		return false, models.StringPtr(msgPastDate)
	}
	return true, nil
}

// parseDate returns midnight of the calendar date in the configured zone.
func (v *Validator) parseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range v.config.DateLayouts {
		if t, err := time.ParseInLocation(layout, value, v.config.Location); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, v.config.Location), true
		}
	}
	return time.Time{}, false
}

// checkTime accepts exactly HH:MM with integer parts. Failures carry no
// message so the engine falls back to its build-time prompt.
func checkTime(value string) (bool, *string) {
	if len(value) != 5 || value[2] != ':' {
		return false, nil
	}
	if _, err := strconv.Atoi(value[:2]); err != nil {
		return false, nil
	}
	if _, err := strconv.Atoi(value[3:]); err != nil {
		return false, nil
	}
	return true, nil
}

func checkPartySize(value string) (bool, *string) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n <= 0 {
		return false, models.StringPtr(msgPartySize)
	}
	return true, nil
}
