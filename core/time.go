// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"time"
)

// NewTime creates a new time service
func NewTime(cfg TimeConfiguration) Time {
	delay := cfg.EventPollDelay
	if delay <= 0 {
		delay = DefaultConfiguration.Time.EventPollDelay
	}

	return Time{
		eventPollDelay: delay,
		eventTicker:    time.NewTicker(time.Duration(delay) * time.Millisecond),
	}
}

// Time contains the tickers driving the event loop
type Time struct {
	eventPollDelay int
	eventTicker    *time.Ticker
}

// EventPollDelay gets the delay between event polls in milliseconds
func (t *Time) EventPollDelay() int {
	return t.eventPollDelay
}

// EventTicker gets the initialized event ticker for the event loop
func (t *Time) EventTicker() *time.Ticker {
	return t.eventTicker
}

// Stop stops the tickers
func (t *Time) Stop() {
	t.eventTicker.Stop()
}
