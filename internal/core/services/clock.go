package services

import (
	"time"

	"github.com/custodia-labs/docwatch/internal/core/ports/driven"
)

// systemClock reads the wall clock.
type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the default Clock.
var SystemClock driven.Clock = systemClock{}
