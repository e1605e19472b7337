package service

import "time"

// nowFunc is swapped out in tests that need a fixed clock.
var nowFunc = time.Now
