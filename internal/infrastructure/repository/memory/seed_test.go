package memory

import "time"

var fixedLoadTime = time.Date(2026, time.March, 1, 8, 0, 0, 0, time.UTC)
