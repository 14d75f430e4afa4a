package main

import "time"

// timeNow is a hook for freezing the clock.
var timeNow = time.Now
