package postgres

import "time"

// queryTimeout bounds every repository call.
const queryTimeout = 5 * time.Second
