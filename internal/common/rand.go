package common

import "crypto/rand"

// randRead is a seam over crypto/rand.Read.
var randRead = rand.Read
