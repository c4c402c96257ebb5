package main

// Exit codes shared by all commands.
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (runtime failure, query failure)
	ExitConfigError = 2 // Configuration error (missing source database, bad config)
	ExitDataError   = 3 // Data error (unknown item key)
)
