package fuzzing

import (
	"github.com/basilisk-fuzz/basilisk/events"
)

// FuzzerEvents defines event emitters for a Fuzzer.
type FuzzerEvents struct {
	// FuzzerStarting emits events when the Fuzzer has initialized all campaign state and is about to enter its
	// main fuzzing loop.
	FuzzerStarting events.EventEmitter[FuzzerStartingEvent]

	// FuzzerStopping emits events when the Fuzzer is exiting its main fuzzing loop.
	FuzzerStopping events.EventEmitter[FuzzerStoppingEvent]

	// CrashDetected emits events when the Fuzzer finds an input which breaks the campaign invariant or faults
	// the EVM. The crash is the campaign's success condition, so this event fires at most once per run.
	CrashDetected events.EventEmitter[CrashDetectedEvent]
}

// FuzzerStartingEvent describes an event where a fuzzing.Fuzzer has initialized all campaign state and is about to
// begin its main fuzzing loop.
type FuzzerStartingEvent struct {
	// Fuzzer represents the instance of the fuzzing.Fuzzer for which the event occurred.
	Fuzzer *Fuzzer
}

// FuzzerStoppingEvent describes an event where a fuzzing.Fuzzer is exiting the main fuzzing loop.
type FuzzerStoppingEvent struct {
	// Fuzzer represents the instance of the fuzzing.Fuzzer for which the event occurred.
	Fuzzer *Fuzzer

	// err describes a potential error returned by the fuzzer run.
	err error
}

// CrashDetectedEvent describes an event where a fuzzing.Fuzzer found a crashing input.
type CrashDetectedEvent struct {
	// Fuzzer represents the instance of the fuzzing.Fuzzer for which the event occurred.
	Fuzzer *Fuzzer

	// Report represents the crash report describing the crashing input.
	Report *CrashReport
}
