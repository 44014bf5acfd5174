package evt

import (
	"github.com/asaskevich/EventBus"
)

const (
	// TestCaseCompleted fires when a TestCase finishes all its steps. Parameter: *report.TestCase
	TestCaseCompleted = "testcase:completed"

	// TestSuiteCompleted fires when a full TestSuite finishes. Parameter: *report.TestSuite
	TestSuiteCompleted = "testsuite:completed"

	// QueryPerformed fires after every DNS query attempt. Parameters: qname string, rdtype string, err error
	QueryPerformed = "query:performed"

	// ChainOfTrustEntryAdded fires when a key or DS record is added to a ChainOfTrust. Parameters: qname string, kind string
	ChainOfTrustEntryAdded = "chain:entryAdded"

	// ApplicationStarted is the topic for application start. Parameter: version number, build time.
	// No package in this module publishes it.
	ApplicationStarted = "application:started"
)

// nolint
var evtBus = EventBus.New()

// Bus returns the global bus instance
func Bus() EventBus.Bus {
	return evtBus
}
