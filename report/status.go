// Package report implements the TestStep/TestCase/TestSuite hierarchy the
// walker and trivial probe families append to, and its JSON serialization
// for external reporting.
package report

//go:generate go run github.com/abice/go-enum -f=$GOFILE --marshal --names

// Status is a step or case outcome, ordered SUCCESS < WARNING < ERROR so
// that max(statuses) is a well-defined "worst outcome so far". ENUM(
// success
// warning
// error
// )
type Status int
