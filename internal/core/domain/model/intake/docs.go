// Package intake models the wizard a client walks through to place an order.
//
// A Session moves through a fixed sequence of steps:
//
//	SelectService -> SendPhoto -> EnterDescription -> EnterName -> EnterPhone -> Confirm -> Created
//
// Every step except SelectService and Confirm is optional and accepts an
// explicit skip. A cancel input is valid from every non-terminal step and
// discards the draft. The session never touches persistence; the caller
// persists the Draft only after the Confirm step accepted a confirm input.
package intake
