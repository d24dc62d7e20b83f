// Package action is the closed set of button identifiers the workshop puts
// on outgoing messages and accepts back from clients and administrators.
//
// Identifiers are encoded as "verb:arg:arg". Only verbs listed here parse;
// free text is never interpreted as an action.
package action

import (
	"fmt"
	"strconv"
	"strings"

	"workshop/internal/core/domain/model/adminslot"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/pkg/errs"
)

// MaxEncodedLength is the largest identifier the chat transport accepts.
const MaxEncodedLength = 64

const separator = ":"

type Verb string

const (
	VerbNewOrder      Verb = "new"
	VerbMyOrders      Verb = "my"
	VerbSelectService Verb = "svc"
	VerbSkipStep      Verb = "skip"
	VerbConfirmOrder  Verb = "confirm"
	VerbCancelIntake  Verb = "abort"

	VerbListOrders    Verb = "ol"
	VerbOrderDetail   Verb = "od"
	VerbSetStatus     Verb = "os"
	VerbSkipReadyDate Verb = "srd"
	VerbSkipComment   Verb = "smc"
	VerbSearch        Verb = "find"
	VerbBroadcast     Verb = "bc"

	VerbAlreadyDelivered Verb = "rdone"
	VerbBringLater       Verb = "rlater"
	VerbClientCancel     Verb = "rcancel"
	VerbRate             Verb = "rate"
)

var arity = map[Verb]int{
	VerbNewOrder:         0,
	VerbMyOrders:         0,
	VerbSelectService:    1,
	VerbSkipStep:         0,
	VerbConfirmOrder:     0,
	VerbCancelIntake:     0,
	VerbListOrders:       2,
	VerbOrderDetail:      1,
	VerbSetStatus:        2,
	VerbSkipReadyDate:    1,
	VerbSkipComment:      1,
	VerbSearch:           1,
	VerbBroadcast:        0,
	VerbAlreadyDelivered: 1,
	VerbBringLater:       1,
	VerbClientCancel:     1,
	VerbRate:             2,
}

// FilterAll is the list filter identifier that matches every status.
const FilterAll = "all"

// Action is a decoded button identifier.
type Action struct {
	verb Verb
	args []string
}

// Parse decodes an identifier produced by Encode.
//
// Returns:
//   - the Action when the verb is known and the argument count matches
//   - ValueIsInvalidError otherwise
func Parse(data string) (Action, error) {
	if data == "" || len(data) > MaxEncodedLength {
		return Action{}, errs.NewValueIsInvalidErrorWithCause("action", fmt.Errorf("bad length %d", len(data)))
	}
	parts := strings.Split(data, separator)
	verb := Verb(parts[0])
	want, ok := arity[verb]
	if !ok {
		return Action{}, errs.NewValueIsInvalidErrorWithCause("action", fmt.Errorf("unknown verb %q", parts[0]))
	}
	if len(parts)-1 != want {
		return Action{}, errs.NewValueIsInvalidErrorWithCause("action",
			fmt.Errorf("verb %q takes %d arguments, got %d", verb, want, len(parts)-1))
	}
	return Action{verb: verb, args: parts[1:]}, nil
}

func (a Action) Verb() Verb {
	return a.verb
}

// Arg returns the i-th argument or an empty string.
func (a Action) Arg(i int) string {
	if i < 0 || i >= len(a.args) {
		return ""
	}
	return a.args[i]
}

// OrderID parses the first argument as an order id.
func (a Action) OrderID() (int64, error) {
	id, err := strconv.ParseInt(a.Arg(0), 10, 64)
	if err != nil || id <= 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause("orderId", fmt.Errorf("%q is not an order id", a.Arg(0)))
	}
	return id, nil
}

// Int parses the i-th argument as a non-negative integer.
func (a Action) Int(i int) (int, error) {
	v, err := strconv.Atoi(a.Arg(i))
	if err != nil || v < 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause("action", fmt.Errorf("argument %d is not a number", i))
	}
	return v, nil
}

// Status parses the i-th argument as an order status.
func (a Action) Status(i int) (order.Status, error) {
	return order.ParseStatus(a.Arg(i))
}

// SearchBy parses the argument of a search action.
func (a Action) SearchBy() (adminslot.SearchBy, error) {
	switch a.Arg(0) {
	case adminslot.SearchByID.String():
		return adminslot.SearchByID, nil
	case adminslot.SearchByName.String():
		return adminslot.SearchByName, nil
	default:
		return 0, errs.NewValueIsInvalidErrorWithCause("searchBy", fmt.Errorf("%q is not a search mode", a.Arg(0)))
	}
}

// Encode renders the identifier.
func (a Action) Encode() string {
	if len(a.args) == 0 {
		return string(a.verb)
	}
	return string(a.verb) + separator + strings.Join(a.args, separator)
}

func newAction(verb Verb, args ...string) Action {
	return Action{verb: verb, args: args}
}

func id(v int64) string {
	return strconv.FormatInt(v, 10)
}

func NewOrder() Action {
	return newAction(VerbNewOrder)
}

func MyOrders() Action {
	return newAction(VerbMyOrders)
}

func SelectService(c order.ServiceCategory) Action {
	return newAction(VerbSelectService, string(c))
}

func SkipStep() Action {
	return newAction(VerbSkipStep)
}

func ConfirmOrder() Action {
	return newAction(VerbConfirmOrder)
}

func CancelIntake() Action {
	return newAction(VerbCancelIntake)
}

// ListOrders opens a page of the admin listing. filter is FilterAll or a
// status identifier.
func ListOrders(filter string, page int) Action {
	return newAction(VerbListOrders, filter, strconv.Itoa(page))
}

func OrderDetail(orderID int64) Action {
	return newAction(VerbOrderDetail, id(orderID))
}

func SetStatus(orderID int64, target order.Status) Action {
	return newAction(VerbSetStatus, id(orderID), target.String())
}

func SkipReadyDate(orderID int64) Action {
	return newAction(VerbSkipReadyDate, id(orderID))
}

func SkipComment(orderID int64) Action {
	return newAction(VerbSkipComment, id(orderID))
}

func Search(by adminslot.SearchBy) Action {
	return newAction(VerbSearch, by.String())
}

func StartBroadcast() Action {
	return newAction(VerbBroadcast)
}

func AlreadyDelivered(orderID int64) Action {
	return newAction(VerbAlreadyDelivered, id(orderID))
}

func BringLater(orderID int64) Action {
	return newAction(VerbBringLater, id(orderID))
}

func ClientCancel(orderID int64) Action {
	return newAction(VerbClientCancel, id(orderID))
}

func Rate(orderID int64, rating int) Action {
	return newAction(VerbRate, id(orderID), strconv.Itoa(rating))
}
