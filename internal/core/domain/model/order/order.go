package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"workshop/internal/pkg/errs"
	"workshop/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Details carries the client supplied part of an order as collected by the
// intake wizard. Empty strings stand for skipped optional steps.
type Details struct {
	Description string
	PhotoRef    string
	ClientName  string
	ClientPhone string
}

// Order represents a repair or tailoring job. It is the aggregate root that
// manages the job lifecycle from intake to hand-over.
//
// Order follows these invariants:
//   - Status only changes along the edges of the Status graph
//   - acceptedAt is set exactly when the order enters Accepted and never cleared
//   - issuedAt is set exactly when the order enters Issued
//   - feedbackRequested is monotonic
//   - userID never changes after construction
//
// The identifier is assigned once by the repository on insert; every status
// change is recorded as a TransitionEvent until PullEvents drains it.
type Order struct {
	id     int64
	userID int64
	status Status

	service     ServiceCategory
	description string
	photoRef    string
	clientName  string
	clientPhone string

	createdAt  time.Time
	acceptedAt *time.Time
	issuedAt   *time.Time

	readyDate     string
	masterComment string

	clientReminded    bool
	lastReminderDate  *time.Time
	feedbackRequested bool

	events []TransitionEvent
	guard  guard.ConstructorGuard
}

// NewOrder creates a draft order in status New. The order has no identifier
// until the repository assigns one through AssignID.
//
// Parameters:
//   - userID: owning chat user (must be positive)
//   - service: one of ServiceCategories()
//   - details: client supplied fields; ClientName is required
//   - now: creation instant
//
// Returns:
//   - *Order: the draft if all validations pass
//   - error: joined validation errors otherwise
func NewOrder(userID int64, service ServiceCategory, details Details, now time.Time) (*Order, error) {
	o := &Order{
		status:      New,
		description: strings.TrimSpace(details.Description),
		photoRef:    details.PhotoRef,
		clientPhone: strings.TrimSpace(details.ClientPhone),
		createdAt:   now,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setUserID(userID),
		o.setService(service),
		o.setClientName(details.ClientName),
		o.setCreatedAt(now),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Snapshot is the flat state of an order used by persistence adapters.
type Snapshot struct {
	ID                int64
	UserID            int64
	Status            Status
	Service           ServiceCategory
	Description       string
	PhotoRef          string
	ClientName        string
	ClientPhone       string
	CreatedAt         time.Time
	AcceptedAt        *time.Time
	IssuedAt          *time.Time
	ReadyDate         string
	MasterComment     string
	ClientReminded    bool
	LastReminderDate  *time.Time
	FeedbackRequested bool
}

// RestoreOrder rebuilds a persisted order. It checks the same invariants the
// aggregate maintains so corrupted rows surface as validation errors.
func RestoreOrder(s Snapshot) (*Order, error) {
	if s.ID <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("%d is not a valid order id", s.ID))
	}
	if err := s.Status.Validate(); err != nil {
		return nil, err
	}
	if err := checkAcceptedAt(s.Status, s.AcceptedAt); err != nil {
		return nil, err
	}

	o := &Order{
		id:                s.ID,
		userID:            s.UserID,
		status:            s.Status,
		service:           s.Service,
		description:       s.Description,
		photoRef:          s.PhotoRef,
		clientName:        s.ClientName,
		clientPhone:       s.ClientPhone,
		createdAt:         s.CreatedAt,
		acceptedAt:        copyTime(s.AcceptedAt),
		issuedAt:          copyTime(s.IssuedAt),
		readyDate:         s.ReadyDate,
		masterComment:     s.MasterComment,
		clientReminded:    s.ClientReminded,
		lastReminderDate:  copyTime(s.LastReminderDate),
		feedbackRequested: s.FeedbackRequested,
		guard:             guard.NewConstructorGuard(),
	}
	if err := errors.Join(o.setUserID(s.UserID), o.setService(s.Service)); err != nil {
		return nil, err
	}
	return o, nil
}

// Snapshot exports the current state.
func (o *Order) Snapshot() Snapshot {
	return Snapshot{
		ID:                o.id,
		UserID:            o.userID,
		Status:            o.status,
		Service:           o.service,
		Description:       o.description,
		PhotoRef:          o.photoRef,
		ClientName:        o.clientName,
		ClientPhone:       o.clientPhone,
		CreatedAt:         o.createdAt,
		AcceptedAt:        copyTime(o.acceptedAt),
		IssuedAt:          copyTime(o.issuedAt),
		ReadyDate:         o.readyDate,
		MasterComment:     o.masterComment,
		ClientReminded:    o.clientReminded,
		LastReminderDate:  copyTime(o.lastReminderDate),
		FeedbackRequested: o.feedbackRequested,
	}
}

// Validate ensures the Order instance was built by NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// ID returns the repository assigned identifier, zero for unsaved drafts.
func (o *Order) ID() int64 {
	return o.id
}

// UserID returns the owning chat user.
func (o *Order) UserID() int64 {
	return o.userID
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

func (o *Order) Service() ServiceCategory {
	return o.service
}

func (o *Order) Description() string {
	return o.description
}

// PhotoRef returns the opaque transport handle of the uploaded photo.
func (o *Order) PhotoRef() string {
	return o.photoRef
}

func (o *Order) ClientName() string {
	return o.clientName
}

func (o *Order) ClientPhone() string {
	return o.clientPhone
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// AcceptedAt returns nil until the order has been accepted.
func (o *Order) AcceptedAt() *time.Time {
	return copyTime(o.acceptedAt)
}

func (o *Order) IssuedAt() *time.Time {
	return copyTime(o.issuedAt)
}

// ReadyDate is the administrator entered text, stored verbatim.
func (o *Order) ReadyDate() string {
	return o.readyDate
}

func (o *Order) MasterComment() string {
	return o.masterComment
}

func (o *Order) ClientReminded() bool {
	return o.clientReminded
}

func (o *Order) LastReminderDate() *time.Time {
	return copyTime(o.lastReminderDate)
}

func (o *Order) FeedbackRequested() bool {
	return o.feedbackRequested
}

// Number is the client-facing order number.
func (o *Order) Number() string {
	return "#" + formatInt(o.id)
}

// BelongsTo reports whether userID owns the order.
func (o *Order) BelongsTo(userID int64) bool {
	return o.userID == userID
}

// AssignID stores the repository generated identifier and records the
// creation event. It can only be called once.
func (o *Order) AssignID(id int64) error {
	if o.id != 0 {
		return errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("order already has id %d", o.id))
	}
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("%d is not a valid order id", id))
	}
	o.id = id
	o.record(Unknown, ClientActor(o.userID, o.clientName), o.createdAt)
	return nil
}

// MarkSpam flags an unsaved draft as spam. Spam is not part of the
// transition graph, so no edge is checked and the order stays terminal.
func (o *Order) MarkSpam() error {
	if o.id != 0 || o.status != New {
		return errs.NewValueIsInvalidErrorWithCause("status", errors.New("only unsaved drafts can be marked as spam"))
	}
	o.status = Spam
	return nil
}

// ChangeStatus moves the order one step along the transition graph.
//
// Entering Accepted stamps acceptedAt, entering Issued stamps issuedAt.
// A successful change records a TransitionEvent.
//
// Returns:
//   - nil on success
//   - ConflictError if there is no edge from the current status to target;
//     the order is left unchanged
func (o *Order) ChangeStatus(target Status, actor Actor, now time.Time) error {
	from := o.status
	next, err := from.TransitionTo(target)
	if err != nil {
		if errors.Is(err, errs.ErrConflict) {
			return errs.NewConflictError("order", o.id, from.String(), target.String())
		}
		return err
	}

	o.status = next
	switch next {
	case Accepted:
		o.acceptedAt = &now
	case Issued:
		o.issuedAt = &now
	}
	o.record(from, actor, now)
	return nil
}

// Accept moves a New order to Accepted and stores the ready date verbatim.
// An empty ready date means the administrator skipped it.
func (o *Order) Accept(actor Actor, readyDate string, now time.Time) error {
	if err := o.ChangeStatus(Accepted, actor, now); err != nil {
		return err
	}
	o.readyDate = readyDate
	return nil
}

// SetMasterComment stores the optional comment of the acceptance sub-flow.
func (o *Order) SetMasterComment(comment string) error {
	if o.acceptedAt == nil {
		return errs.NewValueIsInvalidErrorWithCause("masterComment", errors.New("order has not been accepted"))
	}
	o.masterComment = strings.TrimSpace(comment)
	return nil
}

// MarkReminded records that the stale-order reminder went out.
func (o *Order) MarkReminded(now time.Time) error {
	if o.status != New {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%s orders are not reminded", o.status))
	}
	o.clientReminded = true
	o.lastReminderDate = &now
	return nil
}

// DeferReminder handles the client's "bring later" answer: the reminder is
// re-armed and the cooldown restarts at now.
func (o *Order) DeferReminder(now time.Time) error {
	if o.status != New {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%s orders are not reminded", o.status))
	}
	o.clientReminded = false
	o.lastReminderDate = &now
	return nil
}

// MarkFeedbackRequested sets the feedback flag. Calling it again is a no-op.
func (o *Order) MarkFeedbackRequested() error {
	if o.status != Issued {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("feedback cannot be requested for %s orders", o.status))
	}
	o.feedbackRequested = true
	return nil
}

// IsDueForReminder reports whether a New order is old enough to be reminded
// and outside the cooldown of the previous reminder. A non-positive cooldown
// disables the cooldown check.
func (o *Order) IsDueForReminder(now time.Time, age, cooldown time.Duration) bool {
	if o.status != New || o.clientReminded || o.createdAt.After(now.Add(-age)) {
		return false
	}
	if o.lastReminderDate == nil || cooldown <= 0 {
		return true
	}
	return !o.lastReminderDate.After(now.Add(-cooldown))
}

// IsStuckAccepted reports whether the order has stayed Accepted longer than age.
func (o *Order) IsStuckAccepted(now time.Time, age time.Duration) bool {
	return o.status == Accepted && o.acceptedAt != nil && !o.acceptedAt.After(now.Add(-age))
}

// IsDueForFeedback reports whether an Issued order waited long enough for a
// feedback prompt that was not sent yet.
func (o *Order) IsDueForFeedback(now time.Time, delay time.Duration) bool {
	return o.status == Issued && !o.feedbackRequested && o.issuedAt != nil && !o.issuedAt.After(now.Add(-delay))
}

// LastEvent returns the most recently recorded event that was not pulled yet.
func (o *Order) LastEvent() (TransitionEvent, bool) {
	if len(o.events) == 0 {
		return TransitionEvent{}, false
	}
	return o.events[len(o.events)-1], true
}

// PullEvents returns the recorded events and clears them.
func (o *Order) PullEvents() []TransitionEvent {
	events := o.events
	o.events = nil
	return events
}

func (o *Order) record(from Status, actor Actor, now time.Time) {
	o.events = append(o.events, TransitionEvent{
		OrderID:    o.id,
		From:       from,
		To:         o.status,
		Actor:      actor,
		ClientID:   o.userID,
		ClientName: o.clientName,
		OccurredAt: now,
	})
}

func (o *Order) setUserID(userID int64) error {
	if userID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("userId", fmt.Errorf("%d is not a valid user id", userID))
	}
	o.userID = userID
	return nil
}

func (o *Order) setService(service ServiceCategory) error {
	if err := service.Validate(); err != nil {
		return err
	}
	o.service = service
	return nil
}

func (o *Order) setClientName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("clientName")
	}
	o.clientName = name
	return nil
}

func (o *Order) setCreatedAt(now time.Time) error {
	if now.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	return nil
}

func checkAcceptedAt(status Status, acceptedAt *time.Time) error {
	switch status {
	case Accepted, InProgress, Completed, Issued:
		if acceptedAt == nil {
			return errs.NewValueIsInvalidErrorWithCause("acceptedAt", fmt.Errorf("%s order must have an acceptance time", status))
		}
	case New, Spam:
		if acceptedAt != nil {
			return errs.NewValueIsInvalidErrorWithCause("acceptedAt", fmt.Errorf("%s order cannot have an acceptance time", status))
		}
	}
	return nil
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
