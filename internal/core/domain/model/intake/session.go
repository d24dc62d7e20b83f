package intake

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"workshop/internal/core/domain/model/order"
	"workshop/internal/pkg/errs"
	"workshop/internal/pkg/guard"
)

const (
	MaxDescriptionLength = 1000
	MaxNameLength        = 100
	minPhoneDigits       = 5
	maxPhoneDigits       = 15
	fallbackClientName   = "Client"
)

var (
	ErrSessionIsNotConstructed = errors.New("Session must be created via NewSession constructor")
	ErrSessionClosed           = errors.New("intake session is closed")
)

// Draft is the partially filled order. Empty fields were skipped.
type Draft struct {
	Service     order.ServiceCategory
	PhotoRef    string
	Description string
	ClientName  string
	ClientPhone string
}

// Details converts the draft into the order constructor input.
func (d Draft) Details() order.Details {
	return order.Details{
		Description: d.Description,
		PhotoRef:    d.PhotoRef,
		ClientName:  d.ClientName,
		ClientPhone: d.ClientPhone,
	}
}

// Session is the ephemeral wizard state of one user. It is not safe for
// concurrent use; the session store hands out one session per user.
type Session struct {
	userID      int64
	displayName string
	step        Step
	draft       Draft
	startedAt   time.Time
	guard       guard.ConstructorGuard
}

// NewSession starts a wizard at SelectService. displayName is the platform
// name used when the client skips the name step.
func NewSession(userID int64, displayName string, now time.Time) (*Session, error) {
	if userID <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("userId", fmt.Errorf("%d is not a valid user id", userID))
	}
	return &Session{
		userID:      userID,
		displayName: strings.TrimSpace(displayName),
		step:        StepSelectService,
		startedAt:   now,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (s *Session) Validate() error {
	if s == nil {
		return ErrSessionIsNotConstructed
	}
	return s.guard.Validate(ErrSessionIsNotConstructed)
}

func (s *Session) UserID() int64 {
	return s.userID
}

func (s *Session) Step() Step {
	return s.step
}

func (s *Session) Draft() Draft {
	return s.draft
}

func (s *Session) StartedAt() time.Time {
	return s.startedAt
}

// CanConfirm reports whether a confirm input would complete the wizard.
func (s *Session) CanConfirm() bool {
	return s.step == StepConfirm
}

// Apply feeds one input to the wizard.
//
// Returns:
//   - nil when the input was consumed and the step advanced
//   - ErrSessionClosed when the session already reached Created or Cancelled
//   - ValueIsInvalidError when the input kind does not fit the current step
//   - ValueIsRequiredError or ValueIsOutOfRangeError for bad text; the step
//     does not change so the client can retry
func (s *Session) Apply(in Input) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if s.step.IsTerminal() {
		return ErrSessionClosed
	}

	if in.Kind == InputCancel {
		s.step = StepCancelled
		s.draft = Draft{}
		return nil
	}
	if in.Kind == InputSkip {
		if !s.step.IsOptional() {
			return errs.NewValueIsInvalidErrorWithCause("input", fmt.Errorf("step %s cannot be skipped", s.step))
		}
		s.skip()
		return nil
	}
	if in.Kind != s.step.expects() {
		return errs.NewValueIsInvalidErrorWithCause("input",
			fmt.Errorf("step %s expects %s, got %s", s.step, s.step.expects(), in.Kind))
	}

	switch s.step {
	case StepSelectService:
		service, err := order.ParseServiceCategory(in.Value)
		if err != nil {
			return err
		}
		s.draft.Service = service
		s.step = StepSendPhoto
	case StepSendPhoto:
		if in.Value == "" {
			return errs.NewValueIsRequiredError("photo")
		}
		s.draft.PhotoRef = in.Value
		s.step = StepEnterDescription
	case StepEnterDescription:
		text, err := cleanText("description", in.Value, MaxDescriptionLength)
		if err != nil {
			return err
		}
		s.draft.Description = text
		s.step = StepEnterName
	case StepEnterName:
		text, err := cleanText("name", in.Value, MaxNameLength)
		if err != nil {
			return err
		}
		s.draft.ClientName = text
		s.step = StepEnterPhone
	case StepEnterPhone:
		phone, err := cleanPhone(in.Value)
		if err != nil {
			return err
		}
		s.draft.ClientPhone = phone
		s.step = StepConfirm
	case StepConfirm:
		s.step = StepCreated
	}
	return nil
}

func (s *Session) skip() {
	switch s.step {
	case StepSendPhoto:
		s.step = StepEnterDescription
	case StepEnterDescription:
		s.step = StepEnterName
	case StepEnterName:
		s.draft.ClientName = s.defaultName()
		s.step = StepEnterPhone
	case StepEnterPhone:
		s.step = StepConfirm
	}
}

func (s *Session) defaultName() string {
	if s.displayName == "" {
		return fallbackClientName
	}
	return s.displayName
}

func cleanText(param, value string, limit int) (string, error) {
	text := strings.TrimSpace(value)
	if text == "" {
		return "", errs.NewValueIsRequiredError(param)
	}
	if n := utf8.RuneCountInString(text); n > limit {
		return "", errs.NewValueIsOutOfRangeError(param, n, 1, limit)
	}
	return text, nil
}

func cleanPhone(value string) (string, error) {
	phone := strings.TrimSpace(value)
	if phone == "" {
		return "", errs.NewValueIsRequiredError("phone")
	}
	digits := 0
	for _, r := range phone {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == '+' || r == '-' || r == ' ' || r == '(' || r == ')':
		default:
			return "", errs.NewValueIsInvalidErrorWithCause("phone", fmt.Errorf("unexpected character %q", r))
		}
	}
	if digits < minPhoneDigits || digits > maxPhoneDigits {
		return "", errs.NewValueIsOutOfRangeError("phone digits", digits, minPhoneDigits, maxPhoneDigits)
	}
	return phone, nil
}
