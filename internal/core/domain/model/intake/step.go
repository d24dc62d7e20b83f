package intake

// Step is the position of a Session in the wizard.
type Step int

const (
	StepUnknown Step = iota
	StepSelectService
	StepSendPhoto
	StepEnterDescription
	StepEnterName
	StepEnterPhone
	StepConfirm
	StepCreated
	StepCancelled
)

func (s Step) String() string {
	switch s {
	case StepSelectService:
		return "select_service"
	case StepSendPhoto:
		return "send_photo"
	case StepEnterDescription:
		return "enter_description"
	case StepEnterName:
		return "enter_name"
	case StepEnterPhone:
		return "enter_phone"
	case StepConfirm:
		return "confirm"
	case StepCreated:
		return "created"
	case StepCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// IsTerminal reports whether the session accepts no further input.
func (s Step) IsTerminal() bool {
	return s == StepCreated || s == StepCancelled
}

// IsOptional reports whether the step accepts a skip.
func (s Step) IsOptional() bool {
	switch s {
	case StepSendPhoto, StepEnterDescription, StepEnterName, StepEnterPhone:
		return true
	default:
		return false
	}
}

// expects is the input kind a step consumes besides skip and cancel.
func (s Step) expects() InputKind {
	switch s {
	case StepSelectService:
		return InputSelection
	case StepSendPhoto:
		return InputPhoto
	case StepEnterDescription, StepEnterName, StepEnterPhone:
		return InputText
	case StepConfirm:
		return InputConfirm
	default:
		return 0
	}
}

// InputKind classifies what the client sent.
type InputKind int

const (
	InputSelection InputKind = iota + 1
	InputPhoto
	InputText
	InputSkip
	InputConfirm
	InputCancel
)

func (k InputKind) String() string {
	switch k {
	case InputSelection:
		return "selection"
	case InputPhoto:
		return "photo"
	case InputText:
		return "text"
	case InputSkip:
		return "skip"
	case InputConfirm:
		return "confirm"
	case InputCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// Input is a single client action fed to Session.Apply.
type Input struct {
	Kind  InputKind
	Value string
}

func Selection(value string) Input {
	return Input{Kind: InputSelection, Value: value}
}

func Photo(ref string) Input {
	return Input{Kind: InputPhoto, Value: ref}
}

func Text(text string) Input {
	return Input{Kind: InputText, Value: text}
}

func Skip() Input {
	return Input{Kind: InputSkip}
}

func Confirm() Input {
	return Input{Kind: InputConfirm}
}

func Cancel() Input {
	return Input{Kind: InputCancel}
}
