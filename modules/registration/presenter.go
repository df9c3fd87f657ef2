package registration

// Status is the visual state of a field group.
type Status int

const (
	// StatusNone is the state of a form that has not been submitted yet.
	StatusNone Status = iota
	StatusError
	StatusSuccess
)

// Class returns the CSS class for the status, or "" for StatusNone.
func (s Status) Class() string {
	switch s {
	case StatusError:
		return "error"
	case StatusSuccess:
		return "success"
	default:
		return ""
	}
}

// FieldGroup is the rendered state of one input with its label and message slot.
type FieldGroup struct {
	Field   Field
	Value   string
	Status  Status
	Message string
}

// Class returns the class attribute of the group element.
func (g FieldGroup) Class() string {
	if c := g.Status.Class(); c != "" {
		return "input-control " + c
	}
	return "input-control"
}

// Form holds presentation state for every field.
type Form struct {
	groups []FieldGroup
}

// NewForm returns a form pre-filled with in. Secret fields are left empty.
// No group is marked as errored or successful.
func NewForm(in Input) *Form {
	f := &Form{groups: make([]FieldGroup, 0, len(Fields))}
	for _, field := range Fields {
		g := FieldGroup{Field: field}
		if !field.Secret() {
			g.Value = in.Value(field)
		}
		f.groups = append(f.groups, g)
	}
	return f
}

// SetError shows message for field and marks its group errored.
// Unknown fields are ignored.
func (f *Form) SetError(field Field, message string) {
	if g := f.group(field); g != nil {
		g.Status = StatusError
		g.Message = message
	}
}

// SetSuccess clears the message for field and marks its group successful.
func (f *Form) SetSuccess(field Field) {
	if g := f.group(field); g != nil {
		g.Status = StatusSuccess
		g.Message = ""
	}
}

// Present applies a whole validation pass, replacing earlier state.
func (f *Form) Present(r Result) {
	for _, s := range r.States {
		if s.IsError() {
			f.SetError(s.Field, s.Message)
		} else {
			f.SetSuccess(s.Field)
		}
	}
}

// Group returns the state of field.
func (f *Form) Group(field Field) (FieldGroup, bool) {
	if g := f.group(field); g != nil {
		return *g, true
	}
	return FieldGroup{}, false
}

// Groups returns a copy of all groups in display order.
func (f *Form) Groups() []FieldGroup {
	out := make([]FieldGroup, len(f.groups))
	copy(out, f.groups)
	return out
}

func (f *Form) group(field Field) *FieldGroup {
	for i := range f.groups {
		if f.groups[i].Field == field {
			return &f.groups[i]
		}
	}
	return nil
}
