package registration

// Field identifies a form input. The value is used as input name, element
// id and error key.
type Field string

const (
	FieldUsername        Field = "username"
	FieldEmail           Field = "email"
	FieldPassword        Field = "password"
	FieldConfirmPassword Field = "cpassword"
)

// Fields lists the form inputs in display order.
var Fields = []Field{FieldUsername, FieldEmail, FieldPassword, FieldConfirmPassword}

// Label returns the human-readable field name.
func (f Field) Label() string {
	switch f {
	case FieldUsername:
		return "Username"
	case FieldEmail:
		return "Email"
	case FieldPassword:
		return "Password"
	case FieldConfirmPassword:
		return "Confirm Password"
	default:
		return string(f)
	}
}

// InputType returns the HTML input type.
func (f Field) InputType() string {
	switch f {
	case FieldEmail:
		return "email"
	case FieldPassword, FieldConfirmPassword:
		return "password"
	default:
		return "text"
	}
}

// GroupID is the id of the element enclosing the input, its label and its message.
func (f Field) GroupID() string {
	return string(f) + "-group"
}

// Secret reports whether submitted values are never echoed back.
func (f Field) Secret() bool {
	return f == FieldPassword || f == FieldConfirmPassword
}
