package registration_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/regform/modules/registration"
)

func requireGroup(t *testing.T, f *registration.Form, field registration.Field) registration.FieldGroup {
	t.Helper()
	g, ok := f.Group(field)
	require.True(t, ok, "missing group %s", field)
	return g
}

func TestNewForm(t *testing.T) {
	t.Parallel()

	f := registration.NewForm(validInput())

	groups := f.Groups()
	require.Len(t, groups, 4)
	for i, field := range registration.Fields {
		g := groups[i]
		assert.Equal(t, field, g.Field)
		assert.Equal(t, registration.StatusNone, g.Status)
		assert.Equal(t, "input-control", g.Class())
		assert.Empty(t, g.Message)
	}

	assert.Equal(t, "alice", requireGroup(t, f, registration.FieldUsername).Value)
	assert.Equal(t, "alice@example.com", requireGroup(t, f, registration.FieldEmail).Value)
	assert.Empty(t, requireGroup(t, f, registration.FieldPassword).Value)
	assert.Empty(t, requireGroup(t, f, registration.FieldConfirmPassword).Value)
}

func TestForm_SetErrorAndSuccess(t *testing.T) {
	t.Parallel()

	f := registration.NewForm(registration.Input{})

	f.SetError(registration.FieldEmail, "Email is required")
	g := requireGroup(t, f, registration.FieldEmail)
	assert.Equal(t, registration.StatusError, g.Status)
	assert.Equal(t, "input-control error", g.Class())
	assert.Equal(t, "Email is required", g.Message)

	f.SetSuccess(registration.FieldEmail)
	g = requireGroup(t, f, registration.FieldEmail)
	assert.Equal(t, registration.StatusSuccess, g.Status)
	assert.Equal(t, "input-control success", g.Class())
	assert.Empty(t, g.Message)

	f.SetError(registration.FieldEmail, "Please enter a valid email")
	g = requireGroup(t, f, registration.FieldEmail)
	assert.Equal(t, "input-control error", g.Class())
	assert.Equal(t, "Please enter a valid email", g.Message)
}

func TestForm_UnknownFieldIgnored(t *testing.T) {
	t.Parallel()

	f := registration.NewForm(registration.Input{})
	f.SetError("nickname", "nope")
	f.SetSuccess("nickname")

	_, ok := f.Group("nickname")
	assert.False(t, ok)
	for _, g := range f.Groups() {
		assert.Equal(t, registration.StatusNone, g.Status)
	}
}

func TestForm_Present(t *testing.T) {
	t.Parallel()

	in := validInput()
	in.Email = "a@b"
	r := registration.Validate(in)

	f := registration.NewForm(r.Input)
	f.Present(r)

	for _, g := range f.Groups() {
		if g.Field == registration.FieldEmail {
			assert.Equal(t, registration.StatusError, g.Status)
			assert.Equal(t, "Please enter a valid email", g.Message)
			continue
		}
		assert.Equal(t, registration.StatusSuccess, g.Status, g.Field)
		assert.Empty(t, g.Message, g.Field)
	}
}

func TestForm_PresentOverwritesEarlierPass(t *testing.T) {
	t.Parallel()

	f := registration.NewForm(registration.Input{})
	f.Present(registration.Validate(registration.Input{}))
	f.Present(registration.Validate(validInput()))

	for _, g := range f.Groups() {
		assert.Equal(t, registration.StatusSuccess, g.Status, g.Field)
		assert.Empty(t, g.Message)
	}
}

func TestForm_GroupsReturnsCopy(t *testing.T) {
	t.Parallel()

	f := registration.NewForm(registration.Input{})
	groups := f.Groups()
	groups[0].Status = registration.StatusError

	assert.Equal(t, registration.StatusNone, requireGroup(t, f, registration.FieldUsername).Status)
}
