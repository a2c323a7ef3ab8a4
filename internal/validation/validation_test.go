package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvent(t *testing.T) {
	tests := []struct {
		name        string
		eventName   string
		description string
		wantFields  []string
	}{
		{name: "valid", eventName: "Go Meetup", description: "An evening of talks", wantFields: nil},
		{name: "name at limit passes", eventName: strings.Repeat("a", MaxNameLength), wantFields: nil},
		{name: "name over limit", eventName: strings.Repeat("a", MaxNameLength+1), wantFields: []string{"name"}},
		{name: "empty name", eventName: "", wantFields: []string{"name"}},
		{name: "whitespace only name", eventName: "   \t\n", wantFields: []string{"name"}},
		{name: "description over limit", eventName: "ok", description: strings.Repeat("d", MaxFreeTextLength+1), wantFields: []string{"description"}},
		{name: "both bad", eventName: "", description: strings.Repeat("d", MaxFreeTextLength+1), wantFields: []string{"name", "description"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Event(tt.eventName, tt.description)
			var got []string
			for _, fe := range errs {
				got = append(got, fe.Field)
			}
			assert.Equal(t, tt.wantFields, got)
		})
	}
}

// Length limits are counted in runes, not bytes.
func TestEvent_RuneLength(t *testing.T) {
	name := strings.Repeat("é", MaxNameLength)
	assert.Empty(t, Event(name, ""))
	assert.NotEmpty(t, Event(name+"é", ""))
}

func TestComment(t *testing.T) {
	assert.Empty(t, Comment(""))
	assert.Empty(t, Comment(strings.Repeat("c", MaxFreeTextLength)))

	errs := Comment(strings.Repeat("c", MaxFreeTextLength+1))
	assert.Len(t, errs, 1)
	assert.Equal(t, "comment", errs[0].Field)
}

func TestSignUp(t *testing.T) {
	tests := []struct {
		name       string
		userName   string
		username   string
		password   string
		wantFields []string
	}{
		{name: "valid", userName: "Jo", username: "jo", password: "longenough", wantFields: nil},
		{name: "short password", userName: "Jo", username: "jo", password: "short", wantFields: []string{"password"}},
		{name: "long password", userName: "Jo", username: "jo", password: strings.Repeat("p", MaxPasswordLength+1), wantFields: []string{"password"}},
		{name: "missing username", userName: "Jo", username: "", password: "longenough", wantFields: []string{"username"}},
		{name: "everything missing", userName: "", username: "", password: "", wantFields: []string{"name", "username", "password"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := SignUp(tt.userName, tt.username, tt.password)
			var got []string
			for _, fe := range errs {
				got = append(got, fe.Field)
			}
			assert.Equal(t, tt.wantFields, got)
		})
	}
}

// An empty password is under the minimum, so the message must say too
// short, never over the maximum.
func TestSignUp_EmptyPasswordMessage(t *testing.T) {
	errs := SignUp("Jo", "jo", "")
	fields := errs.Fields()
	assert.Contains(t, fields["password"], "at least")
}

func TestErrors_Fields(t *testing.T) {
	var errs Errors
	assert.Nil(t, errs.Fields())

	errs = errs.Add("name", "first")
	errs = errs.Add("name", "second")
	errs = errs.Add("comment", "third")

	fields := errs.Fields()
	assert.Equal(t, "first", fields["name"], "first message per field wins")
	assert.Equal(t, "third", fields["comment"])
	assert.Len(t, fields, 2)
}

func TestSingle(t *testing.T) {
	errs := Single("name", MsgNameTaken)
	assert.Len(t, errs, 1)
	assert.Equal(t, "name", errs[0].Field)
	assert.Equal(t, MsgNameTaken, errs[0].Message)
}
