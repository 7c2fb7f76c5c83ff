package skill

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResult_Spoken(t *testing.T) {
	tests := []struct {
		res  Result
		want string
	}{
		{OK("Opening %s", "chrome"), "Opening chrome"},
		{Fail(CodeUnavailable, errors.New("dial tcp"), "Weather check failed."), "Error: Weather check failed."},
		{Fail(CodeMisconfigured, nil, "News API key missing."), "Error: News API key missing."},
		{Fail(CodeNotFound, nil, "Information not found"), "Error: Information not found"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.res.Spoken())
		assert.Equal(t, tt.res.Code != CodeOK, tt.res.Failed())
	}
}

func TestResult_ErrIsNeverSpoken(t *testing.T) {
	res := Fail(CodeFailed, errors.New("permission denied: /secret"), "Screenshot failed.")
	assert.NotContains(t, res.Spoken(), "secret")
}

func TestCode_String(t *testing.T) {
	assert.Equal(t, "ok", CodeOK.String())
	assert.Equal(t, "not_found", CodeNotFound.String())
	assert.Equal(t, "code(42)", Code(42).String())
}

func TestHandlerFunc(t *testing.T) {
	var h Handler = HandlerFunc(func(_ context.Context, args Args) Result {
		return OK("hi %s", args["name"])
	})
	assert.Equal(t, "hi sir", h.Execute(context.Background(), Args{"name": "sir"}).Text)
}

func TestHelp(t *testing.T) {
	res := Help(context.Background(), nil)
	assert.False(t, res.Failed())
	assert.Contains(t, res.Text, "Say 'exit' when done.")
}
