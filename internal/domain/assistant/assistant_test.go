package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-lost-found/internal/domain/reports"
)

type fakeGen struct {
	out    string
	err    error
	calls  int
	prompt string
}

func (f *fakeGen) Generate(ctx context.Context, prompt string) (string, error) {
	f.calls++
	f.prompt = prompt
	return f.out, f.err
}

func TestNew_SelectsStrategy(t *testing.T) {
	assert.False(t, New(nil).IsRemote())
	assert.True(t, New(&fakeGen{}).IsRemote())
}

func TestLocal_FallbackExactText(t *testing.T) {
	a := New(nil)
	got, err := a.GenerateDescription(context.Background(), Attributes{
		Status:   reports.StatusLost,
		Gender:   reports.GenderMale,
		Color:    "Brown",
		Breed:    "Labrador",
		Location: "5th Ave",
	})
	require.NoError(t, err)
	assert.Equal(t, "This is a Male Brown Labrador. Last seen near 5th Ave.", got)
}

func TestLocal_FallbackFoundAndMissingDescriptors(t *testing.T) {
	got := Fallback(Attributes{Status: reports.StatusFound, Color: "Black", Species: "Cat", Location: "Main St"})
	assert.Equal(t, "This is a Black. Found near Main St.", got)

	got = Fallback(Attributes{Status: reports.StatusFound, Species: "Cat", Location: "Main St"})
	assert.Equal(t, "This is a Cat. Found near Main St.", got)
	assert.NotContains(t, got, "  ")
}

func TestRemote_TrimsResponse(t *testing.T) {
	gen := &fakeGen{out: "\n  A sweet black cat was found on Main St.  \n"}
	a := New(gen)

	got, err := a.GenerateDescription(context.Background(), Attributes{Status: reports.StatusFound, Color: "Black"})
	require.NoError(t, err)
	assert.Equal(t, "A sweet black cat was found on Main St.", got)
	assert.Equal(t, 1, gen.calls)
}

func TestRemote_FailureIsGenerationError(t *testing.T) {
	a := New(&fakeGen{err: errors.New("quota")})

	_, err := a.GenerateDescription(context.Background(), Attributes{Status: reports.StatusLost})
	var gErr *GenerationError
	require.ErrorAs(t, err, &gErr)
	assert.EqualError(t, gErr.Unwrap(), "quota")
}

func TestRemote_EmptyResponseIsGenerationError(t *testing.T) {
	a := New(&fakeGen{out: "   "})

	_, err := a.GenerateDescription(context.Background(), Attributes{Status: reports.StatusLost})
	var gErr *GenerationError
	require.ErrorAs(t, err, &gErr)
}

func TestBuildPrompt_ToneAndDetails(t *testing.T) {
	lost := BuildPrompt(Attributes{Status: reports.StatusLost, Species: "Dog", IsMicrochipped: true})
	assert.Contains(t, lost, "lost pet")
	assert.Contains(t, lost, "urgent but hopeful")
	assert.Contains(t, lost, "- Name: not known")
	assert.Contains(t, lost, "- Microchipped: Yes")
	assert.Contains(t, lost, "Do not use markdown")

	found := BuildPrompt(Attributes{Status: reports.StatusFound, Name: "Milo"})
	assert.Contains(t, found, "caring and informative")
	assert.Contains(t, found, "- Name: Milo")
	assert.False(t, strings.Contains(found, "urgent"))
}
