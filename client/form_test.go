package client

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReduceDoesNotMutateInput(t *testing.T) {
	start := Reduce(ProfileForm{}, FieldChanged{Field: FieldUsername, Value: "ana"})
	next := Reduce(start, FieldChanged{Field: FieldUsername, Value: "anna"})

	v, _ := start.Value(FieldUsername)
	assert.Equal(t, "ana", v)
	v, _ = next.Value(FieldUsername)
	assert.Equal(t, "anna", v)
}

func TestSubmissionWithoutChanges(t *testing.T) {
	_, err := ProfileForm{}.Submission()
	assert.ErrorIs(t, err, ErrNoChanges)
}

func TestUploadLifecycle(t *testing.T) {
	form := Reduce(ProfileForm{}, UploadStarted{})
	assert.True(t, form.Uploading())

	form = Reduce(form, UploadProgressed{Percent: 40})
	assert.Equal(t, 40, form.UploadProgress())

	_, err := form.Submission()
	assert.ErrorIs(t, err, ErrUploadInFlight)

	form = Reduce(form, UploadSucceeded{URL: "https://img.example/a.png"})
	assert.False(t, form.Uploading())
	assert.Equal(t, 100, form.UploadProgress())

	update, err := form.Submission()
	require.NoError(t, err)
	require.NotNil(t, update.ProfilePicture)
	assert.Equal(t, "https://img.example/a.png", *update.ProfilePicture)
	assert.Nil(t, update.Username)
}

func TestUploadFailureClearsPicture(t *testing.T) {
	form := Reduce(ProfileForm{}, UploadStarted{})
	form = Reduce(form, UploadFailed{})

	assert.False(t, form.Uploading())
	assert.Empty(t, form.PictureURL())
	assert.ErrorIs(t, form.UploadError(), ErrUploadFailed)

	custom := errors.New("offline")
	form = Reduce(Reduce(form, UploadStarted{}), UploadFailed{Err: custom})
	assert.ErrorIs(t, form.UploadError(), custom)
}

func TestProgressIgnoredWhenIdle(t *testing.T) {
	form := Reduce(ProfileForm{}, UploadProgressed{Percent: 50})
	assert.Zero(t, form.UploadProgress())

	form = Reduce(Reduce(ProfileForm{}, UploadStarted{}), UploadProgressed{Percent: 250})
	assert.Equal(t, 100, form.UploadProgress())
}

func TestReset(t *testing.T) {
	form := Reduce(ProfileForm{}, FieldChanged{Field: FieldEmail, Value: "a@x.com"})
	form = Reduce(form, Reset{})

	_, ok := form.Value(FieldEmail)
	assert.False(t, ok)
	_, err := form.Submission()
	assert.ErrorIs(t, err, ErrNoChanges)
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "No changes made", Message(ErrNoChanges))
	assert.Equal(t, "Please wait for image to upload", Message(ErrUploadInFlight))
	assert.Contains(t, Message(fmt.Errorf("%w: status 413", ErrUploadFailed)), "less than 2MB")
	assert.Equal(t, "offline", Message(errors.New("offline")))
	assert.Empty(t, Message(nil))

	for _, err := range []error{ErrNoChanges, ErrUploadInFlight, ErrUploadFailed, ErrInvalidFileType, ErrNotSignedIn} {
		text := err.Error()
		assert.Equal(t, strings.ToLower(text), text)
		assert.False(t, strings.HasSuffix(text, "."), text)
	}
}
